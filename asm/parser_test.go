package asm

import (
	"testing"

	"github.com/Urethramancer/m68k8/isa"
)

func mustParse(t *testing.T, src string) *Line {
	t.Helper()
	ln, err := ParseLine(src, 1)
	if err != nil {
		t.Fatalf("ParseLine(%q) error: %v", src, err)
	}
	return ln
}

func TestParseInherent(t *testing.T) {
	ln := mustParse(t, "NOP")
	if ln.Body != BodyInstruction || ln.Mnemonic != "NOP" || ln.Mode != isa.Inherent {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseImmediate(t *testing.T) {
	ln := mustParse(t, "LDAA #$FF")
	if ln.Mode != isa.Immediate || !ln.Operand.HasLiteral || ln.Operand.Literal != 0xFF {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseDirectVsExtended(t *testing.T) {
	direct := mustParse(t, "LDAA $10")
	if direct.Mode != isa.Direct {
		t.Fatalf("small literal should pick Direct, got %s", direct.Mode)
	}
	extended := mustParse(t, "LDAA $1000")
	if extended.Mode != isa.Extended {
		t.Fatalf("large literal should pick Extended, got %s", extended.Mode)
	}
}

func TestParseIndexed(t *testing.T) {
	ln := mustParse(t, "LDAA $10,X")
	if ln.Mode != isa.Indexed {
		t.Fatalf("got mode %s", ln.Mode)
	}
}

func TestParseSymbolicOperandAlwaysExtended(t *testing.T) {
	ln := mustParse(t, "LDAA VALUE")
	if ln.Mode != isa.Extended || ln.Operand.Symbol != "VALUE" {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseBranchForcesRelative(t *testing.T) {
	ln := mustParse(t, "BEQ TARGET")
	if ln.Mode != isa.Relative || ln.Operand.Symbol != "TARGET" {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseLabelAndMnemonic(t *testing.T) {
	ln := mustParse(t, "START: LDAA #1")
	if ln.Label == nil || ln.Label.Name != "START" {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseBareLabelFollowedByMnemonic(t *testing.T) {
	ln := mustParse(t, "START NOP")
	if ln.Label == nil || ln.Label.Name != "START" || ln.Mnemonic != "NOP" {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseReservedWordLabelRejected(t *testing.T) {
	_, err := ParseLine("NOP: LDAA #1", 1)
	if err == nil {
		t.Fatal("expected a ReservedWord error")
	}
	if e, ok := err.(*Error); !ok || e.Kind != ReservedWord {
		t.Fatalf("got %v", err)
	}
}

func TestParseUnknownMnemonic(t *testing.T) {
	_, err := ParseLine("FROB #1", 1)
	if err == nil {
		t.Fatal("expected an InvalidMnemonic error")
	}
	if e, ok := err.(*Error); !ok || e.Kind != InvalidMnemonic {
		t.Fatalf("got %v", err)
	}
}

func TestParseUnsupportedMode(t *testing.T) {
	_, err := ParseLine("LDS #1,X", 1)
	if err == nil {
		t.Fatal("expected an error: LDS has no indexed-with-immediate form")
	}
}

func TestParsePseudoOrg(t *testing.T) {
	ln := mustParse(t, "ORG $1000")
	if ln.Body != BodyPseudo || ln.Pseudo.Kind != PseudoOrg {
		t.Fatalf("got %+v", ln)
	}
}

func TestParsePseudoEquRequiresLabel(t *testing.T) {
	_, err := ParseLine("EQU $10", 1)
	if err == nil {
		t.Fatal("expected an error: EQU without a label")
	}
}

func TestParsePseudoFcbList(t *testing.T) {
	ln := mustParse(t, "FCB $01,$02,3")
	if ln.Pseudo.Kind != PseudoFcb || len(ln.Pseudo.Fcb) != 3 {
		t.Fatalf("got %+v", ln.Pseudo)
	}
}

func TestParsePseudoFcc(t *testing.T) {
	ln := mustParse(t, `FCC "HELLO"`)
	if ln.Pseudo.Kind != PseudoFcc || ln.Pseudo.Fcc != "HELLO" {
		t.Fatalf("got %+v", ln.Pseudo)
	}
}

func TestParseEmptyLine(t *testing.T) {
	ln := mustParse(t, "   ")
	if ln.Body != BodyEmpty {
		t.Fatalf("got %+v", ln)
	}
}

func TestParseAliasMnemonic(t *testing.T) {
	ln := mustParse(t, "LDA #1")
	if ln.Mnemonic != "LDAA" {
		t.Fatalf("alias LDA should canonicalize to LDAA, got %s", ln.Mnemonic)
	}
}
