package asm

import "github.com/Urethramancer/m68k8/isa"

// Symbol is a resolved label: a name bound to the address of the line that
// defines it.
type Symbol struct {
	Name    string
	Address uint16
	Line    int
}

// reserved holds every word a label may not equal: mnemonics, pseudo-ops,
// and register names, matched case-insensitively per spec.md section 3.
var reserved = map[string]bool{
	"ORG": true, "END": true, "EQU": true, "FCB": true, "FDB": true, "RMB": true, "FCC": true,
	"A": true, "B": true, "X": true, "S": true, "PC": true, "CCR": true,
}

func init() {
	for _, e := range allMnemonics() {
		reserved[e] = true
	}
}

// allMnemonics lists every canonical and alias mnemonic the table knows
// about, used to populate the reserved-word set.
func allMnemonics() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range []string{
		"NOP", "TAP", "TPA", "INX", "DEX", "CLV", "SEV", "CLC", "SEC", "CLI", "SEI",
		"SBA", "CBA", "TAB", "TBA", "DAA", "ABA", "NEGA", "COMA", "LSRA", "RORA",
		"ASRA", "ASLA", "ROLA", "DECA", "INCA", "TSTA", "CLRA", "NEGB", "COMB",
		"LSRB", "RORB", "ASRB", "ASLB", "ROLB", "DECB", "INCB", "TSTB", "CLRB",
		"TSX", "INS", "PULA", "PULB", "DES", "TXS", "PSHA", "PSHB", "RTS", "RTI",
		"WAI", "SWI", "NEG", "COM", "LSR", "ROR", "ASR", "ASL", "ROL", "DEC", "INC",
		"TST", "JMP", "CLR", "SUBA", "CMPA", "SBCA", "ANDA", "BITA", "LDAA", "EORA",
		"ADCA", "ORAA", "ADDA", "CPX", "JSR", "LDS", "STAA", "STS", "SUBB", "CMPB",
		"SBCB", "ANDB", "BITB", "LDAB", "EORB", "ADCB", "ORAB", "ADDB", "LDX",
		"STAB", "STX", "BRA", "BHI", "BLS", "BCC", "BCS", "BNE", "BEQ", "BVC",
		"BVS", "BPL", "BMI", "BGE", "BLT", "BGT", "BLE", "BSR",
		"SUB", "CMP", "SBC", "AND", "BIT", "LDA", "EOR", "ADC", "ORA", "ADD", "STA",
	} {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// OperandExpr is either a bare numeric literal, a symbol reference, or a
// simple additive expression Symbol +/- Literal.
type OperandExpr struct {
	Symbol     string // empty if purely numeric
	HasLiteral bool
	Literal    int64
	Negative   bool // true if the literal was subtracted
	Raw        string
}

// Resolve computes the numeric value of the expression given a symbol
// table. Returns an UndefinedLabel error if Symbol is set but unknown.
func (o OperandExpr) Resolve(symbols map[string]uint16, line int) (int64, error) {
	var base int64
	if o.Symbol != "" {
		addr, ok := symbols[o.Symbol]
		if !ok {
			return 0, errf(UndefinedLabel, line, "undefined label %q", o.Symbol)
		}
		base = int64(addr)
	}
	if o.HasLiteral {
		if o.Negative {
			base -= o.Literal
		} else {
			base += o.Literal
		}
	}
	return base, nil
}

// PseudoKind discriminates the PseudoArgs tagged union.
type PseudoKind int

const (
	PseudoOrg PseudoKind = iota
	PseudoEnd
	PseudoEqu
	PseudoFcb
	PseudoFdb
	PseudoRmb
	PseudoFcc
)

// PseudoArgs is the parsed operand payload for a directive line, one case
// per pseudo-op per Design Note "Dynamic operand type".
type PseudoArgs struct {
	Kind PseudoKind
	Org  OperandExpr
	Equ  OperandExpr
	Fcb  []OperandExpr
	Fdb  []OperandExpr
	Rmb  OperandExpr
	Fcc  string
}

// BodyKind discriminates LineBody.
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyInstruction
	BodyPseudo
)

// Line is the AssemblyLine record. It starts with Address == nil and
// Encoded == nil; layout sets Address, emit sets Encoded. Mutation is
// confined to the pass that owns each field (Design Note "Mutable
// assembly line").
type Line struct {
	LineNo   int
	Source   string
	Label    *Symbol
	Body     BodyKind
	Mnemonic string
	Mode     isa.Mode
	Operand  OperandExpr
	Pseudo   PseudoArgs
	Comment  string

	Address *uint16
	Encoded []byte
}
