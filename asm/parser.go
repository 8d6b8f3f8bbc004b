package asm

import (
	"strconv"
	"strings"

	"github.com/Urethramancer/m68k8/isa"
)

var branchMnemonics = map[string]bool{
	"BRA": true, "BCC": true, "BCS": true, "BEQ": true, "BNE": true, "BMI": true,
	"BPL": true, "BVC": true, "BVS": true, "BGE": true, "BGT": true, "BLE": true,
	"BLT": true, "BHI": true, "BLS": true, "BSR": true,
}

var pseudoOps = map[string]bool{
	"ORG": true, "END": true, "EQU": true, "FCB": true, "FDB": true, "RMB": true, "FCC": true,
}

// ParseLine converts one source line into an assembly-line record. Empty
// and comment-only lines yield BodyEmpty. See spec.md section 4.2.
func ParseLine(source string, lineNo int) (*Line, error) {
	toks := Tokenize(source)
	line := &Line{LineNo: lineNo, Source: source, Body: BodyEmpty}
	if len(toks) == 0 {
		return line, nil
	}

	i := 0
	var labelName string
	var haveLabel bool

	if toks[0].Kind == TokLabel {
		labelName = toks[0].Value
		haveLabel = true
		i++
	} else if toks[0].Kind == TokIdent && len(toks) > 1 && toks[1].Kind == TokIdent &&
		(isKeyword(strings.ToUpper(toks[1].Value))) {
		labelName = toks[0].Value
		haveLabel = true
		i++
	}

	if haveLabel {
		upper := strings.ToUpper(labelName)
		if len(upper) > 32 {
			return nil, errf(InvalidOperand, lineNo, "label %q exceeds 32 characters", labelName)
		}
		if reserved[upper] {
			return nil, errf(ReservedWord, lineNo, "label %q is a reserved word", labelName)
		}
		line.Label = &Symbol{Name: upper, Line: lineNo}
	}

	if i >= len(toks) {
		return line, nil
	}

	if toks[i].Kind != TokIdent {
		return nil, errf(SyntaxError, lineNo, "expected mnemonic or directive, found unexpected token")
	}
	word := strings.ToUpper(toks[i].Value)
	i++
	rest := toks[i:]

	if pseudoOps[word] {
		pseudo, err := parsePseudo(word, rest, line.Label != nil, lineNo)
		if err != nil {
			return nil, err
		}
		line.Body = BodyPseudo
		line.Pseudo = pseudo
		return line, nil
	}

	mnemonic := isa.Canonical(word)
	if !mnemonicKnown(mnemonic) {
		return nil, errf(InvalidMnemonic, lineNo, "unknown mnemonic %q", toks[i-1].Value)
	}

	mode, operand, err := determineMode(mnemonic, rest, lineNo)
	if err != nil {
		return nil, err
	}
	if !isa.SupportsMode(mnemonic, mode) {
		return nil, errf(UnsupportedAddressingMode, lineNo, "%s does not support %s addressing", mnemonic, mode)
	}

	line.Body = BodyInstruction
	line.Mnemonic = mnemonic
	line.Mode = mode
	line.Operand = operand
	return line, nil
}

func isKeyword(word string) bool {
	return pseudoOps[word] || mnemonicKnown(isa.Canonical(word))
}

func mnemonicKnown(mnemonic string) bool {
	return isa.SupportsMode(mnemonic, isa.Inherent) ||
		isa.SupportsMode(mnemonic, isa.Immediate) ||
		isa.SupportsMode(mnemonic, isa.Direct) ||
		isa.SupportsMode(mnemonic, isa.Extended) ||
		isa.SupportsMode(mnemonic, isa.Indexed) ||
		isa.SupportsMode(mnemonic, isa.Relative)
}

// determineMode applies the deterministic addressing-mode rules of
// spec.md section 4.2 to the operand tokens that follow a mnemonic.
func determineMode(mnemonic string, toks []Token, lineNo int) (isa.Mode, OperandExpr, error) {
	if len(toks) == 0 {
		return isa.Inherent, OperandExpr{}, nil
	}

	if branchMnemonics[mnemonic] {
		expr, rem, err := parseExpr(toks, lineNo)
		if err != nil {
			return 0, OperandExpr{}, err
		}
		if len(rem) != 0 {
			return 0, OperandExpr{}, errf(InvalidOperand, lineNo, "unexpected tokens after branch target")
		}
		return isa.Relative, expr, nil
	}

	if toks[0].Kind == TokHash {
		expr, rem, err := parseExpr(toks[1:], lineNo)
		if err != nil {
			return 0, OperandExpr{}, err
		}
		if len(rem) != 0 {
			return 0, OperandExpr{}, errf(InvalidOperand, lineNo, "unexpected tokens after immediate operand")
		}
		return isa.Immediate, expr, nil
	}

	expr, rem, err := parseExpr(toks, lineNo)
	if err != nil {
		return 0, OperandExpr{}, err
	}

	if len(rem) == 2 && rem[0].Kind == TokComma && rem[1].Kind == TokIdent && strings.EqualFold(rem[1].Value, "X") {
		return isa.Indexed, expr, nil
	}
	if len(rem) != 0 {
		return 0, OperandExpr{}, errf(InvalidOperand, lineNo, "unexpected tokens in operand")
	}

	if expr.Symbol == "" {
		if expr.Literal >= 0 && expr.Literal <= 255 && isa.SupportsMode(mnemonic, isa.Direct) {
			return isa.Direct, expr, nil
		}
		return isa.Extended, expr, nil
	}

	// Symbolic or symbol+literal operand: conservatively Extended (spec.md
	// section 9, Open Question 4 — never shrink a forward reference).
	return isa.Extended, expr, nil
}

// parseExpr parses a numeric literal, a bare symbol, or Symbol +/- Literal
// from the front of toks, returning the unconsumed remainder.
func parseExpr(toks []Token, lineNo int) (OperandExpr, []Token, error) {
	if len(toks) == 0 {
		return OperandExpr{}, nil, errf(MissingOperand, lineNo, "expected an operand")
	}

	var expr OperandExpr
	switch toks[0].Kind {
	case TokHex:
		v, err := strconv.ParseInt(toks[0].Value, 16, 64)
		if err != nil {
			return OperandExpr{}, nil, errf(InvalidOperand, lineNo, "invalid hex literal $%s", toks[0].Value)
		}
		expr.HasLiteral = true
		expr.Literal = v
	case TokBin:
		v, err := strconv.ParseInt(toks[0].Value, 2, 64)
		if err != nil {
			return OperandExpr{}, nil, errf(InvalidOperand, lineNo, "invalid binary literal %%%s", toks[0].Value)
		}
		expr.HasLiteral = true
		expr.Literal = v
	case TokDec:
		v, err := strconv.ParseInt(toks[0].Value, 10, 64)
		if err != nil {
			return OperandExpr{}, nil, errf(InvalidOperand, lineNo, "invalid decimal literal %s", toks[0].Value)
		}
		expr.HasLiteral = true
		expr.Literal = v
	case TokIdent:
		expr.Symbol = strings.ToUpper(toks[0].Value)
	default:
		return OperandExpr{}, nil, errf(InvalidOperand, lineNo, "expected a literal or symbol")
	}
	rest := toks[1:]

	if expr.Symbol != "" && len(rest) >= 2 && (rest[0].Kind == TokPlus || rest[0].Kind == TokMinus) {
		lit, rem2, err := parseLiteralOnly(rest[1:], lineNo)
		if err != nil {
			return OperandExpr{}, nil, err
		}
		expr.HasLiteral = true
		expr.Literal = lit
		expr.Negative = rest[0].Kind == TokMinus
		rest = rem2
	}
	return expr, rest, nil
}

func parseLiteralOnly(toks []Token, lineNo int) (int64, []Token, error) {
	if len(toks) == 0 {
		return 0, nil, errf(InvalidOperand, lineNo, "expected a literal after +/-")
	}
	switch toks[0].Kind {
	case TokHex:
		v, err := strconv.ParseInt(toks[0].Value, 16, 64)
		return v, toks[1:], err
	case TokBin:
		v, err := strconv.ParseInt(toks[0].Value, 2, 64)
		return v, toks[1:], err
	case TokDec:
		v, err := strconv.ParseInt(toks[0].Value, 10, 64)
		return v, toks[1:], err
	default:
		return 0, nil, errf(InvalidOperand, lineNo, "expected a literal after +/-")
	}
}

// parsePseudo parses the operand tokens for a directive given its keyword.
func parsePseudo(word string, toks []Token, hasLabel bool, lineNo int) (PseudoArgs, error) {
	switch word {
	case "ORG":
		expr, rem, err := parseExpr(toks, lineNo)
		if err != nil {
			return PseudoArgs{}, err
		}
		if len(rem) != 0 {
			return PseudoArgs{}, errf(InvalidOperand, lineNo, "unexpected tokens after ORG operand")
		}
		return PseudoArgs{Kind: PseudoOrg, Org: expr}, nil

	case "END":
		return PseudoArgs{Kind: PseudoEnd}, nil

	case "EQU":
		if !hasLabel {
			return PseudoArgs{}, errf(SyntaxError, lineNo, "EQU requires a label")
		}
		expr, rem, err := parseExpr(toks, lineNo)
		if err != nil {
			return PseudoArgs{}, err
		}
		if len(rem) != 0 {
			return PseudoArgs{}, errf(InvalidOperand, lineNo, "unexpected tokens after EQU operand")
		}
		return PseudoArgs{Kind: PseudoEqu, Equ: expr}, nil

	case "FCB":
		list, err := parseExprList(toks, lineNo)
		if err != nil {
			return PseudoArgs{}, err
		}
		return PseudoArgs{Kind: PseudoFcb, Fcb: list}, nil

	case "FDB":
		list, err := parseExprList(toks, lineNo)
		if err != nil {
			return PseudoArgs{}, err
		}
		return PseudoArgs{Kind: PseudoFdb, Fdb: list}, nil

	case "RMB":
		expr, rem, err := parseExpr(toks, lineNo)
		if err != nil {
			return PseudoArgs{}, err
		}
		if len(rem) != 0 {
			return PseudoArgs{}, errf(InvalidOperand, lineNo, "unexpected tokens after RMB operand")
		}
		return PseudoArgs{Kind: PseudoRmb, Rmb: expr}, nil

	case "FCC":
		if len(toks) != 1 || toks[0].Kind != TokStr {
			return PseudoArgs{}, errf(InvalidOperand, lineNo, "FCC requires a quoted string")
		}
		return PseudoArgs{Kind: PseudoFcc, Fcc: toks[0].Value}, nil
	}
	return PseudoArgs{}, errf(SyntaxError, lineNo, "unknown directive %q", word)
}

func parseExprList(toks []Token, lineNo int) ([]OperandExpr, error) {
	if len(toks) == 0 {
		return nil, errf(MissingOperand, lineNo, "expected at least one value")
	}
	var out []OperandExpr
	rem := toks
	for {
		expr, r, err := parseExpr(rem, lineNo)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
		rem = r
		if len(rem) == 0 {
			break
		}
		if rem[0].Kind != TokComma {
			return nil, errf(InvalidOperand, lineNo, "expected comma between values")
		}
		rem = rem[1:]
	}
	return out, nil
}
