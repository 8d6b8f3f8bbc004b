package asm

import (
	"github.com/Urethramancer/m68k8/isa"
)

// Layout performs pass 1 of the assembly described in spec.md section 4.3:
// it walks the lines once, assigning addresses and building the symbol
// table. Pass 2, resolving instruction operands, is done by Emit.
// Iteration is strictly sequential by line number (Determinism, spec.md
// section 4.3) — 6800 instruction sizes are fixed once the addressing mode
// is chosen in the parser, so unlike the teacher's m68k assembler (whose
// branch/EA sizes can still change across iterations) a single forward pass
// suffices and no fixed-point loop is used.
func Layout(lines []*Line) (map[string]uint16, error) {
	symbols := make(map[string]uint16)

	var cursor uint32
	for _, ln := range lines {
		if ln.Label != nil {
			if _, dup := symbols[ln.Label.Name]; dup {
				return nil, errf(DuplicateLabel, ln.LineNo, "label %q already defined", ln.Label.Name)
			}
			addr := uint16(cursor)
			symbols[ln.Label.Name] = addr
			ln.Label.Address = addr
		}

		switch ln.Body {
		case BodyEmpty:
			continue
		case BodyPseudo:
			switch ln.Pseudo.Kind {
			case PseudoOrg:
				v, err := ln.Pseudo.Org.Resolve(symbols, ln.LineNo)
				if err != nil {
					return nil, err
				}
				if v < 0 || v > 0xFFFF {
					return nil, errf(ValueOutOfRange, ln.LineNo, "ORG value %d out of range", v)
				}
				cursor = uint32(v)
				addr := uint16(cursor)
				ln.Address = &addr
				continue
			case PseudoEnd:
				continue
			case PseudoEqu:
				if ln.Label == nil {
					return nil, errf(SyntaxError, ln.LineNo, "EQU requires a label")
				}
				v, err := ln.Pseudo.Equ.Resolve(symbols, ln.LineNo)
				if err != nil {
					return nil, err
				}
				if v < 0 || v > 0xFFFF {
					return nil, errf(ValueOutOfRange, ln.LineNo, "EQU value %d out of range", v)
				}
				addr := uint16(v)
				symbols[ln.Label.Name] = addr
				ln.Label.Address = addr
				continue
			}
		}

		addr := uint16(cursor)
		ln.Address = &addr
		size, err := lineSize(ln, symbols)
		if err != nil {
			return nil, err
		}
		next := cursor + uint32(size)
		if next > 0x10000 {
			return nil, errf(AddressOverflow, ln.LineNo, "program counter overflows past $FFFF")
		}
		cursor = next
	}
	return symbols, nil
}

// lineSize computes the number of bytes a line will occupy: the opcode
// table size for instructions, or the pseudo-op's own sizing rule.
func lineSize(ln *Line, symbols map[string]uint16) (int, error) {
	switch ln.Body {
	case BodyInstruction:
		enc, ok := isa.Lookup(ln.Mnemonic, ln.Mode)
		if !ok {
			return 0, errf(UnsupportedAddressingMode, ln.LineNo, "%s does not support %s addressing", ln.Mnemonic, ln.Mode)
		}
		return enc.Size, nil
	case BodyPseudo:
		switch ln.Pseudo.Kind {
		case PseudoFcb:
			return len(ln.Pseudo.Fcb), nil
		case PseudoFdb:
			return len(ln.Pseudo.Fdb) * 2, nil
		case PseudoRmb:
			v, err := ln.Pseudo.Rmb.Resolve(symbols, ln.LineNo)
			if err != nil {
				return 0, err
			}
			if v < 0 || v > 0xFFFF {
				return 0, errf(ValueOutOfRange, ln.LineNo, "RMB count %d out of range", v)
			}
			return int(v), nil
		case PseudoFcc:
			return len(ln.Pseudo.Fcc), nil
		}
	}
	return 0, nil
}
