package asm

import (
	"github.com/Urethramancer/m68k8/isa"
)

// Image is the machine-code image: a sparse map from each contiguous
// block's start address to its bytes. Blocks never overlap (Emit detects
// and rejects any collision).
type Image map[uint16][]byte

// SortedAddresses returns the image's start addresses in ascending order.
func (img Image) SortedAddresses() []uint16 {
	addrs := make([]uint16, 0, len(img))
	for a := range img {
		addrs = append(addrs, a)
	}
	for i := 1; i < len(addrs); i++ {
		for j := i; j > 0 && addrs[j-1] > addrs[j]; j-- {
			addrs[j-1], addrs[j] = addrs[j], addrs[j-1]
		}
	}
	return addrs
}

// Dense renders the image onto a flat 64 KiB buffer for consumers that
// want a single contiguous view instead of the sparse block map.
func (img Image) Dense() [65536]byte {
	var out [65536]byte
	for addr, bytes := range img {
		for i, b := range bytes {
			out[(int(addr)+i)&0xFFFF] = b
		}
	}
	return out
}

// Emit resolves every instruction operand against the symbol table (pass
// 2, spec.md section 4.3), encodes each line's bytes (spec.md section
// 4.4), and assembles the per-address image. It stops at the first error
// it detects, since later positions depend on earlier ones.
func Emit(lines []*Line, symbols map[string]uint16) (Image, error) {
	img := make(Image)
	var order []uint16

	for _, ln := range lines {
		if ln.Address == nil {
			continue
		}
		bytes, err := encodeLine(ln, symbols)
		if err != nil {
			return nil, err
		}
		ln.Encoded = bytes
		if len(bytes) == 0 {
			continue
		}
		img[*ln.Address] = bytes
		order = append(order, *ln.Address)
	}

	if err := checkCollisions(img, order); err != nil {
		return nil, err
	}
	return img, nil
}

func checkCollisions(img Image, order []uint16) error {
	for i := 0; i < len(order); i++ {
		a := order[i]
		aEnd := uint32(a) + uint32(len(img[a]))
		for j := i + 1; j < len(order); j++ {
			b := order[j]
			bEnd := uint32(b) + uint32(len(img[b]))
			if overlap(uint32(a), aEnd, uint32(b), bEnd) {
				return &Error{Kind: AddressCollision, Message: addrCollisionMsg(a, b)}
			}
		}
	}
	return nil
}

func overlap(aStart, aEnd, bStart, bEnd uint32) bool {
	return aStart < bEnd && bStart < aEnd
}

func addrCollisionMsg(a, b uint16) string {
	return "address collision between blocks at $" + hex16(a) + " and $" + hex16(b)
}

func hex16(v uint16) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[(v>>12)&0xF], digits[(v>>8)&0xF], digits[(v>>4)&0xF], digits[v&0xF]})
}

// encodeLine resolves operands and produces the exact bytes for one line.
func encodeLine(ln *Line, symbols map[string]uint16) ([]byte, error) {
	switch ln.Body {
	case BodyInstruction:
		return encodeInstruction(ln, symbols)
	case BodyPseudo:
		return encodePseudo(ln, symbols)
	default:
		return nil, nil
	}
}

func encodeInstruction(ln *Line, symbols map[string]uint16) ([]byte, error) {
	enc, ok := isa.Lookup(ln.Mnemonic, ln.Mode)
	if !ok {
		return nil, errf(UnsupportedAddressingMode, ln.LineNo, "%s does not support %s addressing", ln.Mnemonic, ln.Mode)
	}

	switch ln.Mode {
	case isa.Inherent:
		return []byte{enc.Opcode}, nil

	case isa.Immediate:
		v, err := ln.Operand.Resolve(symbols, ln.LineNo)
		if err != nil {
			return nil, err
		}
		if enc.Size == 3 {
			if v < 0 || v > 0xFFFF {
				return nil, errf(ValueOutOfRange, ln.LineNo, "immediate value %d out of 16-bit range", v)
			}
			return []byte{enc.Opcode, byte(v >> 8), byte(v)}, nil
		}
		if v < 0 || v > 0xFF {
			return nil, errf(ValueOutOfRange, ln.LineNo, "immediate value %d out of 8-bit range", v)
		}
		return []byte{enc.Opcode, byte(v)}, nil

	case isa.Direct:
		v, err := ln.Operand.Resolve(symbols, ln.LineNo)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 0xFF {
			return nil, errf(ValueOutOfRange, ln.LineNo, "direct address %d out of 8-bit range", v)
		}
		return []byte{enc.Opcode, byte(v)}, nil

	case isa.Extended:
		v, err := ln.Operand.Resolve(symbols, ln.LineNo)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 0xFFFF {
			return nil, errf(ValueOutOfRange, ln.LineNo, "extended address %d out of 16-bit range", v)
		}
		return []byte{enc.Opcode, byte(v >> 8), byte(v)}, nil

	case isa.Indexed:
		v, err := ln.Operand.Resolve(symbols, ln.LineNo)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 0xFF {
			return nil, errf(ValueOutOfRange, ln.LineNo, "indexed offset %d out of 8-bit range", v)
		}
		return []byte{enc.Opcode, byte(v)}, nil

	case isa.Relative:
		target, err := ln.Operand.Resolve(symbols, ln.LineNo)
		if err != nil {
			return nil, err
		}
		disp := target - int64(*ln.Address) - 2
		if disp < -128 || disp > 127 {
			return nil, errf(BranchOutOfRange, ln.LineNo, "branch displacement %d out of range", disp)
		}
		return []byte{enc.Opcode, byte(int8(disp))}, nil
	}
	return nil, errf(UnsupportedAddressingMode, ln.LineNo, "unhandled addressing mode")
}

func encodePseudo(ln *Line, symbols map[string]uint16) ([]byte, error) {
	switch ln.Pseudo.Kind {
	case PseudoOrg, PseudoEnd, PseudoEqu:
		return nil, nil

	case PseudoFcb:
		out := make([]byte, 0, len(ln.Pseudo.Fcb))
		for _, e := range ln.Pseudo.Fcb {
			v, err := e.Resolve(symbols, ln.LineNo)
			if err != nil {
				return nil, err
			}
			if v < 0 || v > 0xFF {
				return nil, errf(ValueOutOfRange, ln.LineNo, "FCB value %d out of byte range", v)
			}
			out = append(out, byte(v))
		}
		return out, nil

	case PseudoFdb:
		out := make([]byte, 0, len(ln.Pseudo.Fdb)*2)
		for _, e := range ln.Pseudo.Fdb {
			v, err := e.Resolve(symbols, ln.LineNo)
			if err != nil {
				return nil, err
			}
			if v < 0 || v > 0xFFFF {
				return nil, errf(ValueOutOfRange, ln.LineNo, "FDB value %d out of word range", v)
			}
			out = append(out, byte(v>>8), byte(v))
		}
		return out, nil

	case PseudoRmb:
		return nil, nil

	case PseudoFcc:
		return []byte(ln.Pseudo.Fcc), nil
	}
	return nil, nil
}
