// Package disasm renders 6800 machine code back into assembly text: the
// inverse of asm's code emitter, built on the same isa instruction table.
package disasm

import (
	"fmt"

	"github.com/Urethramancer/m68k8/isa"
)

// Instruction is one decoded instruction: its address, mnemonic,
// addressing mode, operand text, and the raw bytes it occupies.
type Instruction struct {
	Address  uint16
	Mnemonic string
	Mode     isa.Mode
	Operand  string
	Bytes    []byte
}

// String renders the instruction the way an assembler listing would.
func (i *Instruction) String() string {
	if i.Operand == "" {
		return i.Mnemonic
	}
	return fmt.Sprintf("%s %s", i.Mnemonic, i.Operand)
}

// reader is the minimal byte-addressable source disasm needs; cpu.Memory
// and a plain []byte-backed adapter both satisfy it.
type reader interface {
	ReadU8(addr uint16) byte
}

// sliceReader serves a byte slice whose first byte sits at address base;
// addresses outside the slice read as zero.
type sliceReader struct {
	data []byte
	base uint16
}

func (s sliceReader) ReadU8(addr uint16) byte {
	i := int(addr - s.base)
	if i >= len(s.data) {
		return 0
	}
	return s.data[i]
}

// DecodeOne decodes a single instruction whose first byte, data[0], sits at
// addr. It returns an error if the opcode byte has no entry in the
// instruction table.
func DecodeOne(data []byte, addr uint16) (*Instruction, error) {
	return decodeOne(sliceReader{data: data, base: addr}, addr)
}

func decodeOne(r reader, addr uint16) (*Instruction, error) {
	opcode := r.ReadU8(addr)
	enc, ok := isa.LookupOpcode(opcode)
	if !ok {
		return nil, fmt.Errorf("disasm: unknown opcode $%02X at $%04X", opcode, addr)
	}

	bytes := make([]byte, enc.Size)
	for i := 0; i < enc.Size; i++ {
		bytes[i] = r.ReadU8(addr + uint16(i))
	}

	inst := &Instruction{Address: addr, Mnemonic: enc.Mnemonic, Mode: enc.Mode, Bytes: bytes}
	inst.Operand = formatOperand(enc, bytes, addr)
	return inst, nil
}

// formatOperand renders the operand text for a decoded instruction per its
// addressing mode, mirroring the syntax asm's parser accepts.
func formatOperand(enc isa.Encoding, bytes []byte, addr uint16) string {
	switch enc.Mode {
	case isa.Inherent:
		return ""
	case isa.Immediate:
		if enc.Size == 3 {
			v := uint16(bytes[1])<<8 | uint16(bytes[2])
			return fmt.Sprintf("#$%04X", v)
		}
		return fmt.Sprintf("#$%02X", bytes[1])
	case isa.Direct:
		return fmt.Sprintf("$%02X", bytes[1])
	case isa.Extended:
		v := uint16(bytes[1])<<8 | uint16(bytes[2])
		return fmt.Sprintf("$%04X", v)
	case isa.Indexed:
		return fmt.Sprintf("$%02X,X", bytes[1])
	case isa.Relative:
		disp := int8(bytes[1])
		target := uint16(int32(addr) + int32(enc.Size) + int32(disp))
		return fmt.Sprintf("$%04X", target)
	default:
		return ""
	}
}

// Disassemble decodes a contiguous run of instructions from data, whose
// first byte sits at address base, stopping at end (exclusive). Unknown
// opcodes do not stop the scan — each is emitted as a single-byte DB entry
// so a listing can continue past embedded data, matching how the teacher's
// disassembler treats undecodable bytes.
func Disassemble(data []byte, base, end uint16) []*Instruction {
	var out []*Instruction
	r := sliceReader{data: data, base: base}
	addr := base
	for addr < end {
		inst, err := decodeOne(r, addr)
		if err != nil {
			out = append(out, &Instruction{
				Address:  addr,
				Mnemonic: "DB",
				Operand:  fmt.Sprintf("$%02X", r.ReadU8(addr)),
				Bytes:    []byte{r.ReadU8(addr)},
			})
			addr++
			continue
		}
		out = append(out, inst)
		addr += uint16(len(inst.Bytes))
	}
	return out
}
