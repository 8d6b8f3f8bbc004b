package cpu

import "github.com/Urethramancer/m68k8/isa"

func init() {
	registerRMW("NEGA", "NEGB", "NEG", negCore)
	registerRMW("COMA", "COMB", "COM", comCore)
	registerRMW("CLRA", "CLRB", "CLR", clrCore)
	registerRMW("INCA", "INCB", "INC", incCore)
	registerRMW("DECA", "DECB", "DEC", decCore)
	registerReadOnly("TSTA", "TSTB", "TST", tstCore)

	registerModes("ANDA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, logic8(accA, func(a, b byte) byte { return a & b }))
	registerModes("ANDB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, logic8(accB, func(a, b byte) byte { return a & b }))
	registerModes("ORAA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, logic8(accA, func(a, b byte) byte { return a | b }))
	registerModes("ORAB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, logic8(accB, func(a, b byte) byte { return a | b }))
	registerModes("EORA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, logic8(accA, func(a, b byte) byte { return a ^ b }))
	registerModes("EORB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, logic8(accB, func(a, b byte) byte { return a ^ b }))
	registerModes("BITA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, bitTest(accA))
	registerModes("BITB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, bitTest(accB))
}

func negCore(r *Registers, v byte) byte {
	result := byte(0) - v
	r.SetC(v != 0)
	r.SetV(v == 0x80)
	updateNZ8(r, result)
	return result
}

func comCore(r *Registers, v byte) byte {
	result := ^v
	r.SetV(false)
	r.SetC(true)
	updateNZ8(r, result)
	return result
}

func clrCore(r *Registers, _ byte) byte {
	r.SetN(false)
	r.SetZ(true)
	r.SetV(false)
	r.SetC(false)
	return 0
}

func incCore(r *Registers, v byte) byte {
	result := v + 1
	r.SetV(v == 0x7F)
	updateNZ8(r, result)
	return result
}

func decCore(r *Registers, v byte) byte {
	result := v - 1
	r.SetV(v == 0x80)
	updateNZ8(r, result)
	return result
}

func tstCore(r *Registers, v byte) {
	updateNZ8(r, v)
	r.SetV(false)
	r.SetC(false)
}

// logic8 returns a handler for the AND/ORA/EOR family: combine the
// accumulator with an immediate or memory operand via op, store, and set
// N and Z while clearing V.
func logic8(sel accSel, op func(a, b byte) byte) handlerFunc {
	return func(c *CPU, enc *isa.Encoding) {
		var operand byte
		if enc.Mode == isa.Immediate {
			operand = c.fetch8()
		} else {
			operand = c.Mem.ReadU8(c.effectiveAddress(enc.Mode))
		}
		result := op(c.acc(sel), operand)
		c.setAcc(sel, result)
		updateNZ8(&c.Reg, result)
		c.Reg.SetV(false)
	}
}

// bitTest returns a handler for BITA/BITB: AND without storing, flags only.
func bitTest(sel accSel) handlerFunc {
	return func(c *CPU, enc *isa.Encoding) {
		var operand byte
		if enc.Mode == isa.Immediate {
			operand = c.fetch8()
		} else {
			operand = c.Mem.ReadU8(c.effectiveAddress(enc.Mode))
		}
		result := c.acc(sel) & operand
		updateNZ8(&c.Reg, result)
		c.Reg.SetV(false)
	}
}
