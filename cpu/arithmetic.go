package cpu

import "github.com/Urethramancer/m68k8/isa"

func init() {
	registerModes("ADDA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, addOp(accA, false))
	registerModes("ADDB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, addOp(accB, false))
	registerModes("ADCA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, addOp(accA, true))
	registerModes("ADCB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, addOp(accB, true))

	registerModes("SUBA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, subOp(accA, false, true))
	registerModes("SUBB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, subOp(accB, false, true))
	registerModes("SBCA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, subOp(accA, true, true))
	registerModes("SBCB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, subOp(accB, true, true))
	registerModes("CMPA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, subOp(accA, false, false))
	registerModes("CMPB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, subOp(accB, false, false))

	register("ABA", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		a, b := c.Reg.A, c.Reg.B
		result := a + b
		updateAddFlags8(&c.Reg, a, b, false, result)
		c.Reg.A = result
	})
	register("SBA", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		a, b := c.Reg.A, c.Reg.B
		result := a - b
		updateSubFlags8(&c.Reg, a, b, false, result)
		c.Reg.A = result
	})
	register("CBA", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		a, b := c.Reg.A, c.Reg.B
		result := a - b
		updateSubFlags8(&c.Reg, a, b, false, result)
	})
	register("DAA", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		daa(&c.Reg)
	})

	registerModes("CPX", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, cpxOp)
}

func addOp(sel accSel, withCarry bool) handlerFunc {
	return func(c *CPU, enc *isa.Encoding) {
		var operand byte
		if enc.Mode == isa.Immediate {
			operand = c.fetch8()
		} else {
			operand = c.Mem.ReadU8(c.effectiveAddress(enc.Mode))
		}
		a := c.acc(sel)
		carryIn := withCarry && c.Reg.C()
		var cin byte
		if carryIn {
			cin = 1
		}
		result := a + operand + cin
		updateAddFlags8(&c.Reg, a, operand, carryIn, result)
		c.setAcc(sel, result)
	}
}

// subOp returns a handler for SUBx/SBCx (store=true) and CMPx (store=false).
func subOp(sel accSel, withBorrow, store bool) handlerFunc {
	return func(c *CPU, enc *isa.Encoding) {
		var operand byte
		if enc.Mode == isa.Immediate {
			operand = c.fetch8()
		} else {
			operand = c.Mem.ReadU8(c.effectiveAddress(enc.Mode))
		}
		a := c.acc(sel)
		borrowIn := withBorrow && c.Reg.C()
		var bin byte
		if borrowIn {
			bin = 1
		}
		result := a - operand - bin
		updateSubFlags8(&c.Reg, a, operand, borrowIn, result)
		if store {
			c.setAcc(sel, result)
		}
	}
}

func cpxOp(c *CPU, enc *isa.Encoding) {
	var operand uint16
	if enc.Mode == isa.Immediate {
		operand = c.fetch16()
	} else {
		operand = c.Mem.ReadU16(c.effectiveAddress(enc.Mode))
	}
	result := c.Reg.X - operand
	updateNZ16(&c.Reg, result)
	c.Reg.SetV((c.Reg.X^operand)&0x8000 != 0 && (c.Reg.X^result)&0x8000 != 0)
}

// daa adjusts accumulator A to valid packed BCD after an ABA/ADDA/ADCA,
// using the H and C flags the preceding add left behind.
func daa(r *Registers) {
	a := r.A
	lowNibble := a & 0x0F
	highNibble := a >> 4

	var add byte
	carry := r.C()

	if r.H() || lowNibble > 9 {
		add += 0x06
	}
	if carry || highNibble > 9 || (highNibble >= 9 && lowNibble > 9) {
		add += 0x60
		carry = true
	}

	result := a + add
	r.SetC(carry)
	updateNZ8(r, result)
	r.A = result
}
