package cpu

import "github.com/Urethramancer/m68k8/isa"

func init() {
	registerModes("LDAA", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, load8(accA))
	registerModes("LDAB", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, load8(accB))
	registerModes("STAA", []isa.Mode{isa.Direct, isa.Indexed, isa.Extended}, store8(accA))
	registerModes("STAB", []isa.Mode{isa.Direct, isa.Indexed, isa.Extended}, store8(accB))

	registerModes("LDX", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, loadX)
	registerModes("STX", []isa.Mode{isa.Direct, isa.Indexed, isa.Extended}, storeX)
	registerModes("LDS", []isa.Mode{isa.Immediate, isa.Direct, isa.Indexed, isa.Extended}, loadS)
	registerModes("STS", []isa.Mode{isa.Direct, isa.Indexed, isa.Extended}, storeS)

	register("TAB", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.B = c.Reg.A
		updateNZ8(&c.Reg, c.Reg.B)
		c.Reg.SetV(false)
	})
	register("TBA", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.A = c.Reg.B
		updateNZ8(&c.Reg, c.Reg.A)
		c.Reg.SetV(false)
	})
	register("TAP", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.CCR = c.Reg.A | 0xC0
	})
	register("TPA", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.A = c.Reg.CCR
	})
	register("TSX", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.X = c.Reg.SP + 1
	})
	register("TXS", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.SP = c.Reg.X - 1
	})
}

// accSel selects which accumulator an opcode family operates on.
type accSel int

const (
	accA accSel = iota
	accB
)

func (c *CPU) acc(sel accSel) byte {
	if sel == accA {
		return c.Reg.A
	}
	return c.Reg.B
}

func (c *CPU) setAcc(sel accSel, v byte) {
	if sel == accA {
		c.Reg.A = v
	} else {
		c.Reg.B = v
	}
}

// load8 returns a handler that loads an accumulator from an immediate
// value or a resolved effective address, setting N and Z and clearing V.
func load8(sel accSel) handlerFunc {
	return func(c *CPU, enc *isa.Encoding) {
		var v byte
		if enc.Mode == isa.Immediate {
			v = c.fetch8()
		} else {
			v = c.Mem.ReadU8(c.effectiveAddress(enc.Mode))
		}
		c.setAcc(sel, v)
		updateNZ8(&c.Reg, v)
		c.Reg.SetV(false)
	}
}

// store8 returns a handler that stores an accumulator to a resolved
// effective address, setting N and Z from the stored value and clearing V.
func store8(sel accSel) handlerFunc {
	return func(c *CPU, enc *isa.Encoding) {
		addr := c.effectiveAddress(enc.Mode)
		v := c.acc(sel)
		c.Mem.WriteU8(addr, v)
		updateNZ8(&c.Reg, v)
		c.Reg.SetV(false)
	}
}

func loadX(c *CPU, enc *isa.Encoding) {
	var v uint16
	if enc.Mode == isa.Immediate {
		v = c.fetch16()
	} else {
		addr := c.effectiveAddress(enc.Mode)
		v = c.Mem.ReadU16(addr)
	}
	c.Reg.X = v
	updateNZ16(&c.Reg, v)
	c.Reg.SetV(false)
}

func storeX(c *CPU, enc *isa.Encoding) {
	addr := c.effectiveAddress(enc.Mode)
	c.Mem.WriteU16(addr, c.Reg.X)
	updateNZ16(&c.Reg, c.Reg.X)
	c.Reg.SetV(false)
}

func loadS(c *CPU, enc *isa.Encoding) {
	var v uint16
	if enc.Mode == isa.Immediate {
		v = c.fetch16()
	} else {
		addr := c.effectiveAddress(enc.Mode)
		v = c.Mem.ReadU16(addr)
	}
	c.Reg.SP = v
	updateNZ16(&c.Reg, v)
	c.Reg.SetV(false)
}

func storeS(c *CPU, enc *isa.Encoding) {
	addr := c.effectiveAddress(enc.Mode)
	c.Mem.WriteU16(addr, c.Reg.SP)
	updateNZ16(&c.Reg, c.Reg.SP)
	c.Reg.SetV(false)
}
