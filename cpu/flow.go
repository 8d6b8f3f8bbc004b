package cpu

import "github.com/Urethramancer/m68k8/isa"

func init() {
	registerModes("JMP", []isa.Mode{isa.Indexed, isa.Extended}, func(c *CPU, enc *isa.Encoding) {
		c.Reg.PC = c.effectiveAddress(enc.Mode)
	})
	registerModes("JSR", []isa.Mode{isa.Indexed, isa.Extended}, func(c *CPU, enc *isa.Encoding) {
		target := c.effectiveAddress(enc.Mode)
		c.pushWord(c.Reg.PC)
		c.Reg.PC = target
	})
	register("RTS", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.PC = c.pullWord()
	})

	register("BSR", isa.Relative, func(c *CPU, _ *isa.Encoding) {
		disp := int8(c.fetch8())
		ret := c.Reg.PC
		c.pushWord(ret)
		c.Reg.PC = uint16(int32(ret) + int32(disp))
	})

	for mnemonic, cond := range branchConditions {
		cond := cond
		register(mnemonic, isa.Relative, func(c *CPU, _ *isa.Encoding) {
			disp := int8(c.fetch8())
			if cond(&c.Reg) {
				c.Reg.PC = uint16(int32(c.Reg.PC) + int32(disp))
			}
		})
	}
}

// branchConditions maps every relative branch mnemonic (excluding BSR,
// which always branches and also pushes a return address) to its flag
// test, per spec.md section 4.6's condition table.
var branchConditions = map[string]func(r *Registers) bool{
	"BRA": func(r *Registers) bool { return true },
	"BHI": func(r *Registers) bool { return !r.C() && !r.Z() },
	"BLS": func(r *Registers) bool { return r.C() || r.Z() },
	"BCC": func(r *Registers) bool { return !r.C() },
	"BCS": func(r *Registers) bool { return r.C() },
	"BNE": func(r *Registers) bool { return !r.Z() },
	"BEQ": func(r *Registers) bool { return r.Z() },
	"BVC": func(r *Registers) bool { return !r.V() },
	"BVS": func(r *Registers) bool { return r.V() },
	"BPL": func(r *Registers) bool { return !r.N() },
	"BMI": func(r *Registers) bool { return r.N() },
	"BGE": func(r *Registers) bool { return r.N() == r.V() },
	"BLT": func(r *Registers) bool { return r.N() != r.V() },
	"BGT": func(r *Registers) bool { return !r.Z() && r.N() == r.V() },
	"BLE": func(r *Registers) bool { return r.Z() || r.N() != r.V() },
}
