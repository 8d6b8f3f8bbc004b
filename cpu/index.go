package cpu

import "github.com/Urethramancer/m68k8/isa"

// INX and DEX update only the Z flag; N, V, and C are left unchanged
// (spec.md section 4.6).
func init() {
	register("INX", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.X++
		c.Reg.SetZ(c.Reg.X == 0)
	})
	register("DEX", isa.Inherent, func(c *CPU, _ *isa.Encoding) {
		c.Reg.X--
		c.Reg.SetZ(c.Reg.X == 0)
	})
}
