package isa

import "fmt"

// Encoding is the per-(mnemonic, mode) entry in the instruction set table:
// the single authority mapping a mnemonic and addressing mode to an opcode
// byte, the total instruction size in bytes, and its cycle count.
type Encoding struct {
	Mnemonic string
	Mode     Mode
	Opcode   byte
	Size     int
	Cycles   int
}

// Key looks up an Encoding by mnemonic and mode.
type Key struct {
	Mnemonic string
	Mode     Mode
}

// entry is the raw tuple form the table is built from; kept separate from
// Encoding so the literal list below stays terse.
type entry struct {
	mnemonic string
	mode     Mode
	opcode   byte
	size     int
	cycles   int
}

// raw is the static list of (mnemonic, mode, opcode, size, cycles) tuples
// the table is built from once at package init, per the "build once from a
// static list, index twice" approach used by every opcode table in the
// corpus. It is read-only after Table is constructed.
var raw = []entry{
	// Inherent, no operand.
	{"NOP", Inherent, 0x01, 1, 2},
	{"TAP", Inherent, 0x06, 1, 2},
	{"TPA", Inherent, 0x07, 1, 2},
	{"INX", Inherent, 0x08, 1, 4},
	{"DEX", Inherent, 0x09, 1, 4},
	{"CLV", Inherent, 0x0A, 1, 2},
	{"SEV", Inherent, 0x0B, 1, 2},
	{"CLC", Inherent, 0x0C, 1, 2},
	{"SEC", Inherent, 0x0D, 1, 2},
	{"CLI", Inherent, 0x0E, 1, 2},
	{"SEI", Inherent, 0x0F, 1, 2},
	{"SBA", Inherent, 0x10, 1, 2},
	{"CBA", Inherent, 0x11, 1, 2},
	{"TAB", Inherent, 0x16, 1, 2},
	{"TBA", Inherent, 0x17, 1, 2},
	{"DAA", Inherent, 0x19, 1, 2},
	{"ABA", Inherent, 0x1B, 1, 2},
	{"NEGA", Inherent, 0x40, 1, 2},
	{"COMA", Inherent, 0x43, 1, 2},
	{"LSRA", Inherent, 0x44, 1, 2},
	{"RORA", Inherent, 0x46, 1, 2},
	{"ASRA", Inherent, 0x47, 1, 2},
	{"ASLA", Inherent, 0x48, 1, 2},
	{"ROLA", Inherent, 0x49, 1, 2},
	{"DECA", Inherent, 0x4A, 1, 2},
	{"INCA", Inherent, 0x4C, 1, 2},
	{"TSTA", Inherent, 0x4D, 1, 2},
	{"CLRA", Inherent, 0x4F, 1, 2},
	{"NEGB", Inherent, 0x50, 1, 2},
	{"COMB", Inherent, 0x53, 1, 2},
	{"LSRB", Inherent, 0x54, 1, 2},
	{"RORB", Inherent, 0x56, 1, 2},
	{"ASRB", Inherent, 0x57, 1, 2},
	{"ASLB", Inherent, 0x58, 1, 2},
	{"ROLB", Inherent, 0x59, 1, 2},
	{"DECB", Inherent, 0x5A, 1, 2},
	{"INCB", Inherent, 0x5C, 1, 2},
	{"TSTB", Inherent, 0x5D, 1, 2},
	{"CLRB", Inherent, 0x5F, 1, 2},
	{"TSX", Inherent, 0x30, 1, 4},
	{"INS", Inherent, 0x31, 1, 4},
	{"PULA", Inherent, 0x32, 1, 4},
	{"PULB", Inherent, 0x33, 1, 4},
	{"DES", Inherent, 0x34, 1, 4},
	{"TXS", Inherent, 0x35, 1, 4},
	{"PSHA", Inherent, 0x36, 1, 4},
	{"PSHB", Inherent, 0x37, 1, 4},
	{"RTS", Inherent, 0x39, 1, 5},
	{"RTI", Inherent, 0x3B, 1, 10},
	{"WAI", Inherent, 0x3E, 1, 9},
	{"SWI", Inherent, 0x3F, 1, 12},

	// Indexed / extended memory read-modify-write operations.
	{"NEG", Indexed, 0x60, 2, 7}, {"NEG", Extended, 0x70, 3, 6},
	{"COM", Indexed, 0x63, 2, 7}, {"COM", Extended, 0x73, 3, 6},
	{"LSR", Indexed, 0x64, 2, 7}, {"LSR", Extended, 0x74, 3, 6},
	{"ROR", Indexed, 0x66, 2, 7}, {"ROR", Extended, 0x76, 3, 6},
	{"ASR", Indexed, 0x67, 2, 7}, {"ASR", Extended, 0x77, 3, 6},
	{"ASL", Indexed, 0x68, 2, 7}, {"ASL", Extended, 0x78, 3, 6},
	{"ROL", Indexed, 0x69, 2, 7}, {"ROL", Extended, 0x79, 3, 6},
	{"DEC", Indexed, 0x6A, 2, 7}, {"DEC", Extended, 0x7A, 3, 6},
	{"INC", Indexed, 0x6C, 2, 7}, {"INC", Extended, 0x7C, 3, 6},
	{"TST", Indexed, 0x6D, 2, 7}, {"TST", Extended, 0x7D, 3, 6},
	{"JMP", Indexed, 0x6E, 2, 4}, {"JMP", Extended, 0x7E, 3, 3},
	{"CLR", Indexed, 0x6F, 2, 7}, {"CLR", Extended, 0x7F, 3, 6},

	// Accumulator A: immediate, direct, indexed, extended.
	{"SUBA", Immediate, 0x80, 2, 2}, {"SUBA", Direct, 0x90, 2, 3}, {"SUBA", Indexed, 0xA0, 2, 5}, {"SUBA", Extended, 0xB0, 3, 4},
	{"CMPA", Immediate, 0x81, 2, 2}, {"CMPA", Direct, 0x91, 2, 3}, {"CMPA", Indexed, 0xA1, 2, 5}, {"CMPA", Extended, 0xB1, 3, 4},
	{"SBCA", Immediate, 0x82, 2, 2}, {"SBCA", Direct, 0x92, 2, 3}, {"SBCA", Indexed, 0xA2, 2, 5}, {"SBCA", Extended, 0xB2, 3, 4},
	{"ANDA", Immediate, 0x84, 2, 2}, {"ANDA", Direct, 0x94, 2, 3}, {"ANDA", Indexed, 0xA4, 2, 5}, {"ANDA", Extended, 0xB4, 3, 4},
	{"BITA", Immediate, 0x85, 2, 2}, {"BITA", Direct, 0x95, 2, 3}, {"BITA", Indexed, 0xA5, 2, 5}, {"BITA", Extended, 0xB5, 3, 4},
	{"LDAA", Immediate, 0x86, 2, 2}, {"LDAA", Direct, 0x96, 2, 3}, {"LDAA", Indexed, 0xA6, 2, 5}, {"LDAA", Extended, 0xB6, 3, 4},
	{"EORA", Immediate, 0x88, 2, 2}, {"EORA", Direct, 0x98, 2, 3}, {"EORA", Indexed, 0xA8, 2, 5}, {"EORA", Extended, 0xB8, 3, 4},
	{"ADCA", Immediate, 0x89, 2, 2}, {"ADCA", Direct, 0x99, 2, 3}, {"ADCA", Indexed, 0xA9, 2, 5}, {"ADCA", Extended, 0xB9, 3, 4},
	{"ORAA", Immediate, 0x8A, 2, 2}, {"ORAA", Direct, 0x9A, 2, 3}, {"ORAA", Indexed, 0xAA, 2, 5}, {"ORAA", Extended, 0xBA, 3, 4},
	{"ADDA", Immediate, 0x8B, 2, 2}, {"ADDA", Direct, 0x9B, 2, 3}, {"ADDA", Indexed, 0xAB, 2, 5}, {"ADDA", Extended, 0xBB, 3, 4},

	// 16-bit CPX and LDS, JSR, then the accumulator-A and stack-pointer stores.
	{"CPX", Immediate, 0x8C, 3, 3}, {"CPX", Direct, 0x9C, 2, 4}, {"CPX", Indexed, 0xAC, 2, 6}, {"CPX", Extended, 0xBC, 3, 5},
	{"JSR", Indexed, 0xAD, 2, 8}, {"JSR", Extended, 0xBD, 3, 9},
	{"LDS", Immediate, 0x8E, 3, 3}, {"LDS", Direct, 0x9E, 2, 4}, {"LDS", Indexed, 0xAE, 2, 6}, {"LDS", Extended, 0xBE, 3, 5},

	{"STAA", Direct, 0x97, 2, 3}, {"STAA", Indexed, 0xA7, 2, 5}, {"STAA", Extended, 0xB7, 3, 4},
	{"STS", Direct, 0x9F, 2, 4}, {"STS", Indexed, 0xAF, 2, 6}, {"STS", Extended, 0xBF, 3, 5},

	// Accumulator B: immediate, direct, indexed, extended.
	{"SUBB", Immediate, 0xC0, 2, 2}, {"SUBB", Direct, 0xD0, 2, 3}, {"SUBB", Indexed, 0xE0, 2, 5}, {"SUBB", Extended, 0xF0, 3, 4},
	{"CMPB", Immediate, 0xC1, 2, 2}, {"CMPB", Direct, 0xD1, 2, 3}, {"CMPB", Indexed, 0xE1, 2, 5}, {"CMPB", Extended, 0xF1, 3, 4},
	{"SBCB", Immediate, 0xC2, 2, 2}, {"SBCB", Direct, 0xD2, 2, 3}, {"SBCB", Indexed, 0xE2, 2, 5}, {"SBCB", Extended, 0xF2, 3, 4},
	{"ANDB", Immediate, 0xC4, 2, 2}, {"ANDB", Direct, 0xD4, 2, 3}, {"ANDB", Indexed, 0xE4, 2, 5}, {"ANDB", Extended, 0xF4, 3, 4},
	{"BITB", Immediate, 0xC5, 2, 2}, {"BITB", Direct, 0xD5, 2, 3}, {"BITB", Indexed, 0xE5, 2, 5}, {"BITB", Extended, 0xF5, 3, 4},
	{"LDAB", Immediate, 0xC6, 2, 2}, {"LDAB", Direct, 0xD6, 2, 3}, {"LDAB", Indexed, 0xE6, 2, 5}, {"LDAB", Extended, 0xF6, 3, 4},
	{"EORB", Immediate, 0xC8, 2, 2}, {"EORB", Direct, 0xD8, 2, 3}, {"EORB", Indexed, 0xE8, 2, 5}, {"EORB", Extended, 0xF8, 3, 4},
	{"ADCB", Immediate, 0xC9, 2, 2}, {"ADCB", Direct, 0xD9, 2, 3}, {"ADCB", Indexed, 0xE9, 2, 5}, {"ADCB", Extended, 0xF9, 3, 4},
	{"ORAB", Immediate, 0xCA, 2, 2}, {"ORAB", Direct, 0xDA, 2, 3}, {"ORAB", Indexed, 0xEA, 2, 5}, {"ORAB", Extended, 0xFA, 3, 4},
	{"ADDB", Immediate, 0xCB, 2, 2}, {"ADDB", Direct, 0xDB, 2, 3}, {"ADDB", Indexed, 0xEB, 2, 5}, {"ADDB", Extended, 0xFB, 3, 4},

	{"LDX", Immediate, 0xCE, 3, 3}, {"LDX", Direct, 0xDE, 2, 4}, {"LDX", Indexed, 0xEE, 2, 6}, {"LDX", Extended, 0xFE, 3, 5},
	{"STAB", Direct, 0xD7, 2, 3}, {"STAB", Indexed, 0xE7, 2, 5}, {"STAB", Extended, 0xF7, 3, 4},
	{"STX", Direct, 0xDF, 2, 4}, {"STX", Indexed, 0xEF, 2, 6}, {"STX", Extended, 0xFF, 3, 5},

	// Branches (relative, always 2 bytes).
	{"BRA", Relative, 0x20, 2, 4},
	{"BHI", Relative, 0x22, 2, 4},
	{"BLS", Relative, 0x23, 2, 4},
	{"BCC", Relative, 0x24, 2, 4},
	{"BCS", Relative, 0x25, 2, 4},
	{"BNE", Relative, 0x26, 2, 4},
	{"BEQ", Relative, 0x27, 2, 4},
	{"BVC", Relative, 0x28, 2, 4},
	{"BVS", Relative, 0x29, 2, 4},
	{"BPL", Relative, 0x2A, 2, 4},
	{"BMI", Relative, 0x2B, 2, 4},
	{"BGE", Relative, 0x2C, 2, 4},
	{"BLT", Relative, 0x2D, 2, 4},
	{"BGT", Relative, 0x2E, 2, 4},
	{"BLE", Relative, 0x2F, 2, 4},
	{"BSR", Relative, 0x8D, 2, 8},
}

// aliases maps source-compatible synonym mnemonics onto their canonical
// table keys, per Design Note "Single-character accumulator names": ADD,
// SUB etc. mean the A-accumulator form for bit-for-bit source compatibility
// with existing .asm files, while ADDA/ADDB stay the unambiguous table key.
var aliases = map[string]string{
	"SUB": "SUBA", "CMP": "CMPA", "SBC": "SBCA", "AND": "ANDA", "BIT": "BITA",
	"LDA": "LDAA", "EOR": "EORA", "ADC": "ADCA", "ORA": "ORAA", "ADD": "ADDA",
	"STA": "STAA",
}

// Canonical resolves a source-text mnemonic (already upper-cased) to the
// table's canonical mnemonic name.
func Canonical(mnemonic string) string {
	if c, ok := aliases[mnemonic]; ok {
		return c
	}
	return mnemonic
}

var (
	byKey    map[Key]Encoding
	byOpcode [256]*Encoding
)

func init() {
	byKey = make(map[Key]Encoding, len(raw))
	for _, e := range raw {
		enc := Encoding{Mnemonic: e.mnemonic, Mode: e.mode, Opcode: e.opcode, Size: e.size, Cycles: e.cycles}
		byKey[Key{Mnemonic: e.mnemonic, Mode: e.mode}] = enc
		cp := enc
		if byOpcode[e.opcode] != nil {
			panic(fmt.Sprintf("isa: duplicate opcode byte %#02x for %s/%s and %s/%s",
				e.opcode, byOpcode[e.opcode].Mnemonic, byOpcode[e.opcode].Mode, e.mnemonic, e.mode))
		}
		byOpcode[e.opcode] = &cp
	}
}

// Lookup finds the encoding for a (mnemonic, mode) pair. mnemonic must
// already be canonicalized and upper-cased.
func Lookup(mnemonic string, mode Mode) (Encoding, bool) {
	e, ok := byKey[Key{Mnemonic: mnemonic, Mode: mode}]
	return e, ok
}

// SupportsMode reports whether a mnemonic has an encoding in the given mode.
func SupportsMode(mnemonic string, mode Mode) bool {
	_, ok := byKey[Key{Mnemonic: mnemonic, Mode: mode}]
	return ok
}

// LookupOpcode finds the encoding for a raw opcode byte, used by the
// disassembler and by the interpreter to validate operand consumption.
func LookupOpcode(opcode byte) (Encoding, bool) {
	e := byOpcode[opcode]
	if e == nil {
		return Encoding{}, false
	}
	return *e, true
}

// Count returns the number of distinct (mnemonic, mode) encodings in the
// table; the instruction set is specified to contain exactly 197.
func Count() int {
	return len(raw)
}

// IsBranch reports whether mnemonic is one of the relative-mode branches
// (including BSR).
func IsBranch(mnemonic string) bool {
	_, ok := byKey[Key{Mnemonic: mnemonic, Mode: Relative}]
	return ok
}
