// Package asm implements the 6800 two-pass assembler: lexing, parsing,
// address layout, label resolution, and code emission.
package asm

import "strings"

// Assembly is the result of a successful assembly: the per-line records,
// the resolved symbol table, and the machine code image.
type Assembly struct {
	Lines   []*Line
	Symbols map[string]uint16
	Image   Image
}

// Assemble translates 6800 assembly source text into an Assembly. Parse
// errors are accumulated across every line and returned as a batch; layout
// and emission stop at the first error they detect, since later addresses
// depend on earlier ones (spec.md section 7).
func Assemble(source string) (*Assembly, []error) {
	rawLines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	var lines []*Line
	var errs []error
	for i, src := range rawLines {
		lineNo := i + 1
		ln, err := ParseLine(src, lineNo)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, ln)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	symbols, err := Layout(lines)
	if err != nil {
		return nil, []error{err}
	}

	img, err := Emit(lines, symbols)
	if err != nil {
		return nil, []error{err}
	}

	return &Assembly{Lines: lines, Symbols: symbols, Image: img}, nil
}
