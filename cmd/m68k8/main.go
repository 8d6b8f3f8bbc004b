// Command m68k8 assembles, runs, and disassembles 6800 programs. It
// dispatches to one of three subcommands through climate, the same
// command-line scaffolding declared (but unused) by the original m68k
// tool this one was adapted from.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/grimdork/climate"

	"github.com/Urethramancer/m68k8/asm"
	"github.com/Urethramancer/m68k8/cpu"
	"github.com/Urethramancer/m68k8/disasm"
	"github.com/Urethramancer/m68k8/engine"
)

func main() {
	log.SetFlags(0)

	app := climate.New("m68k8", "6800 assembler, interpreter, and disassembler")
	app.Command("asm", "Assemble a source file into a binary image", runAssemble)
	app.Command("run", "Run an assembled image or source file on the interpreter", runSimulate)
	app.Command("dis", "Disassemble a binary image back to assembly text", runDisassemble)

	if err := app.Run(os.Args[1:]); err != nil {
		log.Fatalf("m68k8: %v", err)
	}
}

func runAssemble(args []string) error {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	out := fs.String("o", "", "output file for the binary image (stdout hex dump if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: m68k8 asm [-o out.bin] <source.asm>")
	}

	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	assembly, errs := asm.Assemble(string(src))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("assembly failed with %d error(s)", len(errs))
	}

	if *out == "" {
		dumpHex(assembly.Image)
		return nil
	}
	return writeImage(*out, assembly.Image)
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	loadAddr := fs.String("load", "0", "load address for binary files (hex)")
	maxInstr := fs.Uint64("limit", 1000000, "maximum instructions to execute (0 = unlimited)")
	trace := fs.Bool("trace", false, "print every executed instruction")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: m68k8 run [-load hex] [-limit n] [-trace] <file>")
	}
	filename := fs.Arg(0)

	e := engine.New()
	if strings.HasSuffix(filename, ".asm") || strings.HasSuffix(filename, ".s") {
		src, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		assembly, errs := asm.Assemble(string(src))
		if len(errs) > 0 {
			for _, err := range errs {
				fmt.Fprintln(os.Stderr, err)
			}
			return fmt.Errorf("assembly failed with %d error(s)", len(errs))
		}
		e.LoadAssembly(assembly)
	} else {
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading binary: %w", err)
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(*loadAddr, "$"), 16, 16)
		if err != nil {
			return fmt.Errorf("invalid -load address: %w", err)
		}
		e.LoadBytes(uint16(addr), data)
	}

	e.Reset()
	log.Printf("reset: PC=$%04X", e.CPU.Reg.PC)

	if *trace {
		for e.CPU.Status == cpu.Running {
			pc := e.CPU.Reg.PC
			result := e.Step()
			log.Printf("$%04X: %s", pc, result.Reason)
			if result.Reason != engine.StopStepped {
				break
			}
		}
	} else {
		result := e.Run(context.Background(), *maxInstr)
		log.Printf("stopped: %s at $%04X (%s)", result.Reason, result.PC, result.Message)
	}

	log.Printf("A=$%02X B=$%02X X=$%04X SP=$%04X PC=$%04X CCR=$%02X",
		e.CPU.Reg.A, e.CPU.Reg.B, e.CPU.Reg.X, e.CPU.Reg.SP, e.CPU.Reg.PC, e.CPU.Reg.CCR)
	log.Printf("instructions executed: %d, wall time: %s", e.Stats.InstructionsExecuted, e.Stats.WallTime)
	return nil
}

func runDisassemble(args []string) error {
	fs := flag.NewFlagSet("dis", flag.ExitOnError)
	startHex := fs.String("start", "0", "start address (hex)")
	endHex := fs.String("end", "", "end address, exclusive (hex, defaults to file length from start)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: m68k8 dis [-start hex] [-end hex] <file>")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading binary: %w", err)
	}

	start, err := strconv.ParseUint(strings.TrimPrefix(*startHex, "$"), 16, 16)
	if err != nil {
		return fmt.Errorf("invalid -start address: %w", err)
	}
	end := start + uint64(len(data))
	if *endHex != "" {
		end, err = strconv.ParseUint(strings.TrimPrefix(*endHex, "$"), 16, 16)
		if err != nil {
			return fmt.Errorf("invalid -end address: %w", err)
		}
	}

	for _, inst := range disasm.Disassemble(data, uint16(start), uint16(end)) {
		fmt.Printf("$%04X  % -8s  %s\n", inst.Address, hexBytes(inst.Bytes), inst)
	}
	return nil
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for _, v := range b {
		fmt.Fprintf(&sb, "%02X ", v)
	}
	return sb.String()
}

func dumpHex(img asm.Image) {
	for _, addr := range img.SortedAddresses() {
		fmt.Printf("$%04X: %s\n", addr, hexBytes(img[addr]))
	}
}

func writeImage(path string, img asm.Image) error {
	dense := img.Dense()
	addrs := img.SortedAddresses()
	if len(addrs) == 0 {
		return os.WriteFile(path, nil, 0o644)
	}
	lo, hi := addrs[0], addrs[len(addrs)-1]
	hi += uint16(len(img[hi]))
	return os.WriteFile(path, dense[lo:hi], 0o644)
}
