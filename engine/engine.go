// Package engine drives the cpu interpreter for interactive and scripted
// use: program loading, stepping, free-running with breakpoints, and
// execution statistics.
package engine

import (
	"context"
	"time"

	"github.com/Urethramancer/m68k8/asm"
	"github.com/Urethramancer/m68k8/cpu"
)

// Stats accumulates execution counters since the last Reset.
type Stats struct {
	InstructionsExecuted uint64
	WallTime             time.Duration
}

// StopReason explains why Run returned control to the caller.
type StopReason int

const (
	StopHalted StopReason = iota
	StopBreakpoint
	StopBudgetExhausted
	StopCancelled
	StopPaused
	StopStepped
)

func (r StopReason) String() string {
	switch r {
	case StopHalted:
		return "halted"
	case StopBreakpoint:
		return "breakpoint"
	case StopBudgetExhausted:
		return "budget-exhausted"
	case StopStepped:
		return "stepped"
	case StopCancelled:
		return "cancelled"
	case StopPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// StepResult reports the outcome of one Step or Run call.
type StepResult struct {
	Reason     StopReason
	PC         uint16
	Message    string
	SourceLine int // 0 if unknown
}

// Engine wraps a cpu.CPU with breakpoints, source-line tracking, and
// execution bookkeeping for the debugger-style surface spec.md section 5
// describes.
type Engine struct {
	CPU         *cpu.CPU
	Breakpoints map[uint16]bool
	SourceLines map[uint16]int
	Stats       Stats
}

// New returns an Engine with a fresh, halted CPU.
func New() *Engine {
	return &Engine{
		CPU:         cpu.New(),
		Breakpoints: make(map[uint16]bool),
		SourceLines: make(map[uint16]int),
	}
}

// LoadAssembly writes an assembled image into memory and records the
// address-to-source-line map used to annotate step results.
func (e *Engine) LoadAssembly(a *asm.Assembly) {
	for addr, bytes := range a.Image {
		e.CPU.Mem.LoadBytes(addr, bytes)
	}
	for _, ln := range a.Lines {
		if ln.Address != nil {
			e.SourceLines[*ln.Address] = ln.LineNo
		}
	}
}

// LoadBytes writes a raw byte run into memory, for callers that already
// have a binary image instead of an Assembly.
func (e *Engine) LoadBytes(addr uint16, data []byte) {
	e.CPU.Mem.LoadBytes(addr, data)
}

// Reset resets Stats along with the underlying CPU.
func (e *Engine) Reset() {
	e.CPU.Reset()
	e.Stats = Stats{}
}

// AddBreakpoint arms a breakpoint at addr.
func (e *Engine) AddBreakpoint(addr uint16) {
	e.Breakpoints[addr] = true
}

// RemoveBreakpoint disarms a breakpoint at addr, if any.
func (e *Engine) RemoveBreakpoint(addr uint16) {
	delete(e.Breakpoints, addr)
}

// ClearBreakpoints disarms every breakpoint.
func (e *Engine) ClearBreakpoints() {
	e.Breakpoints = make(map[uint16]bool)
}

// ListBreakpoints returns the armed breakpoint addresses in ascending order.
func (e *Engine) ListBreakpoints() []uint16 {
	out := make([]uint16, 0, len(e.Breakpoints))
	for addr := range e.Breakpoints {
		out = append(out, addr)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Step executes exactly one instruction and returns its outcome.
func (e *Engine) Step() StepResult {
	start := time.Now()
	_, _ = e.CPU.Step()
	e.Stats.WallTime += time.Since(start)

	if e.CPU.Status == cpu.Halted {
		return StepResult{Reason: StopHalted, PC: e.CPU.Reg.PC, Message: e.CPU.HaltReason, SourceLine: e.SourceLines[e.CPU.Reg.PC]}
	}
	e.Stats.InstructionsExecuted++
	if e.CPU.Status == cpu.Paused {
		return StepResult{Reason: StopPaused, PC: e.CPU.Reg.PC, Message: e.CPU.HaltReason, SourceLine: e.SourceLines[e.CPU.Reg.PC]}
	}
	return StepResult{Reason: StopStepped, PC: e.CPU.Reg.PC, SourceLine: e.SourceLines[e.CPU.Reg.PC]}
}

// Run steps the CPU until it halts, hits an armed breakpoint, exhausts
// maxInstructions (0 means unlimited), or ctx is cancelled, per spec.md
// section 5's run-to-completion contract.
func (e *Engine) Run(ctx context.Context, maxInstructions uint64) StepResult {
	var executed uint64
	for {
		select {
		case <-ctx.Done():
			return StepResult{Reason: StopCancelled, PC: e.CPU.Reg.PC, Message: ctx.Err().Error()}
		default:
		}

		if e.CPU.Status != cpu.Running {
			break
		}
		if e.Breakpoints[e.CPU.Reg.PC] && executed > 0 {
			return StepResult{Reason: StopBreakpoint, PC: e.CPU.Reg.PC, SourceLine: e.SourceLines[e.CPU.Reg.PC]}
		}

		start := time.Now()
		_, _ = e.CPU.Step()
		e.Stats.WallTime += time.Since(start)
		e.Stats.InstructionsExecuted++
		executed++

		if maxInstructions > 0 && executed >= maxInstructions {
			return StepResult{Reason: StopBudgetExhausted, PC: e.CPU.Reg.PC, SourceLine: e.SourceLines[e.CPU.Reg.PC]}
		}
	}

	if e.CPU.Status == cpu.Paused {
		return StepResult{Reason: StopPaused, PC: e.CPU.Reg.PC, Message: e.CPU.HaltReason}
	}
	return StepResult{Reason: StopHalted, PC: e.CPU.Reg.PC, Message: e.CPU.HaltReason, SourceLine: e.SourceLines[e.CPU.Reg.PC]}
}

// MemoryRange copies out a read-only view of [start, end).
func (e *Engine) MemoryRange(start, end uint16) []byte {
	out := make([]byte, 0, int(end)-int(start))
	for a := uint32(start); a < uint32(end); a++ {
		out = append(out, e.CPU.Mem.ReadU8(uint16(a)))
	}
	return out
}
