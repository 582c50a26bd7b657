// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/pkg/errors"

	"github.com/ezrec/minicpu/cpu"
	"github.com/ezrec/minicpu/internal"
)

const (
	MEMORY_LIMIT = 0x10000 // Words addressable by a 16-bit register.
)

var _emulator_defines = map[string]string{
	"MEMORY_LIMIT": fmt.Sprintf("%#x", MEMORY_LIMIT),
}

// Emulator state. CPU + program listing + host memory image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the emulator to run Program from its first instruction.
// Must be called after Program is replaced.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Reset()

	return
}

// Instruction returns the instruction about to execute.
func (emu *Emulator) Instruction() (ins cpu.Instruction) {
	ins, _ = emu.Program.Instruction(emu.Cpu.Ip)
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Ip)
}

// Tick performs a single tick of the emulator.
// done is set once the program has no more instructions.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program is done, or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// LoadMemory replaces the memory with an image of whitespace separated
// words. Text after '//' on a line is ignored.
func (emu *Emulator) LoadMemory(input io.Reader) (err error) {
	var memory []uint16

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line, _, _ := strings.Cut(scanner.Text(), "//")
		for _, word := range strings.Fields(line) {
			if len(memory) >= MEMORY_LIMIT {
				err = errors.Wrap(ErrMemoryLimit, f("memory line %d", lineno))
				return
			}
			var value uint16
			value, err = cpu.ParseValue(word)
			if err != nil {
				err = errors.Wrap(err, f("memory line %d", lineno))
				return
			}
			memory = append(memory, value)
		}
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrap(err, f("memory image"))
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d words of memory", len(memory))
	}

	emu.Cpu.Memory = memory

	return
}
