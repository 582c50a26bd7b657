package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Opcode represents a line of assembled code with its source location and
// the instruction it generated.
type Opcode struct {
	LineNo      int
	Ip          int
	Words       []string
	Instruction Instruction
}

// Program is an assembled program: an ordered instruction sequence and the
// labels bound to it.
type Program struct {
	Opcodes []Opcode
	Label   map[string]int // Map of labels to instruction indexes.
}

type Debug struct {
	*Opcode
	Index int
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Instruction returns the instruction at ip.
func (prog *Program) Instruction(ip int) (ins Instruction, ok bool) {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return
	}

	return prog.Opcodes[ip].Instruction, true
}

// Instructions iterates over the program in execution order.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, ins Instruction) bool) {
		for n, op := range prog.Opcodes {
			if !yield(n, op.Instruction) {
				return
			}
		}
	}
}

// Debug finds the source line of the instruction at ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip == op.Ip {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  n,
			}
			break
		}
	}

	return
}

// LineNo returns the source line of the instruction at ip, or 0.
func (prog *Program) LineNo(ip int) int {
	dbg := prog.Debug(ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Resolve returns the instruction index a label is bound to.
func (prog *Program) Resolve(label string) (ip int, err error) {
	ip, ok := prog.Label[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	return
}

// String returns a listing of the program, with labels.
func (prog *Program) String() string {
	labels := map[int][]string{}
	for label, ip := range prog.Label {
		labels[ip] = append(labels[ip], label)
	}

	var text strings.Builder
	emit := func(ip int) {
		names := labels[ip]
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(&text, "%v:\n", name)
		}
	}

	for ip, ins := range prog.Instructions() {
		emit(ip)
		fmt.Fprintf(&text, "    %v\n", ins)
	}
	emit(prog.Len())

	return text.String()
}
