package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

// Cpu is the execution engine: a register file and memory, executing an
// assembled program.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program  *Program               // Program being executed.
	Ip       int                    // Index of the next instruction to execute.
	Register [REGISTER_COUNT]uint16 // Register file.
	Memory   []uint16               // Memory cells, addressed indirectly.
	Ticks    int                    // Instructions executed since reset.
}

// NewCpu creates a new CPU executing a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	if prog == nil {
		prog = &Program{}
	}

	cpu = &Cpu{
		Program: prog,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%d", len(cpu.Memory)),
	})
}

// Reset the CPU state.
// - Clears the registers.
// - Rewinds to the first instruction.
// - Zeros statistics counters.
//
// Memory is left as-is; it belongs to the host.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Ip = 0
	cpu.Ticks = 0
}

// ReadRegister returns the content of a register.
func (cpu *Cpu) ReadRegister(reg Register) uint16 {
	return cpu.Register[reg]
}

// WriteRegister sets the content of a register.
func (cpu *Cpu) WriteRegister(reg Register, value uint16) {
	cpu.Register[reg] = value
}

// Done returns true once every instruction has executed.
func (cpu *Cpu) Done() bool {
	return cpu.Ip >= cpu.Program.Len()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %v/%v\n", "ip", cpu.Ip, cpu.Program.Len())
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X\n", Register(n).String(), val)
	}

	return
}

// Value gets the value specified by an operand, based on CPU state.
func (cpu *Cpu) Value(op Operand) (value uint16, err error) {
	if op.Kind != OPERAND_IMMEDIATE && !op.Register.Valid() {
		err = ErrOpcodeDecode
		return
	}

	switch op.Kind {
	case OPERAND_IMMEDIATE:
		value = op.Value
	case OPERAND_REGISTER:
		value = cpu.ReadRegister(op.Register)
	case OPERAND_INDIRECT:
		addr := cpu.ReadRegister(op.Register)
		if int(addr) >= len(cpu.Memory) {
			err = ErrAddress(addr)
			return
		}
		value = cpu.Memory[addr]
	default:
		err = ErrOpcodeDecode
	}

	return
}

// Tick executes the instruction at Ip, and advances Ip.
//
// At the end of the program, ErrIpEmpty is returned. On a fault Ip is left
// at the faulting instruction.
func (cpu *Cpu) Tick() (err error) {
	ins, ok := cpu.Program.Instruction(cpu.Ip)
	if !ok {
		err = ErrIpEmpty
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ip, ins)
	}

	err = cpu.Execute(ins)
	if err != nil {
		err = &ErrFault{Ip: cpu.Ip, Instruction: ins, Err: err}
		return
	}

	cpu.Ip++
	cpu.Ticks++

	return
}

// Run executes the program until the end, or the first fault.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if errors.Is(err, ErrIpEmpty) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Execute executes a single decoded instruction.
//
// A failed instruction leaves the register file unchanged.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	switch ins.Op {
	case OP_ADD:
		var value uint16
		value, err = cpu.Value(ins.A)
		if err != nil {
			return
		}
		acc := cpu.ReadRegister(REG_ACC)
		if value > WORD_MAX-acc {
			err = ErrOverflow
			return
		}
		cpu.WriteRegister(REG_ACC, acc+value)
	case OP_SUB:
		var value uint16
		value, err = cpu.Value(ins.A)
		if err != nil {
			return
		}
		acc := cpu.ReadRegister(REG_ACC)
		if value > acc {
			err = ErrUnderflow
			return
		}
		cpu.WriteRegister(REG_ACC, acc-value)
	case OP_MOV:
		var value uint16
		value, err = cpu.Value(ins.A)
		if err != nil {
			return
		}
		if !ins.Dst.Valid() {
			err = ErrOpcodeDecode
			return
		}
		cpu.WriteRegister(ins.Dst, value)
	case OP_MUL, OP_DIV:
		err = ErrUnsupported(ins)
	case OP_XOR, OP_AND, OP_OR, OP_NOT:
		err = ErrUnsupported(ins)
	case OP_JMP, OP_JNZ, OP_JEZ, OP_JGZ, OP_JLZ:
		err = ErrUnsupported(ins)
	default:
		err = ErrOpcodeDecode
	}

	return
}
