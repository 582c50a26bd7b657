package cpu

import (
	"fmt"
)

// Register is a register file index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_ACC = Register(0)  // acc
	REG_ISP = Register(1)  // isp
	REG_R0  = Register(2)  // r0
	REG_R1  = Register(3)  // r1
	REG_R2  = Register(4)  // r2
	REG_R3  = Register(5)  // r3
	REG_R4  = Register(6)  // r4
	REG_R5  = Register(7)  // r5
	REG_R6  = Register(8)  // r6
	REG_R7  = Register(9)  // r7
	REG_R8  = Register(10) // r8
)

const (
	REGISTER_COUNT = 11     // Number of registers in the register file.
	WORD_MAX       = 0xffff // Largest value a register or memory cell holds.
)

// Valid returns true if the register names a register file slot.
func (reg Register) Valid() bool {
	return reg >= REG_ACC && reg <= REG_R8
}

// OperandKind is the addressing mode of an operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_IMMEDIATE = OperandKind(0) // imm
	OPERAND_REGISTER  = OperandKind(1) // reg
	OPERAND_INDIRECT  = OperandKind(2) // ind
)

// Operand describes how a 16-bit value is obtained at execution time.
//
// Only the field selected by Kind is meaningful; the other is left zero so
// that equal operands compare equal.
type Operand struct {
	Kind     OperandKind
	Value    uint16   // Literal for OPERAND_IMMEDIATE.
	Register Register // Source for OPERAND_REGISTER and OPERAND_INDIRECT.
}

// Immediate returns a literal operand.
func Immediate(value uint16) Operand {
	return Operand{Kind: OPERAND_IMMEDIATE, Value: value}
}

// RegisterOf returns an operand reading the content of a register.
func RegisterOf(reg Register) Operand {
	return Operand{Kind: OPERAND_REGISTER, Register: reg}
}

// Indirect returns an operand reading the memory cell addressed by a register.
func Indirect(reg Register) Operand {
	return Operand{Kind: OPERAND_INDIRECT, Register: reg}
}

// String returns the assembly language representation of the operand.
func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		return fmt.Sprintf("%d", op.Value)
	case OPERAND_REGISTER:
		return op.Register.String()
	case OPERAND_INDIRECT:
		return "[" + op.Register.String() + "]"
	}
	return op.Kind.String()
}

// Code is an instruction type.
type Code int

//go:generate go tool stringer -linecomment -type=Code
const (
	OP_ADD = Code(0)  // add
	OP_SUB = Code(1)  // sub
	OP_MUL = Code(2)  // mul
	OP_DIV = Code(3)  // div
	OP_MOV = Code(4)  // mov
	OP_XOR = Code(5)  // xor
	OP_AND = Code(6)  // and
	OP_OR  = Code(7)  // or
	OP_NOT = Code(8)  // not
	OP_JMP = Code(9)  // jmp
	OP_JNZ = Code(10) // jnz
	OP_JEZ = Code(11) // jez
	OP_JGZ = Code(12) // jgz
	OP_JLZ = Code(13) // jlz
)

// Instruction is a single decoded instruction.
//
// The Op selects the variant, and the variant decides which of A, B and
// Dst are used:
//   - add, sub, mul, div: A
//   - mov: A, Dst
//   - xor, and, or, not: A, B
//   - jmp, jnz, jez, jgz, jlz: none
//
// Build instructions with the Make* functions so unused fields stay zero.
type Instruction struct {
	Op  Code
	A   Operand
	B   Operand
	Dst Register
}

// MakeAdd creates an 'add' instruction: acc = acc + op.
func MakeAdd(op Operand) Instruction {
	return Instruction{Op: OP_ADD, A: op}
}

// MakeSub creates a 'sub' instruction: acc = acc - op.
func MakeSub(op Operand) Instruction {
	return Instruction{Op: OP_SUB, A: op}
}

// MakeMul creates a 'mul' instruction.
func MakeMul(op Operand) Instruction {
	return Instruction{Op: OP_MUL, A: op}
}

// MakeDiv creates a 'div' instruction.
func MakeDiv(op Operand) Instruction {
	return Instruction{Op: OP_DIV, A: op}
}

// MakeMov creates a 'mov' instruction: dst = src.
func MakeMov(src Operand, dst Register) Instruction {
	return Instruction{Op: OP_MOV, A: src, Dst: dst}
}

// MakeXor creates a 'xor' instruction.
func MakeXor(a, b Operand) Instruction {
	return Instruction{Op: OP_XOR, A: a, B: b}
}

// MakeAnd creates an 'and' instruction.
func MakeAnd(a, b Operand) Instruction {
	return Instruction{Op: OP_AND, A: a, B: b}
}

// MakeOr creates an 'or' instruction.
func MakeOr(a, b Operand) Instruction {
	return Instruction{Op: OP_OR, A: a, B: b}
}

// MakeNot creates a 'not' instruction.
func MakeNot(a, b Operand) Instruction {
	return Instruction{Op: OP_NOT, A: a, B: b}
}

// MakeJump creates one of the operand-less jump instructions.
func MakeJump(op Code) Instruction {
	switch op {
	case OP_JMP, OP_JNZ, OP_JEZ, OP_JGZ, OP_JLZ:
	default:
		panic(fmt.Sprintf("%v is not a jump", op))
	}
	return Instruction{Op: op}
}

// Operands returns the number of source operands, and if the instruction
// has a destination register.
func (ins Instruction) Operands() (sources int, dst bool) {
	switch ins.Op {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		sources = 1
	case OP_MOV:
		sources = 1
		dst = true
	case OP_XOR, OP_AND, OP_OR, OP_NOT:
		sources = 2
	}
	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() (out string) {
	sources, dst := ins.Operands()

	out = ins.Op.String()
	switch sources {
	case 1:
		out += " " + ins.A.String()
	case 2:
		out += " " + ins.A.String() + ", " + ins.B.String()
	}
	if dst {
		out += ", " + ins.Dst.String()
	}

	return
}
