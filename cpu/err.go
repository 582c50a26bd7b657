package cpu

import (
	"errors"

	"github.com/ezrec/minicpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty      = errors.New(f("ip empty"))
	ErrArithmetic   = errors.New(f("arithmetic"))
	ErrOverflow     = &errArithmetic{f("overflow occurred in accumulator")}
	ErrUnderflow    = &errArithmetic{f("underflow occurred in accumulator")}
	ErrOpcodeDecode = errors.New(f("decode"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
)

// errArithmetic is a specific ErrArithmetic.
type errArithmetic struct {
	text string
}

func (err *errArithmetic) Error() string {
	return err.text
}

func (err *errArithmetic) Unwrap() error {
	return ErrArithmetic
}

// ErrAddress is an indirect access outside of memory.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("invalid memory access at %d", uint16(ea))
}

// ErrUnsupported is an instruction the cpu does not execute.
type ErrUnsupported Instruction

func (eu ErrUnsupported) Error() string {
	return f("unsupported instruction: %v", Instruction(eu).String())
}

func (eu ErrUnsupported) Is(err error) (ok bool) {
	_, ok = err.(ErrUnsupported)
	return
}

// ErrFault locates an execution fault in the program.
type ErrFault struct {
	Ip          int
	Instruction Instruction
	Err         error
}

func (err *ErrFault) Error() string {
	return f("ip %d '%v' %v", err.Ip, err.Instruction.String(), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrLabelMissing is a label that no line declares.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseValue is a word that is neither a value nor a register.
type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

// ErrParseCharacter is a malformed 'c' character literal.
type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

// ErrParseExpression is a $(...) expression that failed, or is not a word.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
