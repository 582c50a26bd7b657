// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Maximum starlark steps for a single $(...) expression.
const EXPRESSION_STEPS = 1 << 16

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"WORD_MAX":       fmt.Sprintf("%#x", WORD_MAX),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Assembler is a single pass assembler for the minicpu.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to opcode indexes.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerMap is a map of register names to registers.
var registerMap = map[string]Register{
	"acc": REG_ACC,
	"isp": REG_ISP,
	"r0":  REG_R0,
	"r1":  REG_R1,
	"r2":  REG_R2,
	"r3":  REG_R3,
	"r4":  REG_R4,
	"r5":  REG_R5,
	"r6":  REG_R6,
	"r7":  REG_R7,
	"r8":  REG_R8,
}

// ParseRegister returns the register named by word, in any letter case.
func ParseRegister(word string) (reg Register, ok bool) {
	reg, ok = registerMap[strings.ToLower(strings.TrimSpace(word))]
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	return ParseValue(word)
}

// ParseValue parses an unsigned 16-bit word: decimal, or 0x, 0b, 0o
// prefixed.
func ParseValue(word string) (value uint16, err error) {
	if len(word) == 0 {
		err = ErrParseValue(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	digits := strings.TrimPrefix(word, "+")
	base := 10
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXbBoO", rune(digits[1])) {
		base = 0
	}
	v64, perr := strconv.ParseUint(digits, base, 16)
	if perr != nil {
		err = ErrParseValue(word)
		return
	}

	value = uint16(v64)
	return
}

// operand parses an operand, in order of indirect, register, and immediate.
func (asm *Assembler) operand(word string) (op Operand, err error) {
	if len(word) >= 2 && word[0] == '[' && word[len(word)-1] == ']' {
		inner := word[1 : len(word)-1]
		if equate, ok := asm.Equate[inner]; ok {
			inner = equate
		}
		reg, ok := ParseRegister(inner)
		if !ok {
			err = ErrParseValue(word)
			return
		}
		op = Indirect(reg)
		return
	}

	reg, ok := ParseRegister(word)
	if ok {
		op = RegisterOf(reg)
		return
	}

	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	op = Immediate(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{Name: "asm"}
	thread.SetMaxExecutionSteps(EXPRESSION_STEPS)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value16, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > WORD_MAX {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// expandLine replaces 'x' character and $(...) expression values.
func (asm *Assembler) expandLine(line string) (expanded string, err error) {
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	expanded = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})

	return
}

// labelOf returns the label declared by a line, if the line is a label.
func labelOf(line string) (label string, ok bool, err error) {
	label, ok = strings.CutSuffix(line, ":")
	if !ok || strings.ContainsFunc(label, unicode.IsSpace) {
		ok = false
		return
	}
	if len(label) == 0 {
		err = ErrLabelInvalid
	}
	return
}

// parseLine parses a single line, returning the words of an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	label, is_label, err := labelOf(line)
	if err != nil {
		return
	}
	if is_label {
		if ip, ok := asm.Label[label]; ok && asm.Verbose {
			log.Printf("%v: label %v rebound from %v to %v", lineno, label, ip, len(asm.Opcode))
		}
		asm.Label[label] = len(asm.Opcode)
		return
	}

	line, err = asm.expandLine(line)
	if err != nil {
		return
	}

	for _, word := range strings.Fields(line) {
		words = append(words, strings.TrimSuffix(word, ","))
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 || reserved(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// stripComment removes a '//' comment from a line. A '//' inside a $(...)
// expression is integer division, not a comment.
func stripComment(line string) string {
	depth := 0
	for n := 0; n < len(line); n++ {
		switch {
		case depth == 0 && strings.HasPrefix(line[n:], "$("):
			depth = 1
			n++
		case depth == 0 && strings.HasPrefix(line[n:], "//"):
			return line[:n]
		case depth > 0 && line[n] == '(':
			depth++
		case depth > 0 && line[n] == ')':
			depth--
		}
	}
	return line
}

// reserved returns true if word is a register name or a mnemonic, which
// an equate may not shadow.
func reserved(word string) bool {
	if _, ok := ParseRegister(word); ok {
		return true
	}
	name := strings.ToLower(word)
	if name == ".equ" {
		return true
	}
	for code := OP_ADD; code <= OP_JLZ; code++ {
		if name == code.String() {
			return true
		}
	}
	return false
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		if len(line) == 0 {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
		Label:   maps.Clone(asm.Label),
	}

	return
}

// ParseString parses assembly text into a Program.
func (asm *Assembler) ParseString(text string) (prog *Program, err error) {
	return asm.Parse(strings.NewReader(text))
}

// unaryMap maps single operand opcode names.
var unaryMap = map[string]func(op Operand) Instruction{
	"add": MakeAdd,
	"sub": MakeSub,
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	var ins Instruction
	args := words[1:]

	name := strings.ToLower(words[0])
	switch name {
	case "add", "sub":
		if len(args) < 1 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var op Operand
		op, err = asm.operand(args[0])
		if err != nil {
			return
		}
		ins = unaryMap[name](op)
	case "mov":
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var src Operand
		src, err = asm.operand(args[0])
		if err != nil {
			return
		}
		dst, ok := ParseRegister(args[1])
		if !ok {
			err = ErrRegisterInvalid
			return
		}
		ins = MakeMov(src, dst)
	default:
		err = ErrOpcodeInvalid
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:      lineno,
		Ip:          len(asm.Opcode),
		Words:       words,
		Instruction: ins,
	})

	return
}
