package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 2, Ip: 0, Words: []string{"mov", "16", "r0"},
				Instruction: MakeMov(Immediate(16), REG_R0)},
			{LineNo: 4, Ip: 1, Words: []string{"add", "r0"},
				Instruction: MakeAdd(RegisterOf(REG_R0))},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(1)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	assert.Equal(2, prog.LineNo(0))
	assert.Equal(4, prog.LineNo(1))
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"sub", "1"}, Instruction: MakeSub(Immediate(1))},
		},
	}

	dbg := prog.Debug(10)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
	assert.Equal(0, prog.LineNo(10))
	assert.Equal(0, prog.LineNo(-1))
}

func TestProgram_Instruction(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseString("add 1\nsub 2\nmov 3, r3\n")
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(3, prog.Len())

	ins, ok := prog.Instruction(2)
	assert.True(ok)
	assert.Equal(MakeMov(Immediate(3), REG_R3), ins)

	_, ok = prog.Instruction(3)
	assert.False(ok)
	_, ok = prog.Instruction(-1)
	assert.False(ok)

	var ips []int
	for ip := range prog.Instructions() {
		ips = append(ips, ip)
		if ip == 1 {
			break
		}
	}
	assert.Equal([]int{0, 1}, ips)
}

func TestProgram_Resolve(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseString("START:\nadd 1\nEND:\n")
	if err != nil {
		t.Fatal(err)
		return
	}

	ip, err := prog.Resolve("START")
	assert.NoError(err)
	assert.Equal(0, ip)

	ip, err = prog.Resolve("END")
	assert.NoError(err)
	assert.Equal(1, ip)

	_, err = prog.Resolve("end")
	assert.ErrorIs(err, ErrLabelMissing("end"))
	assert.Equal("label end missing", err.Error())
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"b:",
		"a:",
		"ADD r2",
		"MOV [R3], R7",
		"done:",
	}

	asm := &Assembler{}
	prog, err := asm.ParseString(strings.Join(program, "\n"))
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []string{
		"a:",
		"b:",
		"    add r2",
		"    mov [r3], r7",
		"done:",
		"",
	}
	assert.Equal(strings.Join(expected, "\n"), prog.String())
}
