package emulator

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/minicpu/cpu"
)

func doStep(emu *Emulator, keys string, t *testing.T) (output string, err error) {
	ch := make(chan byte, len(keys))
	for _, key := range []byte(keys) {
		ch <- key
	}
	close(ch)

	out := &bytes.Buffer{}
	st := &Stepper{
		Emulator: emu,
		Keys:     ch,
		Output:   out,
		Poll:     time.Millisecond,
	}

	err = st.Run(context.Background())
	output = out.String()
	return
}

func TestStepper(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"add 5", "mov acc, r2", "sub 1"}, t)

	// Unknown keys are ignored; 'q' stops before the program is done.
	output, err := doStep(emu, "xsq", t)
	assert.NoError(err)
	assert.Equal(1, emu.Cpu.Ip)
	assert.Contains(output, "1: add 5\r\n")
	assert.Contains(output, "+  acc 0x0005\r\n")
	assert.NotContains(output, "mov acc, r2")
	assert.Contains(output, "  acc: 0005\r\n")
}

func TestStepperComplete(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"add 5", "mov acc, r2", "sub 1"}, t)

	output, err := doStep(emu, "sssss", t)
	assert.NoError(err)
	assert.True(emu.Cpu.Done())
	assert.Contains(output, "2: mov acc, r2\r\n")
	assert.Contains(output, "+   r2 0x0005\r\n")
	assert.Contains(output, "3: sub 1\r\n")
	assert.Contains(output, "program complete\r\n")
	assert.Contains(output, "   r2: 0005\r\n")
	assert.Contains(output, "  acc: 0004\r\n")
}

func TestStepperMatchesRun(t *testing.T) {
	assert := assert.New(t)

	program := []string{"mov 3, r1", "add r1", "add [r0]", "mov acc, r4", "sub r1"}

	batch := NewEmulator()
	batch.Cpu.Memory = []uint16{40}
	doAssemble(batch, program, t)
	assert.NoError(batch.Run())

	step := NewEmulator()
	step.Cpu.Memory = []uint16{40}
	doAssemble(step, program, t)
	_, err := doStep(step, "ssssss", t)
	assert.NoError(err)

	assert.Equal(batch.Cpu.Register, step.Cpu.Register)
}

func TestStepperFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"add 1", "sub 2", "add 3"}, t)

	output, err := doStep(emu, "sss", t)
	assert.ErrorIs(err, cpu.ErrUnderflow)
	assert.Equal(1, emu.Cpu.Ip)
	assert.Contains(output, "line 2 ")
	assert.Contains(output, "  acc: 0001\r\n")
}

func TestStepperCancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"add 1"}, t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &bytes.Buffer{}
	st := &Stepper{Emulator: emu, Keys: make(chan byte), Output: out}
	assert.NoError(st.Run(ctx))
	assert.Equal(0, emu.Cpu.Ip)
	assert.Contains(out.String(), "   ip: 0/1\r\n")
}
