package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/minicpu/cpu"
	"github.com/ezrec/minicpu/emulator"
)

func writeFile(t *testing.T, name string, text string) (path string) {
	path = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return
}

func TestRunUsage(t *testing.T) {
	assert := assert.New(t)

	missing := filepath.Join(t.TempDir(), "missing.img")

	table := [][]string{
		{},
		{"-v"},
		{"-m", missing},
		{"a.asm", "b.asm"},
		{"-unknown", "a.asm"},
	}

	for _, args := range table {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := run(args, stdout, stderr)
		assert.ErrorIs(err, ErrUsage, args)
		assert.Contains(stderr.String(), "usage: minicpu [options] program.asm", args)
		assert.Empty(stdout.String(), args)
	}
}

func TestRunBatch(t *testing.T) {
	assert := assert.New(t)

	source := writeFile(t, "sum.asm", "mov 2, r0\nadd [r0]\nadd MEMORY_SIZE\nmov acc, r8\n")
	memory := writeFile(t, "sum.img", "10 20 30 // three words\n")

	stdout := &bytes.Buffer{}
	err := run([]string{"-m", memory, source}, stdout, &bytes.Buffer{})
	assert.NoError(err)
	assert.Contains(stdout.String(), "   ip: 4/4\n")
	assert.Contains(stdout.String(), "  acc: 0021\n")
	assert.Contains(stdout.String(), "   r8: 0021\n")
}

func TestRunErrors(t *testing.T) {
	assert := assert.New(t)

	err := run([]string{filepath.Join(t.TempDir(), "none.asm")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.True(errors.Is(err, os.ErrNotExist))

	bad := writeFile(t, "bad.asm", "add 1\nmul 2\n")
	err = run([]string{bad}, &bytes.Buffer{}, &bytes.Buffer{})
	var syntax *cpu.ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(2, syntax.LineNo)
	}
	assert.Contains(err.Error(), bad)

	// Registers are still reported for a faulting program.
	fault := writeFile(t, "fault.asm", "add 3\nsub 4\n")
	stdout := &bytes.Buffer{}
	err = run([]string{fault}, stdout, &bytes.Buffer{})
	assert.ErrorIs(err, cpu.ErrUnderflow)
	var runtime *emulator.ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
	}
	assert.Contains(stdout.String(), "  acc: 0003\n")

	image := writeFile(t, "bad.img", "1 two\n")
	err = run([]string{"-m", image, fault}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(err, cpu.ErrParseValue("two"))
}
