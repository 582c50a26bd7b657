// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/ezrec/minicpu/cpu"
	"github.com/ezrec/minicpu/emulator"
)

var (
	ErrTerminal = errors.New("step mode requires a terminal")
	ErrUsage    = errors.New("usage")
)

// stepMode runs the emulator one key press at a time, with stdin in raw mode.
func stepMode(emu *emulator.Emulator, color bool) (err error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		err = ErrTerminal
		return
	}

	fd := int(os.Stdin.Fd())
	state, err := readline.MakeRaw(fd)
	if err != nil {
		err = errors.Wrap(err, "raw mode")
		return
	}
	defer readline.Restore(fd, state)

	// The reader stays blocked on stdin after the stepper returns; it
	// ends with the process.
	keys := make(chan byte, 16)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()

	fmt.Fprint(os.Stdout, "s: step, q: quit\r\n")

	st := &emulator.Stepper{
		Verbose:  emu.Verbose,
		Emulator: emu,
		Keys:     keys,
		Output:   os.Stdout,
		Color:    color,
	}

	err = st.Run(context.Background())

	return
}

// run assembles and executes the program named in args. Usage problems
// are reported to stderr as ErrUsage, before any file is read.
func run(args []string, stdout io.Writer, stderr io.Writer) (err error) {
	var memory string
	var step bool
	var color bool
	var verbose bool

	flags := flag.NewFlagSet("minicpu", flag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&memory, "m", "", "Memory image to preload")
	flags.BoolVar(&step, "s", false, "Single step mode")
	flags.BoolVar(&color, "color", isatty.IsTerminal(os.Stdout.Fd()), "Highlight register changes in step mode")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %v [options] program.asm\n", flags.Name())
		flags.PrintDefaults()
	}

	err = flags.Parse(args)
	if err != nil {
		err = ErrUsage
		return
	}

	if flags.NArg() != 1 {
		flags.Usage()
		err = ErrUsage
		return
	}

	source := flags.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(memory) != 0 {
		var inf *os.File
		inf, err = os.Open(memory)
		if err != nil {
			return
		}
		err = emu.LoadMemory(inf)
		inf.Close()
		if err != nil {
			err = errors.Wrap(err, memory)
			return
		}
	}

	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		err = errors.Wrap(err, source)
		return
	}

	emu.Program = prog
	err = emu.Reset()
	if err != nil {
		err = errors.Wrap(err, source)
		return
	}

	if step {
		err = errors.Wrap(stepMode(emu, color), source)
		return
	}

	err = emu.Run()
	fmt.Fprint(stdout, emu.Cpu.String())
	err = errors.Wrap(err, source)

	return
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, ErrUsage) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
