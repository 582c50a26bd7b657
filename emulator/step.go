package emulator

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

const (
	STEP_POLL = 500 * time.Millisecond // Default key poll interval.

	KEY_STEP      = 's'  // Execute one instruction.
	KEY_QUIT      = 'q'  // Stop stepping.
	KEY_INTERRUPT = 0x03 // Ctrl-C, seen as a key in raw mode.
)

// Stepper drives an Emulator one instruction per key press.
type Stepper struct {
	Verbose  bool
	Emulator *Emulator
	Keys     <-chan byte   // Key presses. Closing the channel quits.
	Output   io.Writer     // Terminal output, in raw mode.
	Poll     time.Duration // Key poll interval. Defaults to STEP_POLL.
	Color    bool          // Highlight register changes.

	status StatusDiff
}

// print writes text with raw mode line endings.
func (st *Stepper) print(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	fmt.Fprint(st.Output, strings.ReplaceAll(text, "\n", "\r\n"))
}

// Step executes a single instruction, and prints the changed registers.
func (st *Stepper) Step() (done bool, err error) {
	emu := st.Emulator

	lineno := emu.LineNo()
	ins := emu.Instruction()

	done, err = emu.Tick()
	if err != nil || done {
		return
	}

	st.print("%d: %v\n", lineno, ins)
	st.print("%v", st.status.Changes(true).String(st.Color))

	return
}

// Run waits for keys until quit, a fault, or the end of the program.
// The final register state is always printed.
func (st *Stepper) Run(ctx context.Context) (err error) {
	poll := st.Poll
	if poll <= 0 {
		poll = STEP_POLL
	}

	st.status = StatusDiff{Cpu: st.Emulator.Cpu}
	st.status.Changes(true)

	defer func() {
		st.print("%v", st.Emulator.Cpu.String())
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-st.Keys:
			if !ok {
				return
			}
			switch key {
			case KEY_STEP:
				var done bool
				done, err = st.Step()
				if err != nil {
					st.print("%v\n", err)
					return
				}
				if done || st.Emulator.Cpu.Done() {
					st.print("%v\n", f("program complete"))
					return
				}
			case KEY_QUIT, KEY_INTERRUPT:
				return
			}
		case <-time.After(poll):
			if st.Verbose {
				log.Printf("stepper: idle at line %d", st.Emulator.LineNo())
			}
		}
	}
}
