package emulator

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/ezrec/minicpu/cpu"
)

// Hex digits in a rendered register.
const WORD_DIGITS = 4

var chSame = ansi.ColorCode("default:default")
var chNew = ansi.ColorCode("default+bu:default")

func colorPad(s, color string, pad int) string {
	length := len(s)
	s = color + s + ansi.Reset
	if length < pad {
		s = strings.Repeat(" ", pad-length) + s
	}
	return s
}

// ChangeMask is a run of hex digits that did, or did not, change.
type ChangeMask struct {
	Old, New string
	Changed  bool
}

// Change is the before and after value of a single register.
type Change struct {
	Old, New uint16
	Register cpu.Register
}

// Changed returns true if the register value differs.
func (c *Change) Changed() bool {
	return c.Old != c.New
}

// Mask splits the rendered value into changed and unchanged digit runs.
func (c *Change) Mask() []ChangeMask {
	hexFmt := fmt.Sprintf("%%0%dx", WORD_DIGITS)
	s1, s2 := fmt.Sprintf(hexFmt, c.New), fmt.Sprintf(hexFmt, c.Old)
	pos := 0
	matching := true
	masks := make([]ChangeMask, 0, len(s1))
	for i := range s1 {
		if (s1[i] == s2[i]) != matching {
			if i > pos {
				masks = append(masks, ChangeMask{
					New:     s1[pos:i],
					Old:     s2[pos:i],
					Changed: !matching,
				})
				pos = i
			}
			matching = !matching
		}
	}
	if pos < len(s1) {
		masks = append(masks, ChangeMask{
			New:     s1[pos:],
			Old:     s2[pos:],
			Changed: !matching,
		})
	}
	return masks
}

// String renders the register, highlighting changed digits when color is
// set, or with a '+' marker otherwise.
func (c *Change) String(color bool) string {
	var out []string
	hexFmt := fmt.Sprintf("%%0%dx", WORD_DIGITS)
	name := c.Register.String()
	lineStart := fmt.Sprintf("  %4s 0x", name)
	if c.Changed() {
		if color {
			out = append(out, fmt.Sprintf("  %s 0x", colorPad(name, chNew, 4)))
			for _, mask := range c.Mask() {
				col := chSame
				if mask.Changed {
					col = chNew
				}
				out = append(out, col+mask.New)
			}
			out = append(out, ansi.Reset)
		} else {
			out = append(out, fmt.Sprintf("+ %4s 0x"+hexFmt, name, c.New))
		}
	} else {
		out = append(out, fmt.Sprintf(lineStart+hexFmt, c.New))
	}
	return strings.Join(out, "")
}

// Changes is a set of register changes.
type Changes struct {
	Changes []*Change
}

// Columns of registers per row of output.
const CHANGE_COLUMNS = 4

// String renders the changes, CHANGE_COLUMNS registers per line.
func (cs *Changes) String(color bool) string {
	var out []string
	for n, c := range cs.Changes {
		out = append(out, c.String(color))
		if (n+1)%CHANGE_COLUMNS == 0 || n == len(cs.Changes)-1 {
			out = append(out, "\n")
		} else {
			out = append(out, " ")
		}
	}
	return strings.Join(out, "")
}

// Changed returns only the registers that changed.
func (cs *Changes) Changed() []*Change {
	ret := make([]*Change, 0, cs.Count())
	for _, c := range cs.Changes {
		if c.Changed() {
			ret = append(ret, c)
		}
	}
	return ret
}

// Count returns the number of changed registers.
func (cs *Changes) Count() int {
	ret := 0
	for _, c := range cs.Changes {
		if c.Changed() {
			ret += 1
		}
	}
	return ret
}

// Find returns the change for a register, or nil.
func (cs *Changes) Find(reg cpu.Register) *Change {
	for _, c := range cs.Changes {
		if c.Register == reg {
			return c
		}
	}
	return nil
}

// StatusDiff tracks the register file of a Cpu between calls to Changes.
type StatusDiff struct {
	Cpu     *cpu.Cpu
	oldRegs [cpu.REGISTER_COUNT]uint16
}

// Changes compares the register file against the previous call, which
// starts out as all zeros.
func (s *StatusDiff) Changes(onlyChanged bool) *Changes {
	regs := s.Cpu.Register
	cs := make([]*Change, 0, len(regs))
	for n, val := range regs {
		change := &Change{
			Old:      s.oldRegs[n],
			New:      val,
			Register: cpu.Register(n),
		}
		if !onlyChanged || change.Changed() {
			cs = append(cs, change)
		}
	}
	s.oldRegs = regs
	return &Changes{Changes: cs}
}
