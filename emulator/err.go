package emulator

import (
	"errors"

	"github.com/ezrec/minicpu/translate"
)

var f = translate.From

var (
	ErrMemoryLimit = errors.New(f("memory image too large"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
