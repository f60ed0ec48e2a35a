package emulator

import (
	"errors"

	"github.com/ezrec/starfish/translate"
)

var f = translate.From

// ErrLimit is returned by Run when the cycle limit is reached before the
// stop condition.
var ErrLimit = errors.New(f("cycle limit reached"))

// ErrRuntime indicates the cycle of a runtime error.
type ErrRuntime struct {
	Cycle uint64
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("cycle %d: %v", err.Cycle, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
