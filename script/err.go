package script

import (
	"github.com/pkg/errors"

	"github.com/ezrec/starfish/translate"
)

var f = translate.From

var (
	ErrNoMemory = errors.New(f("machine has no memory"))
)

// ErrScript is the error of a script run.
type ErrScript struct {
	Filename  string
	Backtrace string // Starlark call stack, when known.
	Err       error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrPartUnknown is returned when no part has the name.
type ErrPartUnknown string

func (err ErrPartUnknown) Error() string {
	return f("part '%v' unknown", string(err))
}

// ErrValueUnknown is returned when a part has no display value of the name.
type ErrValueUnknown string

func (err ErrValueUnknown) Error() string {
	return f("value '%v' unknown", string(err))
}

// ErrFlagUnknown is returned when no flag has the name.
type ErrFlagUnknown string

func (err ErrFlagUnknown) Error() string {
	return f("flag '%v' unknown", string(err))
}

// ErrPartType is returned when a part is not of the required type.
type ErrPartType struct {
	Name string
	Want string
}

func (err *ErrPartType) Error() string {
	return f("%v is not a %v", err.Name, err.Want)
}

// ErrNotWiring is returned when a wiring argument is of another type.
type ErrNotWiring string

func (err ErrNotWiring) Error() string {
	return f("got %v, want wiring", string(err))
}

// ErrWordRange is returned when an integer does not fit a 16-bit word.
type ErrWordRange int

func (err ErrWordRange) Error() string {
	return f("%d does not fit in 16 bits", int(err))
}
