package vm

import (
	"errors"

	"github.com/ezrec/starfish/translate"
)

var f = translate.From

var (
	// Memory image errors
	ErrImageSize = errors.New(f("image exceeds memory"))
	ErrImageOdd  = errors.New(f("image has a trailing odd byte"))
)

// ErrCommandUnknown is returned when a command name is not registered.
type ErrCommandUnknown string

func (err ErrCommandUnknown) Error() string {
	return f("command '%v' unknown", string(err))
}
