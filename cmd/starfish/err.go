package main

import (
	"errors"
)

var (
	ErrNoHalt = errors.New(f("machine has no Halt flag"))
)

// ErrImage is an error loading a memory image.
type ErrImage struct {
	Path string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
