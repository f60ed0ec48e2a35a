// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package logger

import (
	"io"
	"log"

	"github.com/ezrec/starfish/translate"
)

var f = translate.From

// Std writes entries through a standard library logger.
type Std struct {
	Verbose bool // If set, Info entries are written too.

	out *log.Logger
}

var _ Logger = (*Std)(nil)

// NewStd creates a logger writing to w.
func NewStd(w io.Writer, verbose bool) (std *Std) {
	std = &Std{
		Verbose: verbose,
		out:     log.New(w, "starfish: ", log.LstdFlags),
	}

	return
}

func (std *Std) Info(message string) {
	if std.Verbose {
		std.out.Print(f("%v: %v", LEVEL_INFO, message))
	}
}

func (std *Std) Warn(message string) {
	std.out.Print(f("%v: %v", LEVEL_WARN, message))
}

func (std *Std) Error(message string) {
	std.out.Print(f("%v: %v", LEVEL_ERROR, message))
}
