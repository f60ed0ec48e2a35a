package graph

import (
	"errors"

	"github.com/ezrec/starfish/translate"
)

var f = translate.From

var (
	ErrCycle = errors.New(f("cyclic graph"))
)
