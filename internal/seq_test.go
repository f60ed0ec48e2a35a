package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pairs(keys ...string) func(yield func(string, int) bool) {
	return func(yield func(string, int) bool) {
		for n, k := range keys {
			if !yield(k, n) {
				return
			}
		}
	}
}

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	var vals []int
	for k, v := range Concat2(pairs("a", "b"), pairs(), pairs("c")) {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	assert.Equal([]string{"a", "b", "c"}, keys)
	assert.Equal([]int{0, 1, 0}, vals)
}

func TestConcat2_Stop(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	for k := range Concat2(pairs("a", "b"), pairs("c")) {
		keys = append(keys, k)
		if k == "b" {
			break
		}
	}

	assert.Equal([]string{"a", "b"}, keys)
}

func TestPrefix(t *testing.T) {
	assert := assert.New(t)

	got := maps.Collect(Prefix("Register A", pairs("Value", "Wires")))
	keys := slices.Sorted(maps.Keys(got))

	assert.Equal([]string{"Register A.Value", "Register A.Wires"}, keys)
	assert.Equal(1, got["Register A.Wires"])
}
