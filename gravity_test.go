package main

import (
	"math/big"
	"testing"

	"github.com/nf/intcode/intcode"
)

func TestPatch(t *testing.T) {
	prog := intcode.Ints(1, 0, 0, 3, 99)
	for _, c := range []struct {
		noun, verb int
		want       []int64
	}{
		{12, 2, []int64{1, 12, 2, 3, 99}},
		{-1, 7, []int64{1, 0, 7, 3, 99}},
		{5, -1, []int64{1, 5, 0, 3, 99}},
		{-1, -1, []int64{1, 0, 0, 3, 99}},
	} {
		if g := patch(prog, c.noun, c.verb); !intcode.Equal(g, intcode.Ints(c.want...)) {
			t.Errorf("patch(%d, %d) = %v, want %v", c.noun, c.verb, intcode.Format(g), c.want)
		}
	}
	if g, w := intcode.Format(prog), "1,0,0,3,99"; g != w {
		t.Errorf("patch modified its input: %s", g)
	}
	if g, w := patch(intcode.Ints(99), 4, 5), intcode.Ints(99, 4, 5); !intcode.Equal(g, w) {
		t.Errorf("patch of short program = %v, want %v", intcode.Format(g), intcode.Format(w))
	}
}

func TestAssist(t *testing.T) {
	// Address 0 ends up holding [noun] + [verb].
	prog := intcode.Ints(1, 0, 0, 0, 99)
	noun, verb, err := assist(prog, big.NewInt(100))
	if err != nil {
		t.Fatal(err)
	}
	if noun != 0 || verb != 4 {
		t.Errorf("assist = %d, %d, want 0, 4", noun, verb)
	}

	if _, _, err := assist(prog, big.NewInt(-1)); err != errNoAssist {
		t.Errorf("assist of unreachable target returned %v, want %v", err, errNoAssist)
	}
}
