package robot

import (
	"errors"
	"image"
	"math/big"
	"testing"

	"github.com/nf/intcode/intcode"
)

// scriptBrain replies to each Run with the next scripted outputs and
// halts after the last reply.
type scriptBrain struct {
	replies [][]int64
	inputs  []int64
}

func (b *scriptBrain) Run(in ...*big.Int) ([]*big.Int, error) {
	for _, v := range in {
		b.inputs = append(b.inputs, v.Int64())
	}
	r := b.replies[0]
	b.replies = b.replies[1:]
	return intcode.Ints(r...), nil
}

func (b *scriptBrain) Halted() bool { return len(b.replies) == 0 }

func TestPaint(t *testing.T) {
	b := &scriptBrain{replies: [][]int64{
		{1, 0}, {0, 0}, {1, 0}, {1, 0}, {0, 1}, {1, 0}, {1, 0},
	}}
	h, err := Paint(b, Black)
	if err != nil {
		t.Fatal(err)
	}
	if g := h.Painted(); g != 6 {
		t.Errorf("Painted() = %d, want 6", g)
	}
	want := []int64{0, 0, 0, 0, 1, 0, 0}
	if len(b.inputs) != len(want) {
		t.Fatalf("brain saw inputs %v, want %v", b.inputs, want)
	}
	for i := range want {
		if b.inputs[i] != want[i] {
			t.Fatalf("brain saw inputs %v, want %v", b.inputs, want)
		}
	}
	if g, w := h.Bounds(), image.Rect(-1, -1, 2, 2); g != w {
		t.Errorf("Bounds() = %v, want %v", g, w)
	}
	if g, w := h.String(), "  █\n  █\n██ \n"; g != w {
		t.Errorf("String() =\n%s\nwant\n%s", g, w)
	}
	m := h.Image()
	if g := m.ColorIndexAt(0, 2); g != uint8(White) {
		t.Errorf("Image at (0,2) = %d, want white", g)
	}
	if g := m.ColorIndexAt(0, 0); g != uint8(Black) {
		t.Errorf("Image at (0,0) = %d, want black", g)
	}
}

func TestPaintMachine(t *testing.T) {
	// Reads the panel, paints it white, turns left, halts.
	m := intcode.New(intcode.Ints(3, 100, 104, 1, 104, 0, 99), true)
	h, err := Paint(m, Black)
	if err != nil {
		t.Fatal(err)
	}
	if h.Painted() != 1 || h.At(image.Point{}) != White {
		t.Errorf("got %d painted, origin %v; want 1, white", h.Painted(), h.At(image.Point{}))
	}
	if g := m.Mem.Load(100); g.Sign() != 0 {
		t.Errorf("brain read %v, want black (0)", g)
	}
}

func TestPaintStartWhite(t *testing.T) {
	m := intcode.New(intcode.Ints(3, 100, 4, 100, 104, 1, 99), true)
	h, err := Paint(m, White)
	if err != nil {
		t.Fatal(err)
	}
	if h.At(image.Point{}) != White {
		t.Errorf("origin is %v, want white", h.At(image.Point{}))
	}
}

func TestPaintErrors(t *testing.T) {
	for _, c := range []struct {
		name string
		prog []int64
		err  error
	}{
		{"odd", []int64{3, 100, 104, 1, 99}, nil},
		{"colour", []int64{3, 100, 104, 7, 104, 0, 99}, nil},
		{"turn", []int64{3, 100, 104, 1, 104, 2, 99}, nil},
		{"stall", []int64{3, 100, 3, 100, 99}, ErrStalled},
		{"fault", []int64{3, 100, 55}, intcode.UnknownOpcode},
	} {
		t.Run(c.name, func(t *testing.T) {
			m := intcode.New(intcode.Ints(c.prog...), true)
			_, err := Paint(m, Black)
			if err == nil {
				t.Fatal("Paint succeeded")
			}
			if c.err != nil && !errors.Is(err, c.err) {
				t.Errorf("got %v, want %v", err, c.err)
			}
		})
	}
}
