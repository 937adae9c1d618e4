// Package robot implements a hull-painting robot steered by an Intcode
// program. The program reads the colour of the panel under the robot and
// responds with a colour to paint and a direction to turn.
package robot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/big"
	"strings"
)

// Brain is the program controlling the robot, typically a suspending
// *intcode.Machine.
type Brain interface {
	Run(in ...*big.Int) ([]*big.Int, error)
	Halted() bool
}

// Color is the colour of a hull panel.
type Color byte

const (
	Black Color = 0
	White Color = 1
)

// Turn directions emitted by the brain.
const (
	Left  = 0
	Right = 1
)

// Palette maps Colors to display colours.
var Palette = color.Palette{color.Black, color.White}

// Directions in image coordinates, clockwise from up.
var dirs = [4]image.Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Hull is a grid of panels, all initially black.
type Hull struct {
	panels  map[image.Point]Color
	painted map[image.Point]bool
}

func newHull() *Hull {
	return &Hull{
		panels:  make(map[image.Point]Color),
		painted: make(map[image.Point]bool),
	}
}

// At returns the colour of the panel at p.
func (h *Hull) At(p image.Point) Color { return h.panels[p] }

// Painted returns the number of panels painted at least once.
func (h *Hull) Painted() int { return len(h.painted) }

func (h *Hull) paint(p image.Point, c Color) {
	h.panels[p] = c
	h.painted[p] = true
}

// Bounds returns the smallest rectangle containing every white panel.
func (h *Hull) Bounds() image.Rectangle {
	var r image.Rectangle
	for p, c := range h.panels {
		if c != White {
			continue
		}
		pr := image.Rectangle{p, p.Add(image.Pt(1, 1))}
		if r.Empty() {
			r = pr
		} else {
			r = r.Union(pr)
		}
	}
	return r
}

// Image renders the white panels, with the top-left of Bounds at the origin.
func (h *Hull) Image() *image.Paletted {
	b := h.Bounds()
	m := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), Palette)
	for p, c := range h.panels {
		if c == White {
			q := p.Sub(b.Min)
			m.SetColorIndex(q.X, q.Y, uint8(White))
		}
	}
	return m
}

func (h *Hull) String() string {
	var (
		b  = h.Bounds()
		sb strings.Builder
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if h.At(image.Pt(x, y)) == White {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ErrStalled is returned by Paint when the brain neither halts nor
// issues an instruction.
var ErrStalled = errors.New("brain stalled")

// Paint runs the robot from the origin, facing up, on a hull whose starting
// panel has colour start, until the brain halts.
func Paint(b Brain, start Color) (*Hull, error) {
	var (
		h   = newHull()
		pos image.Point
		dir int
	)
	h.panels[pos] = start
	for !b.Halted() {
		out, err := b.Run(big.NewInt(int64(h.At(pos))))
		if err != nil {
			return h, fmt.Errorf("robot at %v: %w", pos, err)
		}
		if len(out)%2 != 0 {
			return h, fmt.Errorf("robot at %v: odd number of outputs (%d)", pos, len(out))
		}
		if len(out) == 0 && !b.Halted() {
			return h, fmt.Errorf("robot at %v: %w", pos, ErrStalled)
		}
		for i := 0; i < len(out); i += 2 {
			c, turn := out[i], out[i+1]
			if !c.IsInt64() || (c.Int64() != int64(Black) && c.Int64() != int64(White)) {
				return h, fmt.Errorf("robot at %v: invalid colour %v", pos, c)
			}
			h.paint(pos, Color(c.Int64()))
			switch {
			case turn.IsInt64() && turn.Int64() == Left:
				dir = (dir + 3) % 4
			case turn.IsInt64() && turn.Int64() == Right:
				dir = (dir + 1) % 4
			default:
				return h, fmt.Errorf("robot at %v: invalid turn %v", pos, turn)
			}
			pos = pos.Add(dirs[dir])
		}
	}
	return h, nil
}
