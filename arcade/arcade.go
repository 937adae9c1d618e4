// Package arcade implements an arcade cabinet running an Intcode game.
//
// The game draws by emitting triples of output values: x, y and a tile id.
// The triple (-1, 0, n) instead sets the score display to n. When the game
// reads input it is reading the joystick position.
package arcade

import (
	"fmt"
	"image"
	"image/color"
	"math/big"
	"strings"

	"github.com/nf/intcode/intcode"
)

// Tile is the kind of object drawn at a screen position.
type Tile byte

const (
	Empty Tile = iota
	Wall
	Block
	Paddle
	Ball
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Block:
		return "block"
	case Paddle:
		return "paddle"
	case Ball:
		return "ball"
	}
	return fmt.Sprintf("Tile(%d)", byte(t))
}

// Rune returns the character used to show t in text.
func (t Tile) Rune() rune {
	if t > Ball {
		return '?'
	}
	return []rune(" █#▔●")[t]
}

// Palette maps Tiles to display colours.
var Palette = color.Palette{
	Empty:  color.RGBA{0x10, 0x10, 0x18, 0xff},
	Wall:   color.RGBA{0x80, 0x80, 0x90, 0xff},
	Block:  color.RGBA{0xd0, 0x60, 0x30, 0xff},
	Paddle: color.RGBA{0x40, 0xa0, 0xf0, 0xff},
	Ball:   color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// Joystick positions.
const (
	JoyLeft    = -1
	JoyNeutral = 0
	JoyRight   = 1
)

// Cabinet holds the screen and score display of an arcade cabinet.
type Cabinet struct {
	tiles  map[image.Point]Tile
	score  int64
	ball   image.Point
	paddle image.Point
	bounds image.Rectangle
}

// New returns a cabinet with a blank screen.
func New() *Cabinet {
	return &Cabinet{tiles: make(map[image.Point]Tile)}
}

// Draw applies a sequence of game output triples to the screen and score.
func (c *Cabinet) Draw(out []*big.Int) error {
	if len(out)%3 != 0 {
		return fmt.Errorf("draw: %d values is not a whole number of triples", len(out))
	}
	for i := 0; i < len(out); i += 3 {
		x, y, v := out[i], out[i+1], out[i+2]
		if !x.IsInt64() || !y.IsInt64() || !v.IsInt64() {
			return fmt.Errorf("draw: value out of range in (%v, %v, %v)", x, y, v)
		}
		if x.Int64() == -1 && y.Int64() == 0 {
			c.score = v.Int64()
			continue
		}
		if x.Int64() < 0 || y.Int64() < 0 {
			return fmt.Errorf("draw: position (%v, %v) off screen", x, y)
		}
		t := Tile(v.Int64())
		if v.Int64() < 0 || t > Ball {
			return fmt.Errorf("draw: invalid tile %v", v)
		}
		p := image.Pt(int(x.Int64()), int(y.Int64()))
		c.tiles[p] = t
		c.bounds = c.bounds.Union(image.Rectangle{p, p.Add(image.Pt(1, 1))})
		switch t {
		case Ball:
			c.ball = p
		case Paddle:
			c.paddle = p
		}
	}
	return nil
}

// Tile returns the tile drawn at p.
func (c *Cabinet) Tile(p image.Point) Tile { return c.tiles[p] }

// Score returns the value on the score display.
func (c *Cabinet) Score() int64 { return c.score }

// Blocks returns the number of block tiles on the screen.
func (c *Cabinet) Blocks() int {
	n := 0
	for _, t := range c.tiles {
		if t == Block {
			n++
		}
	}
	return n
}

// Ball returns the position where the ball was last drawn.
func (c *Cabinet) Ball() image.Point { return c.ball }

// Paddle returns the position where the paddle was last drawn.
func (c *Cabinet) Paddle() image.Point { return c.paddle }

// Bounds returns the area of the screen drawn so far. Its minimum is
// always the origin once anything has been drawn.
func (c *Cabinet) Bounds() image.Rectangle {
	if c.bounds.Empty() {
		return c.bounds
	}
	return image.Rectangle{Max: c.bounds.Max}
}

// Image renders the screen with one pixel per tile.
func (c *Cabinet) Image() *image.Paletted {
	m := image.NewPaletted(c.Bounds(), Palette)
	for p, t := range c.tiles {
		m.SetColorIndex(p.X, p.Y, uint8(t))
	}
	return m
}

func (c *Cabinet) String() string {
	var (
		b  = c.Bounds()
		sb strings.Builder
	)
	for y := 0; y < b.Max.Y; y++ {
		for x := 0; x < b.Max.X; x++ {
			sb.WriteRune(c.Tile(image.Pt(x, y)).Rune())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "score: %d\n", c.score)
	return sb.String()
}

// Game is the program running in the cabinet, typically a suspending
// *intcode.Machine.
type Game interface {
	Run(in ...*big.Int) ([]*big.Int, error)
	Halted() bool
}

// Joystick decides the joystick position for the next game input.
type Joystick func(c *Cabinet) (int, error)

// AutoJoystick moves the paddle toward the ball.
func AutoJoystick(c *Cabinet) (int, error) {
	switch {
	case c.ball.X < c.paddle.X:
		return JoyLeft, nil
	case c.ball.X > c.paddle.X:
		return JoyRight, nil
	}
	return JoyNeutral, nil
}

// Play runs g until it halts, drawing its output on a new cabinet and
// supplying joystick positions from joy whenever the game waits for input.
// If frame is non-nil it is called after each batch of output is drawn.
func Play(g Game, joy Joystick, frame func(*Cabinet)) (*Cabinet, error) {
	var (
		c  = New()
		in []*big.Int
	)
	for !g.Halted() {
		out, err := g.Run(in...)
		if derr := c.Draw(out); derr != nil && err == nil {
			err = derr
		}
		if err != nil {
			return c, fmt.Errorf("game: %w", err)
		}
		if frame != nil {
			frame(c)
		}
		if g.Halted() {
			break
		}
		pos, err := joy(c)
		if err != nil {
			return c, fmt.Errorf("joystick: %w", err)
		}
		in = []*big.Int{big.NewInt(int64(pos))}
	}
	return c, nil
}

// FreePlay returns a copy of prog with the cabinet set to play for free,
// by writing 2 at address 0.
func FreePlay(prog []*big.Int) []*big.Int {
	p := intcode.Clone(prog)
	if len(p) == 0 {
		return intcode.Ints(2)
	}
	p[0].SetInt64(2)
	return p
}
