package arcade

import (
	"image"
	"math/big"
	"testing"

	"github.com/nf/intcode/intcode"
)

func TestDraw(t *testing.T) {
	c := New()
	err := c.Draw(intcode.Ints(
		0, 0, 1, 1, 0, 1, 2, 0, 1,
		1, 1, 2, 2, 1, 2,
		0, 2, 4,
		1, 3, 3,
		-1, 0, 12345,
	))
	if err != nil {
		t.Fatal(err)
	}
	if g := c.Blocks(); g != 2 {
		t.Errorf("Blocks() = %d, want 2", g)
	}
	if g := c.Score(); g != 12345 {
		t.Errorf("Score() = %d, want 12345", g)
	}
	if g, w := c.Ball(), image.Pt(0, 2); g != w {
		t.Errorf("Ball() = %v, want %v", g, w)
	}
	if g, w := c.Paddle(), image.Pt(1, 3); g != w {
		t.Errorf("Paddle() = %v, want %v", g, w)
	}
	if g, w := c.Bounds(), image.Rect(0, 0, 3, 4); g != w {
		t.Errorf("Bounds() = %v, want %v", g, w)
	}
	if g, w := c.String(), "███\n ##\n●  \n ▔ \nscore: 12345\n"; g != w {
		t.Errorf("String() =\n%s\nwant\n%s", g, w)
	}
	if g := c.Image().ColorIndexAt(1, 1); g != uint8(Block) {
		t.Errorf("Image at (1,1) = %d, want %d", g, Block)
	}

	// Blocks are cleared by drawing over them.
	if err := c.Draw(intcode.Ints(1, 1, 0)); err != nil {
		t.Fatal(err)
	}
	if g := c.Blocks(); g != 1 {
		t.Errorf("Blocks() after clearing = %d, want 1", g)
	}
}

func TestDrawErrors(t *testing.T) {
	for _, out := range [][]int64{
		{1, 2},
		{1, 2, 5},
		{1, 2, -1},
		{-2, 0, 1},
	} {
		if err := New().Draw(intcode.Ints(out...)); err == nil {
			t.Errorf("Draw(%v) succeeded", out)
		}
	}
}

func TestAutoJoystick(t *testing.T) {
	for _, c := range []struct {
		ball, paddle int64
		want         int
	}{
		{1, 5, JoyLeft},
		{5, 5, JoyNeutral},
		{9, 5, JoyRight},
	} {
		cab := New()
		if err := cab.Draw(intcode.Ints(c.ball, 1, int64(Ball), c.paddle, 3, int64(Paddle))); err != nil {
			t.Fatal(err)
		}
		if g, _ := AutoJoystick(cab); g != c.want {
			t.Errorf("ball %d paddle %d: got %d, want %d", c.ball, c.paddle, g, c.want)
		}
	}
}

func TestPlay(t *testing.T) {
	// Draws a ball at (5,0) and a paddle at (2,1), reads the joystick and
	// shows it as the score.
	prog := intcode.Ints(
		104, 5, 104, 0, 104, 4,
		104, 2, 104, 1, 104, 3,
		3, 100,
		104, -1, 104, 0, 4, 100,
		99,
	)
	frames := 0
	c, err := Play(intcode.New(prog, true), AutoJoystick, func(*Cabinet) { frames++ })
	if err != nil {
		t.Fatal(err)
	}
	if g := c.Score(); g != JoyRight {
		t.Errorf("Score() = %d, want %d", g, JoyRight)
	}
	if frames != 2 {
		t.Errorf("%d frames, want 2", frames)
	}
}

func TestPlayFault(t *testing.T) {
	m := intcode.New(intcode.Ints(104, 0, 104, 0, 104, 2, 3, 0, 55), true)
	c, err := Play(m, AutoJoystick, nil)
	if err == nil {
		t.Fatal("Play succeeded")
	}
	if c.Blocks() != 1 {
		t.Errorf("Blocks() = %d, want 1 drawn before the fault", c.Blocks())
	}
}

func TestFreePlay(t *testing.T) {
	prog := intcode.Ints(1, 2, 3)
	fp := FreePlay(prog)
	if !intcode.Equal(fp, intcode.Ints(2, 2, 3)) {
		t.Errorf("FreePlay = %v", intcode.Format(fp))
	}
	if prog[0].Cmp(big.NewInt(1)) != 0 {
		t.Errorf("FreePlay modified its argument")
	}
}
