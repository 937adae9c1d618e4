package main

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nf/intcode/arcade"
)

var errQuit = errors.New("quit")

// term draws an arcade cabinet's screen in the terminal and reads the
// joystick from the keyboard.
type term struct {
	s    tcell.Screen
	keys chan *tcell.EventKey
}

var tileStyles = [...]tcell.Style{
	arcade.Empty:  tcell.StyleDefault,
	arcade.Wall:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	arcade.Block:  tcell.StyleDefault.Foreground(tcell.ColorOrange),
	arcade.Paddle: tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true),
	arcade.Ball:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
}

func newTerm() (*term, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	t := &term{s: s, keys: make(chan *tcell.EventKey, 16)}
	go t.poll()
	return t, nil
}

func (t *term) poll() {
	defer close(t.keys)
	for {
		switch ev := t.s.PollEvent().(type) {
		case nil:
			return // screen finalized
		case *tcell.EventResize:
			t.s.Sync()
		case *tcell.EventKey:
			select {
			case t.keys <- ev:
			default:
			}
		}
	}
}

func (t *term) close() { t.s.Fini() }

func (t *term) draw(c *arcade.Cabinet) {
	t.s.Clear()
	b := c.Bounds()
	for y := 0; y < b.Max.Y; y++ {
		for x := 0; x < b.Max.X; x++ {
			tile := c.Tile(image.Pt(x, y))
			t.s.SetContent(x, y, tile.Rune(), nil, tileStyles[tile])
		}
	}
	status := fmt.Sprintf("score %d  blocks %d", c.Score(), c.Blocks())
	for i, r := range status {
		t.s.SetContent(i, b.Max.Y+1, r, nil, tcell.StyleDefault.Bold(true))
	}
	t.s.Show()
}

// joystick waits for a key: the left and right arrows move the paddle,
// any other key holds it still, and Escape or Ctrl-C quits.
func (t *term) joystick(*arcade.Cabinet) (int, error) {
	ev, ok := <-t.keys
	if !ok || quitKey(ev) {
		return 0, errQuit
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		return arcade.JoyLeft, nil
	case tcell.KeyRight:
		return arcade.JoyRight, nil
	}
	return arcade.JoyNeutral, nil
}

// autoJoystick plays automatically, pausing for delay between moves,
// until Escape or Ctrl-C is pressed.
func (t *term) autoJoystick(delay time.Duration) arcade.Joystick {
	return func(c *arcade.Cabinet) (int, error) {
		select {
		case ev, ok := <-t.keys:
			if !ok || quitKey(ev) {
				return 0, errQuit
			}
		default:
		}
		time.Sleep(delay)
		return arcade.AutoJoystick(c)
	}
}

func quitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}
