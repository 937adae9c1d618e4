package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math/big"
	"time"

	"github.com/nf/intcode/amp"
	"github.com/nf/intcode/arcade"
	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/robot"
)

// run executes prog in the mode selected by cfg, writing results to w.
func run(w io.Writer, prog []*big.Int, cfg *config) error {
	switch cfg.mode() {
	case "amp":
		return runAmp(w, prog, cfg)
	case "paint":
		return runPaint(w, prog, cfg)
	case "arcade":
		return runArcade(w, prog, cfg)
	case "gravity":
		return runGravity(w, prog, cfg)
	}
	return runProgram(w, prog, cfg)
}

func newMachine(prog []*big.Int, suspend bool, cfg *config) *intcode.Machine {
	m := intcode.New(prog, suspend)
	if cfg.Trace {
		m.Trace = trace
	}
	return m
}

func trace(m *intcode.Machine, _ intcode.Instruction) {
	text, _ := m.Disasm(m.IP)
	log.Printf("%6d rb=%-6d %s", m.IP, m.Base, text)
}

func runProgram(w io.Writer, prog []*big.Int, cfg *config) error {
	patched := cfg.Noun >= 0 || cfg.Verb >= 0
	if patched {
		prog = patch(prog, cfg.Noun, cfg.Verb)
	}
	m := newMachine(prog, cfg.Suspend, cfg)
	out, err := m.Run(intcode.Ints(cfg.Input...)...)
	for _, v := range out {
		fmt.Fprintln(w, v)
	}
	if err != nil {
		return err
	}
	if !m.Halted() {
		log.Printf("%v at %d", m.Status(), m.IP)
	}
	if patched {
		fmt.Fprintf(w, "address 0: %v\n", m.Mem.Load(0))
	}
	return nil
}

func runAmp(w io.Writer, prog []*big.Int, cfg *config) error {
	var (
		search func([]*big.Int, []int64) (amp.Result, error)
		phases = []int64(cfg.Amp.Phases)
	)
	switch cfg.Amp.Mode {
	case "series":
		search = amp.MaxSeries
		if len(phases) == 0 {
			phases = []int64{0, 1, 2, 3, 4}
		}
	case "feedback":
		search = amp.MaxFeedback
		if len(phases) == 0 {
			phases = []int64{5, 6, 7, 8, 9}
		}
	default:
		return fmt.Errorf("unknown amplifier mode %q", cfg.Amp.Mode)
	}
	r, err := search(prog, phases)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v (phases %v)\n", r.Signal, r.Phases)
	return nil
}

func runPaint(w io.Writer, prog []*big.Int, cfg *config) error {
	start := robot.Color(cfg.Paint.Start)
	if start != robot.Black && start != robot.White {
		return fmt.Errorf("invalid start colour %d", cfg.Paint.Start)
	}
	h, err := robot.Paint(newMachine(prog, true, cfg), start)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "painted %d panels\n%s", h.Painted(), h)
	if cfg.GUI {
		frames := make(chan image.Image, 1)
		frames <- h.Image()
		close(frames)
		show("intcode: hull", frames)
	}
	return nil
}

func runArcade(w io.Writer, prog []*big.Int, cfg *config) error {
	if cfg.Arcade.Free {
		prog = arcade.FreePlay(prog)
	}
	if cfg.Arcade.Manual && !cfg.TUI {
		return errors.New("manual play requires -tui")
	}
	var (
		m     = newMachine(prog, true, cfg)
		joy   = arcade.Joystick(arcade.AutoJoystick)
		frame func(*arcade.Cabinet)
		delay = time.Duration(cfg.Arcade.Delay) * time.Millisecond
	)

	if cfg.TUI {
		t, err := newTerm()
		if err != nil {
			return err
		}
		defer t.close()
		frame = t.draw
		if cfg.Arcade.Manual {
			joy = t.joystick
		} else {
			joy = t.autoJoystick(delay)
		}
	}

	var c *arcade.Cabinet
	if cfg.GUI {
		var (
			frames = make(chan image.Image)
			errc   = make(chan error, 1)
			next   = frame
		)
		frame = func(c *arcade.Cabinet) {
			if next != nil {
				next(c)
			}
			select {
			case frames <- c.Image():
			default:
			}
			time.Sleep(delay)
		}
		go func() {
			defer close(frames)
			var err error
			c, err = arcade.Play(m, joy, frame)
			errc <- err
		}()
		show("intcode: arcade", frames)
		if err := <-errc; err != nil {
			return err
		}
	} else {
		var err error
		if c, err = arcade.Play(m, joy, frame); err != nil {
			return err
		}
	}

	if !cfg.TUI {
		fmt.Fprint(w, c)
	}
	fmt.Fprintf(w, "blocks: %d\nscore: %d\n", c.Blocks(), c.Score())
	return nil
}

func runGravity(w io.Writer, prog []*big.Int, cfg *config) error {
	noun, verb, err := assist(prog, big.NewInt(*cfg.Target))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "noun %d verb %d: %d\n", noun, verb, 100*noun+verb)
	return nil
}
