package main

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/intcode/intcode"
)

// continueLimit bounds the number of instructions run by one continue
// command, so a program that never halts cannot hang the debugger.
const continueLimit = 1_000_000

type debugger struct {
	prog    []*big.Int
	initial []int64
	suspend bool

	m      *intcode.Machine
	in     intcode.Queue
	out    []*big.Int
	steps  int
	breaks map[int]bool
	watch  []int
	err    error

	log     *tview.TextView
	watches *tview.TextView
	code    *tview.TextView
	state   *tview.TextView
	input   *tview.InputField
	cols    *tview.Flex
	rows    *tview.Flex
	app     *tview.Application
}

func newDebugger(prog []*big.Int, cfg *config) *debugger {
	d := &debugger{
		suspend: cfg.Suspend,
		breaks:  make(map[int]bool),
		log: tview.NewTextView().
			SetMaxLines(1000),
		watches: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		code: tview.NewTextView().
			SetWrap(false),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.watches.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.code, 0, 2, false).
		AddItem(d.watches, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := strings.TrimSpace(d.input.GetText())
		d.input.SetText("")
		if cmd == "" {
			cmd = "s"
		}
		if cmd == "exit" || cmd == "q" {
			d.app.Stop()
			return
		}
		d.command(cmd)
		d.refresh()
	})

	d.load(prog, cfg.Input)
	return d
}

// load resets the debugger to the start of prog with the given input.
func (d *debugger) load(prog []*big.Int, input []int64) {
	d.prog = prog
	d.initial = input
	d.m = intcode.New(prog, d.suspend)
	d.in = intcode.Queue{}
	d.in.Push(intcode.Ints(input...)...)
	d.out = nil
	d.steps = 0
	d.err = nil
	d.refresh()
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) command(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "s", "step":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				log.Printf("invalid step count %q", arg)
				return
			}
			n = v
		}
		d.step(n)
	case "c", "continue":
		d.step(continueLimit)
	case "i", "in", "input":
		vs, err := intcode.Parse(arg)
		if err != nil {
			log.Printf("input: %v", err)
			return
		}
		d.in.Push(vs...)
		log.Printf("queued %d input values", len(vs))
	case "b", "break":
		if arg == "" {
			d.breaks = make(map[int]bool)
			log.Print("cleared breakpoints")
			return
		}
		addr, err := strconv.Atoi(arg)
		if err != nil || addr < 0 {
			log.Printf("invalid address %q", arg)
			return
		}
		if d.breaks[addr] {
			delete(d.breaks, addr)
			log.Printf("cleared break %d", addr)
		} else {
			d.breaks[addr] = true
			log.Printf("set break %d", addr)
		}
	case "w", "watch":
		addr, err := strconv.Atoi(arg)
		if err != nil || addr < 0 {
			log.Printf("invalid address %q", arg)
			return
		}
		d.watch = append(d.watch, addr)
		log.Printf("watching %d", addr)
	case "set":
		a, v, _ := strings.Cut(arg, " ")
		addr, err := strconv.Atoi(a)
		val, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
		if err != nil || addr < 0 || !ok {
			log.Printf("usage: set <addr> <value>")
			return
		}
		d.m.Mem.Store(addr, val)
		log.Printf("set %d to %v", addr, val)
	case "r", "reset":
		d.load(d.prog, d.initial)
		log.Print("reset")
	default:
		log.Printf("unknown command %q", cmd)
	}
}

// step executes up to n instructions, stopping early at a breakpoint,
// a fault, or when the machine halts or waits for input.
func (d *debugger) step(n int) {
	if d.err != nil {
		log.Printf("machine faulted: %v (reset to restart)", d.err)
		return
	}
	for i := 0; i < n; i++ {
		if d.m.Halted() {
			log.Print("halted")
			return
		}
		if i > 0 && d.breaks[d.m.IP] {
			log.Printf("break at %d", d.m.IP)
			return
		}
		v, err := d.m.Step(&d.in)
		if err != nil {
			d.err = err
			log.Print(err)
			return
		}
		if d.m.Status() == intcode.WaitingForInput {
			log.Printf("waiting for input at %d", d.m.IP)
			return
		}
		d.steps++
		if v != nil {
			d.out = append(d.out, v)
			log.Printf("out: %v", v)
		}
	}
	if n > 1 {
		log.Printf("paused after %d steps", n)
	}
}

func (d *debugger) refresh() {
	d.code.SetText(d.codeContent())
	d.watches.SetText(d.watchContent())
	d.state.SetText(d.stateContent())
	switch {
	case d.err != nil || d.m.Halted():
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	case d.m.Status() == intcode.WaitingForInput:
		d.state.SetTextColor(tcell.ColorYellow)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	default:
		d.state.SetTextColor(tcell.ColorBlack)
		d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	}
}

func (d *debugger) stateContent() string {
	status := d.m.Status().String()
	if d.err != nil {
		status = "FAULT: " + d.err.Error()
	}
	return fmt.Sprintf("ip %d  rb %d  steps %d  [%s]\nin: %d queued\nout: %s",
		d.m.IP, d.m.Base, d.steps, status, d.in.Len(), intcode.Format(d.out))
}

// codeContent disassembles from the current instruction onwards.
func (d *debugger) codeContent() string {
	var b strings.Builder
	addr := d.m.IP
	for i := 0; i < 32; i++ {
		text, width := d.m.Disasm(addr)
		mark := "  "
		if addr == d.m.IP {
			mark = "->"
		}
		if d.breaks[addr] {
			mark = "b" + mark[1:]
		}
		fmt.Fprintf(&b, "%s %6d  %s\n", mark, addr, text)
		addr += width
	}
	return b.String()
}

func (d *debugger) watchContent() string {
	var (
		b      strings.Builder
		breaks []int
	)
	for addr := range d.breaks {
		breaks = append(breaks, addr)
	}
	sort.Ints(breaks)
	for _, addr := range breaks {
		fmt.Fprintf(&b, "[%d] brk!\n", addr)
	}
	for _, addr := range d.watch {
		fmt.Fprintf(&b, "[%d] %v\n", addr, d.m.Mem.Load(addr))
	}
	return b.String()
}

// debugMode runs the interactive debugger on the program in file.
// If dev is set the program is reloaded whenever file changes.
func debugMode(file string, cfg *config, dev bool) error {
	prog, err := intcode.ReadFile(file)
	if err != nil {
		return err
	}
	d := newDebugger(prog, cfg)
	log.SetPrefix("")
	log.SetOutput(d.log)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("intcode: ")
	}()
	log.Printf("debugging %s: s [n] step, c continue, i <v,...> input, b [addr] break, w <addr> watch, set <addr> <v>, r reset, q quit",
		filepath.Base(file))

	if dev {
		go func() {
			err := watchFile(file, func(prog []*big.Int) {
				d.app.QueueUpdateDraw(func() {
					d.load(prog, cfg.Input)
					log.Printf("dev: reloaded %s", filepath.Base(file))
				})
			})
			d.app.QueueUpdateDraw(func() { log.Printf("dev: %v", err) })
		}()
	}
	return d.Run()
}
