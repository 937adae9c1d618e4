package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// config holds the settings for a run. Each field may be set by a flag or
// from a TOML file given with -config; flags set on the command line take
// precedence over the file.
type config struct {
	Input   int64List `toml:"input"`
	Suspend bool      `toml:"suspend"`
	Trace   bool      `toml:"trace"`
	Noun    int       `toml:"noun"`
	Verb    int       `toml:"verb"`
	Target  *int64    `toml:"target"` // nil unless a gravity search was asked for
	GUI     bool      `toml:"gui"`
	TUI     bool      `toml:"tui"`

	Amp struct {
		Mode   string    `toml:"mode"`
		Phases int64List `toml:"phases"`
	} `toml:"amp"`

	Paint struct {
		Enabled bool `toml:"enabled"`
		Start   int  `toml:"start"`
	} `toml:"paint"`

	Arcade struct {
		Enabled bool `toml:"enabled"`
		Free    bool `toml:"free"`
		Manual  bool `toml:"manual"`
		Delay   int  `toml:"delay"` // milliseconds between frames in the TUI and GUI
	} `toml:"arcade"`
}

func newConfig() *config {
	c := &config{Noun: -1, Verb: -1}
	c.Arcade.Delay = 20
	return c
}

func (c *config) register(fs *flag.FlagSet) {
	fs.Var(&c.Input, "in", "comma-separated input `values`")
	fs.BoolVar(&c.Suspend, "wait", c.Suspend, "suspend instead of failing when input runs out")
	fs.BoolVar(&c.Trace, "v", c.Trace, "log each instruction before it is executed")
	fs.IntVar(&c.Noun, "noun", c.Noun, "store `n` at address 1 before running (if >= 0)")
	fs.IntVar(&c.Verb, "verb", c.Verb, "store `n` at address 2 before running (if >= 0)")
	fs.Var(optInt64{&c.Target}, "target", "search for the noun and verb that leave `n` at address 0")
	fs.BoolVar(&c.GUI, "gui", c.GUI, "show the hull or arcade screen in a window")
	fs.BoolVar(&c.TUI, "tui", c.TUI, "show the arcade screen in the terminal")
	fs.StringVar(&c.Amp.Mode, "amp", c.Amp.Mode, "find the best amplifier phases, in `mode` series or feedback")
	fs.Var(&c.Amp.Phases, "phases", "comma-separated amplifier phase `values`")
	fs.BoolVar(&c.Paint.Enabled, "paint", c.Paint.Enabled, "run the hull-painting robot")
	fs.IntVar(&c.Paint.Start, "start", c.Paint.Start, "`colour` of the robot's starting panel (0 black, 1 white)")
	fs.BoolVar(&c.Arcade.Enabled, "arcade", c.Arcade.Enabled, "run the arcade cabinet")
	fs.BoolVar(&c.Arcade.Free, "free", c.Arcade.Free, "set the arcade cabinet to free play")
	fs.BoolVar(&c.Arcade.Manual, "manual", c.Arcade.Manual, "play the arcade with the arrow keys (requires -tui)")
	fs.IntVar(&c.Arcade.Delay, "delay", c.Arcade.Delay, "arcade frame delay in `ms`")
}

// load reads the TOML file name into c, then re-applies any flags in fs
// that were set on the command line.
func (c *config) load(name string, fs *flag.FlagSet) error {
	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })

	md, err := toml.DecodeFile(name, c)
	if err != nil {
		return fmt.Errorf("config: %v", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("config: %s: unknown keys %q", name, keys)
	}

	for f, v := range set {
		if err := fs.Set(f, v); err != nil {
			return fmt.Errorf("config: re-applying -%s: %v", f, err)
		}
	}
	return nil
}

func (c *config) mode() string {
	switch {
	case c.Amp.Mode != "":
		return "amp"
	case c.Paint.Enabled:
		return "paint"
	case c.Arcade.Enabled:
		return "arcade"
	case c.Target != nil:
		return "gravity"
	}
	return "run"
}

// int64List is a flag.Value holding a comma-separated list of integers.
type int64List []int64

func (l *int64List) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i, v := range *l {
		s[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(s, ",")
}

func (l *int64List) Set(s string) error {
	var vs []int64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return err
		}
		vs = append(vs, v)
	}
	*l = vs
	return nil
}

// optInt64 is a flag.Value for an optional integer, left nil until set.
type optInt64 struct{ p **int64 }

func (o optInt64) String() string {
	if o.p == nil || *o.p == nil {
		return ""
	}
	return strconv.FormatInt(**o.p, 10)
}

func (o optInt64) Set(s string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return err
	}
	*o.p = &v
	return nil
}
