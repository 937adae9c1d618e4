package intcode

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// Ints returns vs as a program or input sequence.
func Ints(vs ...int64) []*big.Int {
	s := make([]*big.Int, len(vs))
	for i, v := range vs {
		s[i] = big.NewInt(v)
	}
	return s
}

// Parse parses a comma-separated list of decimal integers.
// Surrounding white space and a trailing comma are ignored.
func Parse(s string) ([]*big.Int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	prog := make([]*big.Int, len(fields))
	for i, f := range fields {
		v, ok := new(big.Int).SetString(strings.TrimSpace(f), 10)
		if !ok {
			return nil, fmt.Errorf("value %d: invalid integer %q", i, f)
		}
		prog[i] = v
	}
	return prog, nil
}

// ReadFile reads and parses the program in the named file.
func ReadFile(name string) ([]*big.Int, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	prog, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return prog, nil
}

// Clone returns a deep copy of a program.
func Clone(prog []*big.Int) []*big.Int {
	c := slices.Clone(prog)
	for i, v := range c {
		c[i] = new(big.Int).Set(v)
	}
	return c
}

// Equal reports whether a and b hold the same values.
func Equal(a, b []*big.Int) bool {
	return slices.EqualFunc(a, b, func(x, y *big.Int) bool { return x.Cmp(y) == 0 })
}

// Format returns prog in the comma-separated form accepted by Parse.
func Format(prog []*big.Int) string {
	var b strings.Builder
	for i, v := range prog {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	return b.String()
}
