// Package amp connects Intcode machines into chains of amplifiers,
// where each amplifier's output signal becomes the next one's input.
package amp

import (
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/nf/intcode/intcode"
)

// ErrNoOutput is returned when an amplifier stops without producing a signal.
var ErrNoOutput = errors.New("no output signal")

// Series runs one amplifier per phase setting, in order. Each amplifier
// reads its phase setting and then the previous amplifier's signal (0 for
// the first), and Series returns the last amplifier's signal.
func Series(prog []*big.Int, phases []int64) (*big.Int, error) {
	signal := new(big.Int)
	for i, p := range phases {
		out, err := intcode.New(prog, false).Run(big.NewInt(p), signal)
		if err != nil {
			return nil, fmt.Errorf("amplifier %d: %w", i, err)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("amplifier %d: %w", i, ErrNoOutput)
		}
		signal = out[len(out)-1]
	}
	return signal, nil
}

// Feedback runs one suspending amplifier per phase setting, with the last
// amplifier's signal fed back into the first. Each amplifier receives its
// phase setting before its first signal only. Rounds continue until the
// first amplifier halts, and Feedback returns the final signal.
func Feedback(prog []*big.Int, phases []int64) (*big.Int, error) {
	if len(phases) == 0 {
		return nil, errors.New("no amplifiers")
	}
	amps := make([]*intcode.Machine, len(phases))
	for i := range amps {
		amps[i] = intcode.New(prog, true)
	}
	signal := new(big.Int)
	for round := 0; !amps[0].Halted(); round++ {
		for i, a := range amps {
			in := []*big.Int{signal}
			if round == 0 {
				in = []*big.Int{big.NewInt(phases[i]), signal}
			}
			out, err := a.Run(in...)
			if err != nil {
				return nil, fmt.Errorf("amplifier %d, round %d: %w", i, round, err)
			}
			if len(out) == 0 {
				return nil, fmt.Errorf("amplifier %d, round %d: %w", i, round, ErrNoOutput)
			}
			signal = out[len(out)-1]
		}
	}
	return signal, nil
}

// Result is the best signal found by a search over phase settings.
type Result struct {
	Signal *big.Int
	Phases []int64
}

func (r Result) String() string { return fmt.Sprintf("%v %v", r.Signal, r.Phases) }

// MaxSeries returns the highest signal Series produces over every ordering
// of phases.
func MaxSeries(prog []*big.Int, phases []int64) (Result, error) {
	return search(prog, phases, Series)
}

// MaxFeedback returns the highest signal Feedback produces over every
// ordering of phases.
func MaxFeedback(prog []*big.Int, phases []int64) (Result, error) {
	return search(prog, phases, Feedback)
}

func search(prog []*big.Int, phases []int64, run func([]*big.Int, []int64) (*big.Int, error)) (Result, error) {
	var best Result
	for _, p := range Permutations(phases) {
		s, err := run(prog, p)
		if err != nil {
			return Result{}, fmt.Errorf("phases %v: %w", p, err)
		}
		if best.Signal == nil || s.Cmp(best.Signal) > 0 {
			best = Result{Signal: s, Phases: p}
		}
	}
	return best, nil
}

// Permutations returns every ordering of vs, in lexicographic order of
// position in vs.
func Permutations(vs []int64) [][]int64 {
	if len(vs) <= 1 {
		return [][]int64{slices.Clone(vs)}
	}
	var perms [][]int64
	for i, v := range vs {
		rest := make([]int64, 0, len(vs)-1)
		rest = append(rest, vs[:i]...)
		rest = append(rest, vs[i+1:]...)
		for _, p := range Permutations(rest) {
			perms = append(perms, append([]int64{v}, p...))
		}
	}
	return perms
}
