package main

import (
	"errors"
	"math/big"

	"github.com/nf/intcode/intcode"
)

var errNoAssist = errors.New("no noun and verb produce the target")

// patch returns a copy of prog with noun at address 1 and verb at address 2.
// Negative values leave the address unchanged.
func patch(prog []*big.Int, noun, verb int) []*big.Int {
	p := intcode.Clone(prog)
	for addr, v := range map[int]int{1: noun, 2: verb} {
		if v < 0 {
			continue
		}
		for len(p) <= addr {
			p = append(p, new(big.Int))
		}
		p[addr].SetInt64(int64(v))
	}
	return p
}

// assist searches nouns and verbs in 0..99 for the first pair that makes
// prog halt with target at address 0. Pairs whose runs fail are skipped.
func assist(prog []*big.Int, target *big.Int) (noun, verb int, err error) {
	for noun = 0; noun < 100; noun++ {
		for verb = 0; verb < 100; verb++ {
			m := intcode.New(patch(prog, noun, verb), false)
			if _, err := m.Run(); err != nil {
				continue
			}
			if m.Mem.Load(0).Cmp(target) == 0 {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errNoAssist
}
