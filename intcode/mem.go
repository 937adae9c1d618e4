package intcode

import (
	"fmt"
	"math/big"
	"strings"
)

// Memory is the sparse, zero-filled memory of an Intcode machine.
// The zero value is an empty memory ready to use.
type Memory struct {
	cells map[int]*big.Int
	size  int
}

// NewMemory returns a memory holding program at addresses 0..len(program)-1.
func NewMemory(program []*big.Int) Memory {
	m := Memory{cells: make(map[int]*big.Int, len(program))}
	for addr, v := range program {
		m.Store(addr, v)
	}
	return m
}

// Load returns the value at addr, or zero if addr has never been written.
// The returned value must not be modified.
func (m *Memory) Load(addr int) *big.Int {
	if v, ok := m.cells[addr]; ok {
		return v
	}
	return new(big.Int)
}

// Store sets the value at addr to a copy of v.
func (m *Memory) Store(addr int, v *big.Int) {
	if addr < 0 {
		panic(fmt.Sprintf("intcode: store to negative address %d", addr))
	}
	if m.cells == nil {
		m.cells = make(map[int]*big.Int)
	}
	m.cells[addr] = new(big.Int).Set(v)
	if addr >= m.size {
		m.size = addr + 1
	}
}

// Len returns one more than the highest address ever stored to.
func (m *Memory) Len() int { return m.size }

// Slice returns a copy of the memory from address 0 up to Len.
func (m *Memory) Slice() []*big.Int {
	s := make([]*big.Int, m.size)
	for i := range s {
		s[i] = new(big.Int).Set(m.Load(i))
	}
	return s
}

// Clone returns an independent copy of m.
func (m *Memory) Clone() Memory {
	c := Memory{cells: make(map[int]*big.Int, len(m.cells)), size: m.size}
	for addr, v := range m.cells {
		c.cells[addr] = new(big.Int).Set(v)
	}
	return c
}

func (m Memory) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.size; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(m.Load(i).String())
	}
	b.WriteByte(']')
	return b.String()
}

// Queue is a first-in first-out queue of machine input values.
type Queue struct {
	vals []*big.Int
}

// Push appends copies of vs to the back of the queue.
func (q *Queue) Push(vs ...*big.Int) {
	for _, v := range vs {
		q.vals = append(q.vals, new(big.Int).Set(v))
	}
}

// Pop removes and returns the value at the front of the queue.
// It reports false if the queue is empty.
func (q *Queue) Pop() (*big.Int, bool) {
	if q == nil || len(q.vals) == 0 {
		return nil, false
	}
	v := q.vals[0]
	q.vals = q.vals[1:]
	return v, true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.vals)
}
