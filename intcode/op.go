package intcode

import (
	"fmt"
	"math/big"
	"strings"
)

// Op represents an Intcode opcode.
type Op byte

const (
	ADD  Op = 1
	MUL  Op = 2
	IN   Op = 3
	OUT  Op = 4
	JNZ  Op = 5
	JZ   Op = 6
	LT   Op = 7
	EQ   Op = 8
	ARB  Op = 9
	HALT Op = 99
)

type opInfo struct {
	name   string
	params int
	writes int // trailing params that are write destinations
}

var opTable = [100]opInfo{
	ADD:  {"ADD", 3, 1},
	MUL:  {"MULTIPLY", 3, 1},
	IN:   {"INPUT", 1, 1},
	OUT:  {"OUTPUT", 1, 0},
	JNZ:  {"JUMP_IF_TRUE", 2, 0},
	JZ:   {"JUMP_IF_FALSE", 2, 0},
	LT:   {"LESS_THAN", 3, 1},
	EQ:   {"EQUALS", 3, 1},
	ARB:  {"ADJUST_BASE", 1, 0},
	HALT: {"HALT", 0, 0},
}

// Valid reports whether o is a defined opcode.
func (o Op) Valid() bool { return int(o) < len(opTable) && opTable[o].name != "" }

// Params returns the number of parameters taken by o.
func (o Op) Params() int { return opTable[o].params }

// Writes returns the number of trailing parameters of o that are written to.
func (o Op) Writes() int { return opTable[o].writes }

// Width returns the number of memory cells occupied by an instruction with
// opcode o.
func (o Op) Width() int { return o.Params() + 1 }

func (o Op) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Op(%d)", byte(o))
	}
	return opTable[o].name
}

// Mode is a parameter addressing mode.
type Mode byte

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Op
	Modes []Mode // one per parameter
}

func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i, m := range in.Modes {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(m.String()[:3])
	}
	return b.String()
}

// Decode splits an instruction word into its opcode and parameter modes.
// It returns a *Fault if the opcode is unknown, the mode digits are invalid,
// or a write parameter is in immediate mode.
func Decode(word *big.Int) (Instruction, error) {
	var op Op
	fault := func(c FaultCode) (Instruction, error) {
		return Instruction{}, &Fault{Code: c, Op: op, Word: new(big.Int).Set(word)}
	}
	if word.Sign() < 0 || !word.IsInt64() {
		return fault(UnknownOpcode)
	}
	v := word.Int64()
	if o := Op(v % 100); o.Valid() {
		op = o
	} else {
		return fault(UnknownOpcode)
	}
	digits := v / 100
	modes := make([]Mode, op.Params())
	for i := range modes {
		modes[i] = Mode(digits % 10)
		digits /= 10
		if modes[i] > Relative {
			return fault(InvalidModes)
		}
	}
	if digits != 0 {
		return fault(InvalidModes)
	}
	for _, m := range modes[len(modes)-op.Writes():] {
		if m == Immediate {
			return fault(ImmediateWrite)
		}
	}
	return Instruction{Op: op, Modes: modes}, nil
}
