package intcode

import (
	"errors"
	"math/big"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	for _, c := range []struct {
		word  int64
		op    Op
		modes []Mode
		err   FaultCode
	}{
		{word: 1, op: ADD, modes: []Mode{Position, Position, Position}},
		{word: 1002, op: MUL, modes: []Mode{Position, Immediate, Position}},
		{word: 1101, op: ADD, modes: []Mode{Immediate, Immediate, Position}},
		{word: 21101, op: ADD, modes: []Mode{Immediate, Immediate, Relative}},
		{word: 203, op: IN, modes: []Mode{Relative}},
		{word: 104, op: OUT, modes: []Mode{Immediate}},
		{word: 1105, op: JNZ, modes: []Mode{Immediate, Immediate}},
		{word: 2106, op: JZ, modes: []Mode{Immediate, Relative}},
		{word: 1107, op: LT, modes: []Mode{Immediate, Immediate, Position}},
		{word: 8, op: EQ, modes: []Mode{Position, Position, Position}},
		{word: 209, op: ARB, modes: []Mode{Relative}},
		{word: 99, op: HALT, modes: []Mode{}},

		{word: 10002, err: ImmediateWrite},
		{word: 103, err: ImmediateWrite},
		{word: 0, err: UnknownOpcode},
		{word: 10, err: UnknownOpcode},
		{word: 1055, err: UnknownOpcode},
		{word: -2, err: UnknownOpcode},
		{word: 301, err: InvalidModes},
		{word: 30001, err: InvalidModes},
		{word: 199, err: InvalidModes},
		{word: 100004, err: InvalidModes},
		{word: 1104, err: InvalidModes},
	} {
		in, err := Decode(big.NewInt(c.word))
		if c.err != 0 {
			if !errors.Is(err, c.err) {
				t.Errorf("Decode(%d) returned error %v, want %v", c.word, err, c.err)
			}
			if f, ok := err.(*Fault); !ok || f.Word.Int64() != c.word {
				t.Errorf("Decode(%d) returned %#v, want *Fault for word", c.word, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Decode(%d) returned error %v", c.word, err)
			continue
		}
		if in.Op != c.op {
			t.Errorf("Decode(%d) op = %v, want %v", c.word, in.Op, c.op)
		}
		if !reflect.DeepEqual(in.Modes, c.modes) {
			t.Errorf("Decode(%d) modes = %v, want %v", c.word, in.Modes, c.modes)
		}
	}
}

func TestDecodeHuge(t *testing.T) {
	w, _ := new(big.Int).SetString("100000000000000000000001", 10)
	if _, err := Decode(w); !errors.Is(err, UnknownOpcode) {
		t.Errorf("Decode(%v) returned %v, want %v", w, err, UnknownOpcode)
	}
}

func TestOpTable(t *testing.T) {
	for _, c := range []struct {
		op             Op
		name           string
		params, writes int
	}{
		{ADD, "ADD", 3, 1},
		{MUL, "MULTIPLY", 3, 1},
		{IN, "INPUT", 1, 1},
		{OUT, "OUTPUT", 1, 0},
		{JNZ, "JUMP_IF_TRUE", 2, 0},
		{JZ, "JUMP_IF_FALSE", 2, 0},
		{LT, "LESS_THAN", 3, 1},
		{EQ, "EQUALS", 3, 1},
		{ARB, "ADJUST_BASE", 1, 0},
		{HALT, "HALT", 0, 0},
	} {
		if !c.op.Valid() {
			t.Errorf("%v not valid", c.op)
		}
		if g := c.op.String(); g != c.name {
			t.Errorf("Op(%d).String() = %q, want %q", byte(c.op), g, c.name)
		}
		if g, w := c.op.Params(), c.params; g != w {
			t.Errorf("%v.Params() = %d, want %d", c.op, g, w)
		}
		if g, w := c.op.Writes(), c.writes; g != w {
			t.Errorf("%v.Writes() = %d, want %d", c.op, g, w)
		}
	}
	valid := 0
	for o := 0; o < 0x100; o++ {
		if Op(o).Valid() {
			valid++
		}
	}
	if valid != 10 {
		t.Errorf("%d valid opcodes, want 10", valid)
	}
}
