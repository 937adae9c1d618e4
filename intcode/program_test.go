package intcode

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	for _, c := range []struct {
		in   string
		want []int64
		err  bool
	}{
		{in: "1,0,0,0,99", want: []int64{1, 0, 0, 0, 99}},
		{in: "3,9,8,9,10,9,4,9,99,-1,8\n", want: []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}},
		{in: " 104, 1125899906842624 ,99,\n", want: []int64{104, 1125899906842624, 99}},
		{in: "", want: nil},
		{in: "1,,2", err: true},
		{in: "1,x", err: true},
	} {
		got, err := Parse(c.in)
		if c.err {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) returned error %v", c.in, err)
			continue
		}
		if !Equal(got, Ints(c.want...)) {
			t.Errorf("Parse(%q) = %v, want %v", c.in, Format(got), c.want)
		}
	}

	huge, err := Parse("99999999999999999999999999")
	if err != nil {
		t.Fatal(err)
	}
	if g, w := Format(huge), "99999999999999999999999999"; g != w {
		t.Errorf("got %v, want %v", g, w)
	}
}

func TestReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "prog.txt")
	if err := os.WriteFile(name, []byte("1101,2,3,0,4,0,99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	prog, err := ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	out, err := New(prog, false).Run()
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(out, Ints(5)) {
		t.Errorf("got %v, want 5", Format(out))
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadFile of missing file succeeded")
	}
}

func TestClone(t *testing.T) {
	p := Ints(1, 2, 3)
	c := Clone(p)
	c[0].SetInt64(7)
	if p[0].Int64() != 1 {
		t.Errorf("Clone shares values with original")
	}
	if !Equal(c[1:], p[1:]) {
		t.Errorf("Clone(%v) = %v", Format(p), Format(c))
	}
}

func TestMachineOwnsProgram(t *testing.T) {
	p := Ints(1, 0, 0, 0, 99)
	if _, err := New(p, false).Run(); err != nil {
		t.Fatal(err)
	}
	if p[0].Int64() != 1 {
		t.Errorf("running a machine modified its program: %v", Format(p))
	}
}
