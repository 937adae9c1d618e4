// Package intcode provides an implementation of an Intcode computer, called
// Machine, that executes Intcode programs over an unbounded integer memory.
package intcode

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Machine is an Intcode computer.
type Machine struct {
	Mem  Memory
	IP   int
	Base int

	// Trace, if non-nil, is called with each decoded instruction before it
	// is executed.
	Trace func(m *Machine, in Instruction)

	suspend bool
	status  Status
}

// New returns a machine loaded with a copy of program.
// If suspend is true an INPUT instruction with no input available
// suspends the machine rather than failing with MissingInput.
func New(program []*big.Int, suspend bool) *Machine {
	return &Machine{Mem: NewMemory(program), suspend: suspend}
}

// Status is the run state of a machine.
type Status byte

const (
	Running Status = iota
	WaitingForInput
	Halted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForInput:
		return "waiting for input"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", byte(s))
}

// Status reports the current run state of m.
func (m *Machine) Status() Status { return m.status }

// Halted reports whether m has executed a HALT instruction.
func (m *Machine) Halted() bool { return m.status == Halted }

// Suspends reports whether m suspends when it runs out of input.
func (m *Machine) Suspends() bool { return m.suspend }

// Run executes instructions until the machine halts or, if it was created
// with suspend enabled, needs input that is not available. The in values
// are consumed in order by INPUT instructions. Run returns the values
// produced by OUTPUT instructions during this call, including those produced
// before any error. Calling Run on a halted machine does nothing.
//
// A fault leaves the machine at the faulting instruction with its status
// still Running, so running it again repeats the fault. A faulted machine
// should be discarded.
func (m *Machine) Run(in ...*big.Int) ([]*big.Int, error) {
	if m.status == Halted {
		return nil, nil
	}
	m.status = Running
	var (
		q   Queue
		out []*big.Int
	)
	q.Push(in...)
	for m.status == Running {
		v, err := m.Step(&q)
		if err != nil {
			return out, err
		}
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// Step executes the instruction at m.IP, taking input from in, which may be
// nil. It returns the value written by an OUTPUT instruction, or nil.
// A non-nil error is always a *Fault.
func (m *Machine) Step(in *Queue) (out *big.Int, err error) {
	if m.status == Halted {
		return nil, nil
	}
	var (
		ip   = m.IP
		word = m.Mem.Load(ip)
	)
	inst, err := Decode(word)
	if err != nil {
		err.(*Fault).Addr = ip
		return nil, err
	}
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(FaultCode); ok {
				err = &Fault{
					Code: code,
					Op:   inst.Op,
					Word: new(big.Int).Set(word),
					Addr: ip,
				}
			} else {
				panic(e)
			}
		}
	}()

	if m.Trace != nil {
		m.Trace(m, inst)
	}

	m.status = Running
	next := ip + inst.Op.Width()

	switch inst.Op {
	case ADD:
		m.write(inst, 2, new(big.Int).Add(m.read(inst, 0), m.read(inst, 1)))
	case MUL:
		m.write(inst, 2, new(big.Int).Mul(m.read(inst, 0), m.read(inst, 1)))
	case LT:
		m.write(inst, 2, boolInt(m.read(inst, 0).Cmp(m.read(inst, 1)) < 0))
	case EQ:
		m.write(inst, 2, boolInt(m.read(inst, 0).Cmp(m.read(inst, 1)) == 0))
	case IN:
		v, ok := in.Pop()
		if !ok {
			if !m.suspend {
				panic(MissingInput)
			}
			// Leave IP at this instruction so it is retried on resume.
			m.status = WaitingForInput
			return nil, nil
		}
		m.write(inst, 0, v)
	case OUT:
		out = new(big.Int).Set(m.read(inst, 0))
	case JNZ, JZ:
		if (m.read(inst, 0).Sign() != 0) == (inst.Op == JNZ) {
			next = toAddr(m.read(inst, 1))
		}
	case ARB:
		base := new(big.Int).Add(big.NewInt(int64(m.Base)), m.read(inst, 0))
		if !base.IsInt64() || base.Int64() < math.MinInt || base.Int64() > math.MaxInt {
			panic(BadAddress)
		}
		m.Base = int(base.Int64())
	case HALT:
		m.status = Halted
		return nil, nil
	default:
		panic(fmt.Errorf("internal error: %v not implemented", inst.Op))
	}

	m.IP = next
	return out, nil
}

// addr resolves the address of parameter j of the instruction at m.IP.
func (m *Machine) addr(in Instruction, j int) int {
	cell := m.IP + 1 + j
	switch in.Modes[j] {
	case Immediate:
		return cell
	case Relative:
		return toAddr(new(big.Int).Add(big.NewInt(int64(m.Base)), m.Mem.Load(cell)))
	default:
		return toAddr(m.Mem.Load(cell))
	}
}

func (m *Machine) read(in Instruction, j int) *big.Int { return m.Mem.Load(m.addr(in, j)) }

func (m *Machine) write(in Instruction, j int, v *big.Int) { m.Mem.Store(m.addr(in, j), v) }

func toAddr(v *big.Int) int {
	if v.Sign() < 0 || !v.IsInt64() || v.Int64() > math.MaxInt {
		panic(BadAddress)
	}
	return int(v.Int64())
}

func boolInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return new(big.Int)
}

// Disasm returns a textual form of the instruction at addr and the number
// of memory cells it occupies. Cells that do not decode are shown as data.
func (m *Machine) Disasm(addr int) (string, int) {
	word := m.Mem.Load(addr)
	inst, err := Decode(word)
	if err != nil {
		return "DATA " + word.String(), 1
	}
	var b strings.Builder
	b.WriteString(inst.Op.String())
	for j, mode := range inst.Modes {
		if j == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		v := m.Mem.Load(addr + 1 + j)
		switch mode {
		case Position:
			fmt.Fprintf(&b, "[%s]", v)
		case Immediate:
			b.WriteString(v.String())
		case Relative:
			fmt.Fprintf(&b, "[rb%+d]", v)
		}
	}
	return b.String(), inst.Op.Width()
}

// Fault is returned by Step and Run when execution cannot continue.
type Fault struct {
	Code FaultCode
	Op   Op
	Word *big.Int
	Addr int
}

func (f *Fault) Error() string {
	if f.Op.Valid() {
		return fmt.Sprintf("%s executing %s at %d", f.Code, f.Op, f.Addr)
	}
	return fmt.Sprintf("%s: instruction %s at %d", f.Code, f.Word, f.Addr)
}

// Unwrap returns f.Code, so that errors.Is(err, MissingInput) and similar
// comparisons work.
func (f *Fault) Unwrap() error { return f.Code }

// FaultCode signifies the condition that stopped execution.
type FaultCode byte

const (
	UnknownOpcode FaultCode = iota + 1
	InvalidModes
	ImmediateWrite
	MissingInput
	BadAddress
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		UnknownOpcode:  "unknown opcode",
		InvalidModes:   "invalid parameter modes",
		ImmediateWrite: "write parameter cannot be immediate",
		MissingInput:   "missing input",
		BadAddress:     "bad address",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown fault (%d)", byte(c))
}

func (c FaultCode) Error() string { return c.String() }

// Decode reports whether c is raised while decoding an instruction word.
func (c FaultCode) Decode() bool {
	return c == UnknownOpcode || c == InvalidModes || c == ImmediateWrite
}
