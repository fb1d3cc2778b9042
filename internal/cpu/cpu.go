// Package cpu implements the Sharp LR35902 core of the Game Boy:
// the instruction tables, the register file and the execution
// engine that fetches, decodes and executes one instruction per
// step.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304
)

// Bus is the memory the CPU executes from.
type Bus interface {
	LoadByte(address types.Word) types.Byte
	StoreByte(address types.Word, value types.Byte)
}

// Mode is the execution state of the CPU.
type Mode uint8

const (
	// ModeRunning fetches and executes instructions.
	ModeRunning Mode = iota
	// ModeHalted only advances the clock until an interrupt is
	// pending.
	ModeHalted
	// ModeStopped only advances the clock until a joypad line
	// goes low.
	ModeStopped
	// ModeTerminated can not execute anymore.
	ModeTerminated
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModeHalted:
		return "halted"
	case ModeStopped:
		return "stopped"
	case ModeTerminated:
		return "terminated"
	}
	return "unknown"
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// Cycles counts the T-cycles executed since reset.
	Cycles uint64

	bus Bus
	IRQ *interrupts.Service

	mode Mode
	err  error

	// enableIME is set by EI, the IME is enabled after the
	// following instruction.
	enableIME bool
	// haltBug is set when HALT is executed with an interrupt
	// already pending and the IME cleared. The next opcode
	// byte is then read twice.
	haltBug bool

	// operand is the address of the first operand byte of the
	// instruction being executed.
	operand types.Word
}

// NewCPU creates a new CPU instance reading and writing through
// the given bus. All registers start zeroed.
func NewCPU(bus Bus, irq *interrupts.Service) *CPU {
	c := &CPU{
		bus: bus,
		IRQ: irq,
	}
	c.Registers.pair()
	return c
}

// Mode returns the current execution state.
func (c *CPU) Mode() Mode {
	return c.mode
}

// Err returns the error that terminated the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// Step executes one instruction, services one interrupt, or idles
// one machine cycle while halted. It returns the number of
// T-cycles consumed. Once an error is returned, the CPU is
// terminated and every further step returns the same error.
func (c *CPU) Step() (int, error) {
	if c.mode == ModeTerminated {
		return 0, c.err
	}
	cycles, err := c.step()
	if err != nil {
		c.mode = ModeTerminated
		c.err = err
		return 0, err
	}
	c.Cycles += uint64(cycles)
	return cycles, nil
}

func (c *CPU) step() (int, error) {
	switch c.mode {
	case ModeHalted:
		if _, pending := c.IRQ.Requested(); !pending {
			return 4, nil
		}
		// with the IME cleared, halt is left without servicing
		// the interrupt
		if !c.IRQ.IME {
			c.mode = ModeRunning
		}
	case ModeStopped:
		if c.IRQ.Flag&interrupts.Joypad.Mask() == 0 {
			return 4, nil
		}
		c.mode = ModeRunning
	}

	if src, ok := c.IRQ.ShouldInterrupt(); ok {
		return c.executeInterrupt(src), nil
	}

	if c.enableIME {
		c.IRQ.IME = true
		c.enableIME = false
	}

	return c.execute()
}

// executeInterrupt pushes the PC onto the stack and jumps to the
// service routine of src.
func (c *CPU) executeInterrupt(src interrupts.Source) int {
	cycles := 20
	if c.mode == ModeHalted {
		cycles = 24
		c.mode = ModeRunning
	}

	c.IRQ.IME = false
	c.IRQ.Reset(src)
	c.push(c.PC)
	c.PC = src.Vector()

	return cycles
}

// execute fetches, decodes and executes the instruction at PC.
func (c *CPU) execute() (int, error) {
	start := c.PC
	opcode := c.bus.LoadByte(start)

	c.operand = start.Inc()
	skip := types.Word(0)
	if c.haltBug {
		// the PC failed to increment after the fetch
		c.operand = start
		skip = 1
		c.haltBug = false
	}

	instr, ok := Lookup(opcode)
	if !ok {
		return 0, &TerminatedError{Opcode: opcode, Address: start, Cycles: c.Cycles, Err: ErrUnknownInstruction}
	}

	if opcode == OpPrefixCB {
		opcode = c.bus.LoadByte(c.operand)
		if instr, ok = LookupPrefixed(opcode); !ok {
			return 0, &TerminatedError{Opcode: opcode, Prefixed: true, Address: start, Cycles: c.Cycles, Err: ErrUnknownInstruction}
		}
	}

	c.PC = start.Add(types.Word(instr.Length)).Sub(skip)

	var taken bool
	var err error
	if instr.Prefixed {
		err = c.decodeCB(opcode)
	} else {
		taken, err = c.decode(opcode)
	}
	if err != nil {
		return 0, &TerminatedError{Opcode: opcode, Prefixed: instr.Prefixed, Address: start, Cycles: c.Cycles, Err: err}
	}

	if taken {
		if instr.CyclesTaken == 0 {
			return 0, &TerminatedError{Opcode: opcode, Prefixed: instr.Prefixed, Address: start, Cycles: c.Cycles, Err: ErrUnexpectedBranch}
		}
		return instr.CyclesTaken, nil
	}
	return instr.Cycles, nil
}

// readOperand returns the 8-bit immediate operand.
func (c *CPU) readOperand() types.Byte {
	return c.bus.LoadByte(c.operand)
}

// readOperand16 returns the 16-bit immediate operand, stored low
// byte first.
func (c *CPU) readOperand16() types.Word {
	return types.WordFrom(c.bus.LoadByte(c.operand), c.bus.LoadByte(c.operand.Inc()))
}

// push pushes a word onto the stack, high byte first.
func (c *CPU) push(value types.Word) {
	lo, hi := value.Split()
	c.SP--
	c.bus.StoreByte(c.SP, hi)
	c.SP--
	c.bus.StoreByte(c.SP, lo)
}

// pop pops a word from the stack.
func (c *CPU) pop() types.Word {
	lo := c.bus.LoadByte(c.SP)
	c.SP++
	hi := c.bus.LoadByte(c.SP)
	c.SP++
	return types.WordFrom(lo, hi)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.Cycles = s.Read64()
	c.mode = Mode(s.Read8())
	c.enableIME = s.ReadBool()
	c.haltBug = s.ReadBool()
	if c.mode == ModeTerminated {
		c.mode = ModeRunning
	}
	c.err = nil
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write64(c.Cycles)
	s.Write8(types.Byte(c.mode))
	s.WriteBool(c.enableIME)
	s.WriteBool(c.haltBug)
}
