// Package breakpoint compiles pause predicates written in Lua. A
// script defines should_pause(cpu), which is called before every
// instruction with a table of the CPU registers, and returns true to
// pause the frame. Scripts can read memory with read(address).
package breakpoint

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/types"
	lua "github.com/yuin/gopher-lua"
)

// ErrMissingPredicate is returned when a script does not define
// should_pause.
var ErrMissingPredicate = errors.New("breakpoint: should_pause is not defined")

const predicateName = "should_pause"

var registerNames = [...]string{"a", "f", "b", "c", "d", "e", "h", "l"}

// Predicate is a compiled should_pause function.
type Predicate struct {
	state *lua.LState
	fn    *lua.LFunction
	cpu   *lua.LTable

	// the machine being inspected by the current call
	gb  *gameboy.GameBoy
	err error
}

// Compile runs source and returns its should_pause function.
func Compile(source string) (*Predicate, error) {
	p := &Predicate{state: lua.NewState()}
	p.state.SetGlobal("read", p.state.NewFunction(p.read))

	if err := p.state.DoString(source); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("breakpoint: %w", err)
	}
	fn, ok := p.state.GetGlobal(predicateName).(*lua.LFunction)
	if !ok {
		p.state.Close()
		return nil, ErrMissingPredicate
	}
	p.fn = fn
	p.cpu = p.state.NewTable()
	return p, nil
}

func (p *Predicate) read(L *lua.LState) int {
	address := L.CheckInt(1)
	if p.gb == nil {
		L.Push(lua.LNumber(0xFF))
		return 1
	}
	L.Push(lua.LNumber(p.gb.LoadByte(types.Word(address))))
	return 1
}

// ShouldPause calls should_pause with the registers of g. A script
// error pauses the frame, and is kept for Err.
func (p *Predicate) ShouldPause(g *gameboy.GameBoy) bool {
	if p.err != nil {
		return true
	}
	p.gb = g
	defer func() { p.gb = nil }()

	c := g.CPU
	registers := [...]types.Byte{c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L}
	for i, name := range registerNames {
		p.cpu.RawSetString(name, lua.LNumber(registers[i]))
	}
	p.cpu.RawSetString("sp", lua.LNumber(c.SP))
	p.cpu.RawSetString("pc", lua.LNumber(c.PC))
	p.cpu.RawSetString("cycles", lua.LNumber(c.Cycles))
	p.cpu.RawSetString("ime", lua.LBool(c.IRQ.IME))
	p.cpu.RawSetString("mode", lua.LString(c.Mode().String()))

	if err := p.state.CallByParam(lua.P{Fn: p.fn, NRet: 1, Protect: true}, p.cpu); err != nil {
		p.err = fmt.Errorf("breakpoint: %w", err)
		return true
	}
	ret := p.state.Get(-1)
	p.state.Pop(1)
	return lua.LVAsBool(ret)
}

// Err returns the error raised by the script, if any.
func (p *Predicate) Err() error {
	return p.err
}

// Close releases the Lua state.
func (p *Predicate) Close() {
	p.state.Close()
}
