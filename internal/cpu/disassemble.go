package cpu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Memory reads a byte without side effects, used to inspect code
// without executing it.
type Memory func(address types.Word) types.Byte

// Disassembly is a single decoded instruction.
type Disassembly struct {
	Address     types.Word
	Bytes       []types.Byte
	Text        string
	Instruction *Instruction // nil for an unassigned opcode
}

func (d Disassembly) String() string {
	raw := make([]string, len(d.Bytes))
	for i, b := range d.Bytes {
		raw[i] = fmt.Sprintf("%02X", b)
	}
	return fmt.Sprintf("%04X  %-8s  %s", d.Address, strings.Join(raw, " "), d.Text)
}

// Next returns the address of the following instruction.
func (d Disassembly) Next() types.Word {
	return d.Address.Add(types.Word(len(d.Bytes)))
}

// Disassemble decodes the instruction at address, substituting the
// operand placeholders of its mnemonic with the operand values.
func Disassemble(mem Memory, address types.Word) Disassembly {
	opcode := mem(address)
	instr, ok := Lookup(opcode)
	if !ok {
		return Disassembly{
			Address: address,
			Bytes:   []types.Byte{opcode},
			Text:    fmt.Sprintf("DB $%02X", opcode),
		}
	}
	if opcode == OpPrefixCB {
		instr, _ = LookupPrefixed(mem(address.Inc()))
	}

	d := Disassembly{
		Address:     address,
		Bytes:       make([]types.Byte, instr.Length),
		Instruction: instr,
	}
	for i := range d.Bytes {
		d.Bytes[i] = mem(address.Add(types.Word(i)))
	}
	d.Text = operands(instr, d)
	return d
}

func operands(instr *Instruction, d Disassembly) string {
	text := instr.Mnemonic
	if instr.Prefixed || len(d.Bytes) < 2 {
		return text
	}
	b := d.Bytes[1]
	switch {
	case strings.Contains(text, "d16"):
		return strings.Replace(text, "d16", fmt.Sprintf("$%04X", types.WordFrom(b, d.Bytes[2])), 1)
	case strings.Contains(text, "a16"):
		return strings.Replace(text, "a16", fmt.Sprintf("$%04X", types.WordFrom(b, d.Bytes[2])), 1)
	case strings.Contains(text, "d8"):
		return strings.Replace(text, "d8", fmt.Sprintf("$%02X", b), 1)
	case strings.Contains(text, "a8"):
		return strings.Replace(text, "a8", fmt.Sprintf("$FF%02X", b), 1)
	case strings.Contains(text, "SP+r8"):
		return strings.Replace(text, "SP+r8", fmt.Sprintf("SP%+d", int8(b)), 1)
	case instr.Category == CategoryJump:
		return strings.Replace(text, "r8", fmt.Sprintf("$%04X", d.Next().AddSigned(b)), 1)
	case strings.Contains(text, "r8"):
		return strings.Replace(text, "r8", fmt.Sprintf("%d", int8(b)), 1)
	}
	return text
}

// Target returns the static destination of a control flow
// instruction, if it has one.
func (d Disassembly) Target() (types.Word, bool) {
	i := d.Instruction
	if i == nil || i.Prefixed {
		return 0, false
	}
	switch i.Category {
	case CategoryRestart:
		return types.Word(i.Opcode & 0x38), true
	case CategoryJump, CategoryCall:
		switch i.Length {
		case 2:
			return d.Next().AddSigned(d.Bytes[1]), true
		case 3:
			return types.WordFrom(d.Bytes[1], d.Bytes[2]), true
		}
	}
	return 0, false
}

// Trace follows the control flow from the given entry points and
// returns the address of every reachable instruction, in ascending
// order. Returns and indirect jumps end a path, calls are assumed
// to return. Unassigned opcodes are included and end their path.
func Trace(mem Memory, entries ...types.Word) []types.Word {
	visited := make(map[types.Word]bool)
	pending := append([]types.Word(nil), entries...)

	for len(pending) > 0 {
		address := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for !visited[address] {
			visited[address] = true
			d := Disassemble(mem, address)
			if d.Instruction == nil {
				break
			}
			if target, ok := d.Target(); ok {
				pending = append(pending, target)
			}
			i := d.Instruction
			if i.AlwaysJumps() && i.Category != CategoryCall && i.Category != CategoryRestart {
				break
			}
			address = d.Next()
		}
	}

	out := make([]types.Word, 0, len(visited))
	for address := range visited {
		out = append(out, address)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
