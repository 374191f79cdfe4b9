package vm

import (
	"fmt"

	"github.com/rami3l/golox/debug"
)

//go:generate stringer -type=OpCode
type OpCode byte

const (
	OpReturn OpCode = iota
	OpConst
	OpNil
	OpTrue
	OpFalse
	OpEqual
	OpGreater
	OpLess
	OpNot
	OpNeg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

type Chunk struct {
	code []byte
	// Contract: len(lines) == len(code)
	lines  []int
	consts []Value
	name   string
}

func NewChunk(name string) *Chunk { return &Chunk{name: name} }

func (c *Chunk) Write(b byte, line int) {
	c.code = append(c.code, b)
	c.lines = append(c.lines, line)
	debug.AssertEq(len(c.code), len(c.lines))
}

// AddConst appends val to the constant pool and returns its index, which
// the caller must fit into a single byte (one-byte Constant operand).
func (c *Chunk) AddConst(val Value) (idx int) {
	idx = len(c.consts)
	c.consts = append(c.consts, val)
	return
}

func (c *Chunk) GetConst(idx byte) Value { return c.consts[idx] }

// DisassembleInst pretty-prints the instruction at offset, returning its
// text and the offset of the following instruction. Chunk is read-only
// here: disassembly never mutates code, lines, or consts.
func (c *Chunk) DisassembleInst(offset int) (res string, newOffset int) {
	sprintf := func(format string, a ...any) { res += fmt.Sprintf(format, a...) }

	sprintf("%04d ", offset)
	if offset >= len(c.code) {
		sprintf("<out of range>")
		return res, offset + 1
	}
	if offset > 0 && c.lines[offset] == c.lines[offset-1] {
		sprintf("   | ")
	} else {
		sprintf("%4d ", c.lines[offset])
	}

	switch inst := OpCode(c.code[offset]); inst {
	case OpConst:
		const_ := c.code[offset+1]
		sprintf("%-16s %4d '%s'", inst, const_, c.consts[const_])
		return res, offset + 2
	case OpReturn, OpNil, OpTrue, OpFalse, OpEqual, OpGreater, OpLess, OpNot,
		OpNeg, OpAdd, OpSub, OpMul, OpDiv, OpMod:
		sprintf("%s", inst)
		return res, offset + 1
	default:
		sprintf("unknown opcode %d", inst)
		return res, offset + 1
	}
}

func (c *Chunk) Disassemble(name string) (res string) {
	res = fmt.Sprintf("== %s ==\n", name)
	for i := 0; i < len(c.code); {
		var delta string
		delta, i = c.DisassembleInst(i)
		res += delta + "\n"
	}
	return res
}
