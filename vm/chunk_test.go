package vm_test

import (
	"strings"
	"testing"

	"github.com/rami3l/golox/vm"
	"github.com/stretchr/testify/assert"
)

func TestChunkWriteKeepsCodeAndLinesInSync(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk("test")
	c.Write(byte(vm.OpNil), 1)
	c.Write(byte(vm.OpReturn), 2)
	assert.NotPanics(t, func() { c.Disassemble("test") })
}

func TestChunkConstRoundTrip(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk("test")
	idx := c.AddConst(vm.VNum(42))
	assert.Equal(t, 0, idx)
	assert.Equal(t, vm.VNum(42), c.GetConst(byte(idx)))

	idx2 := c.AddConst(vm.NewVStr("hi"))
	assert.Equal(t, 1, idx2)
	assert.Equal(t, "hi", c.GetConst(byte(idx2)).(vm.VStr).String())
}

func TestChunkDisassembleInstConst(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk("test")
	idx := c.AddConst(vm.VNum(1))
	c.Write(byte(vm.OpConst), 1)
	c.Write(byte(idx), 1)

	out, next := c.DisassembleInst(0)
	assert.Contains(t, out, "OpConst")
	assert.Contains(t, out, "1")
	assert.Equal(t, 2, next)
}

func TestChunkDisassembleInstSameLineOmitsRepeat(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk("test")
	c.Write(byte(vm.OpNil), 1)
	c.Write(byte(vm.OpReturn), 1)

	first, _ := c.DisassembleInst(0)
	second, _ := c.DisassembleInst(1)
	assert.NotContains(t, second, "   1 ")
	assert.True(t, strings.Contains(second, "|"))
	assert.NotEqual(t, first, second)
}

func TestChunkDisassembleUnknownOpcode(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk("test")
	c.Write(0xFF, 1)
	out, _ := c.DisassembleInst(0)
	assert.Contains(t, out, "unknown opcode")
}

func TestChunkDisassembleListsEveryInstruction(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk("script")
	idx := c.AddConst(vm.VNum(1))
	c.Write(byte(vm.OpConst), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(vm.OpReturn), 1)

	out := c.Disassemble("script")
	assert.Contains(t, out, "== script ==")
	assert.Contains(t, out, "OpConst")
	assert.Contains(t, out, "OpReturn")
}
