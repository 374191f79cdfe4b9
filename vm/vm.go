package vm

import (
	"fmt"
	"io"
	"os"

	e "github.com/rami3l/golox/errors"

	"github.com/chzyer/readline"
	"github.com/rami3l/golox/debug"
	"github.com/sirupsen/logrus"
)

const StackMax = 256

// Result mirrors the tri-state the source's InterpretResult enum: Interpret
// never panics or returns a bare Go error, it reports which of the three
// outcomes happened so a caller (the REPL, a file run) can pick an exit code.
type Result int

const (
	Ok Result = iota
	CompileError
	RuntimeError
)

// VM owns a chunk, an instruction pointer, and a fixed-capacity operand
// stack: slots [top:StackMax) are logically dead and never read.
type VM struct {
	chunk *Chunk
	ip    int
	stack [StackMax]Value
	top   int
}

func NewVM() *VM { return &VM{} }

func (vm *VM) push(val Value) {
	vm.stack[vm.top] = val
	vm.top++
}

func (vm *VM) pop() (last Value) {
	vm.top--
	last = vm.stack[vm.top]
	return
}

// REPL reads one line at a time from an interactive readline session and
// interprets each one, until the reader reports EOF (Ctrl-D) — unlike a
// bare bufio.Reader loop, readline.Readline's io.EOF is treated as "stop",
// not ignored.
func (vm *VM) REPL() error {
	rl, err := readline.New(">> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch err {
		case nil:
			vm.Interpret(line)
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}

// Interpret compiles src and, on success, runs the resulting chunk. The
// stack is reset to empty at the start of every call, so a prior runtime
// error (or a prior REPL line) never leaks state into the next one.
func (vm *VM) Interpret(src string) Result {
	vm.top = 0

	parser := NewParser()
	chunk, err := parser.Compile(src)
	if err != nil {
		return CompileError
	}
	if debug.DEBUG {
		logrus.Debugln(chunk.Disassemble(chunk.name))
	}

	vm.chunk = chunk
	vm.ip = 0
	return vm.run()
}

func (vm *VM) run() Result {
	readByte := func() (res byte) {
		res = vm.chunk.code[vm.ip]
		vm.ip++
		return
	}

	binOp := func(f func(a, b Value) (Value, bool)) bool {
		b, a := vm.pop(), vm.pop()
		res, ok := f(a, b)
		if !ok {
			vm.runtimeError("Operands must be numbers.")
			return false
		}
		vm.push(res)
		return true
	}

	for {
		oldIP := vm.ip
		if debug.DEBUG {
			logrus.Debugln(vm.stackTrace())
			instDump, _ := vm.chunk.DisassembleInst(oldIP)
			logrus.Debugln(instDump)
		}

		switch inst := OpCode(readByte()); inst {
		case OpConst:
			vm.push(vm.chunk.GetConst(readByte()))
		case OpNil:
			vm.push(VNil{})
		case OpTrue:
			vm.push(VBool(true))
		case OpFalse:
			vm.push(VBool(false))
		case OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(VEq(a, b))
		case OpGreater:
			if !binOp(VGreater) {
				return RuntimeError
			}
		case OpLess:
			if !binOp(VLess) {
				return RuntimeError
			}
		case OpNot:
			vm.push(VNot(vm.pop()))
		case OpNeg:
			res, ok := VNeg(vm.pop())
			if !ok {
				vm.runtimeError("Operand must be a number.")
				return RuntimeError
			}
			vm.push(res)
		case OpAdd:
			if !binOp(VAdd) {
				return RuntimeError
			}
		case OpSub:
			if !binOp(VSub) {
				return RuntimeError
			}
		case OpMul:
			if !binOp(VMul) {
				return RuntimeError
			}
		case OpDiv:
			if !binOp(VDiv) {
				return RuntimeError
			}
		case OpMod:
			if !binOp(VMod) {
				return RuntimeError
			}
		case OpReturn:
			fmt.Printf("%s\n", vm.pop())
			return Ok
		default:
			vm.runtimeErrorAt(oldIP, fmt.Sprintf("unknown opcode '%d'", inst))
			return RuntimeError
		}
	}
}

// runtimeError reports a diagnostic with no line attached, per the opcode
// table's note that arithmetic type errors don't currently carry one.
func (vm *VM) runtimeError(reason string) {
	fmt.Fprintln(os.Stderr, &e.RuntimeError{Line: e.NoLine, Reason: reason})
}

func (vm *VM) runtimeErrorAt(offset int, reason string) {
	fmt.Fprintln(os.Stderr, &e.RuntimeError{Line: vm.chunk.lines[offset], Reason: reason})
}

func (vm *VM) stackTrace() string {
	res := "          "
	for i := 0; i < vm.top; i++ {
		res += fmt.Sprintf("[ %s ]", vm.stack[i])
	}
	return res
}
