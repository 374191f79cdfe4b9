package debug

import "fmt"

// DEBUG is the runtime feature flag gating invariant assertions and trace
// output (VM stack dumps, per-instruction disassembly). It defaults to off
// and is flipped on by `golox --debug`.
var DEBUG = false

func Assertf(b bool, format string, a ...any) {
	if DEBUG && !b {
		panic(fmt.Sprintf(format, a...))
	}
}

func AssertEq[T comparable](expected, got T) { Assertf(expected == got, "%v != %v", expected, got) }
