package vm

import (
	"fmt"
	"math"

	"github.com/josharian/intern"
)

type Value interface{ isValue() }

func NewValue() Value { return VNil{} }

type VBool bool

func (_ VBool) isValue()       {}
func (v VBool) String() string { return fmt.Sprintf("%t", v) }

type VNil struct{}

func (_ VNil) isValue()       {}
func (v VNil) String() string { return "nil" }

type VNum float64

func (_ VNum) isValue()       {}
func (v VNum) String() string { return fmt.Sprintf("%g", v) }

// StrRef is an opaque, copyable handle to an interned string. It stands in
// for the source's GcRef<T>: a stack slot or constant-pool entry holds this
// handle, never an owning pointer, so that a future heap/collector could
// relocate the backing bytes without invalidating anything already pushed.
// For now the "heap" is just intern.String's best-effort dedup cache, so two
// handles to equal contents are not guaranteed to share a pointer.
type StrRef struct{ p *string }

func newStrRef(s string) StrRef {
	s = intern.String(s)
	return StrRef{p: &s}
}

func (r StrRef) str() string { return *r.p }

type VStr struct{ Ref StrRef }

func NewVStr(s string) VStr { return VStr{Ref: newStrRef(s)} }

func (_ VStr) isValue()       {}
func (v VStr) String() string { return v.Ref.str() }

func VAdd(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v + w, true
		}
	case VStr:
		switch w := w.(type) {
		case VStr:
			return NewVStr(v.String() + w.String()), true
		}
	}
	return
}

func VSub(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v - w, true
		}
	}
	return
}

func VMul(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v * w, true
		}
	}
	return
}

func VDiv(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v / w, true
		}
	}
	return
}

func VMod(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return VNum(math.Mod(float64(v), float64(w))), true
		}
	}
	return
}

// VGreater and VLess push Bool(false) on a non-numeric operand rather than
// raising a runtime error, preserving the source's (possibly surprising)
// behavior: only Add/Sub/Mul/Div/Mod/Neg are type-checked strictly.
func VGreater(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return VBool(v > w), true
		}
	}
	return VBool(false), true
}

func VLess(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return VBool(v < w), true
		}
	}
	return VBool(false), true
}

func VNeg(v Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		return -v, true
	}
	return
}

func VTruthy(v Value) VBool {
	switch v := v.(type) {
	case VBool:
		return v
	case VNil:
		return false
	default:
		return true
	}
}

// VNot negates truthiness rather than requiring a VBool operand: Nil and
// Bool(false) are falsy, everything else (including numbers and strings) is
// truthy, so `!nil` is `true` and never a runtime error.
func VNot(v Value) VBool { return !VTruthy(v) }

func VEq(v, w Value) VBool {
	switch v := v.(type) {
	case VBool:
		switch w := w.(type) {
		case VBool:
			return v == w
		}
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v == w
		}
	case VNil:
		_, ok := w.(VNil)
		return VBool(ok)
	case VStr:
		switch w := w.(type) {
		case VStr:
			return VBool(v.Ref.str() == w.Ref.str())
		}
	}
	return false
}
