package vm

// String renders an OpCode as its disassembly mnemonic. Hand-written in
// place of a `go generate stringer` run (the toolchain is not invoked by
// this build), kept in the same style stringer would emit.
func (i OpCode) String() string {
	switch i {
	case OpReturn:
		return "OpReturn"
	case OpConst:
		return "OpConst"
	case OpNil:
		return "OpNil"
	case OpTrue:
		return "OpTrue"
	case OpFalse:
		return "OpFalse"
	case OpEqual:
		return "OpEqual"
	case OpGreater:
		return "OpGreater"
	case OpLess:
		return "OpLess"
	case OpNot:
		return "OpNot"
	case OpNeg:
		return "OpNeg"
	case OpAdd:
		return "OpAdd"
	case OpSub:
		return "OpSub"
	case OpMul:
		return "OpMul"
	case OpDiv:
		return "OpDiv"
	case OpMod:
		return "OpMod"
	default:
		return "OpCode(?)"
	}
}
