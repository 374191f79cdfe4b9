package vm

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	e "github.com/rami3l/golox/errors"
)

// Parser drives the Scanner one token of lookahead and emits bytecode
// straight into compilingChunk as it goes: there is no intermediate AST.
type Parser struct {
	*Scanner
	prev, curr     Token
	compilingChunk *Chunk

	errors *multierror.Error
	// panicMode suppresses printing of cascading diagnostics (they are still
	// recorded in errors) until the next synchronization point. The current grammar is a single expression, so
	// sync() never actually finds one; the flag and the hook both exist for
	// when statements are added.
	panicMode bool
}

func NewParser() *Parser { return &Parser{} }

/* Single-pass compilation */

func (p *Parser) emitConst(val Value) { p.emitBytes(byte(OpConst), p.makeConst(val)) }

func (p *Parser) makeConst(val Value) byte {
	const_ := p.currentChunk().AddConst(val)
	if const_ > math.MaxUint8 {
		p.Error("too many constants in one chunk")
		return 0
	}
	return byte(const_)
}

func (p *Parser) num(_canAssign bool) {
	val, err := strconv.ParseFloat(p.prev.String(), 64)
	if err != nil {
		p.Error("invalid number literal")
		return
	}
	p.emitConst(VNum(val))
}

func (p *Parser) str(_canAssign bool) {
	runes := p.prev.Runes
	// Strip the surrounding quotes and copy the contents into the heap.
	unquoted := string(runes[1 : len(runes)-1])
	p.emitConst(NewVStr(unquoted))
}

func (p *Parser) grouping(_canAssign bool) {
	p.expr()
	p.consume(TRParen, "expect ')' after expression")
}

func (p *Parser) lit(_canAssign bool) {
	switch p.prev.Type {
	case TFalse:
		p.emitBytes(byte(OpFalse))
	case TNil:
		p.emitBytes(byte(OpNil))
	case TTrue:
		p.emitBytes(byte(OpTrue))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) unary(_canAssign bool) {
	op := p.prev.Type

	// Compile the operand, binding everything up to Unary precedence.
	p.parsePrec(PrecUnary)

	switch op {
	case TBang:
		p.emitBytes(byte(OpNot))
	case TMinus:
		p.emitBytes(byte(OpNeg))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) binary(_canAssign bool) {
	op := p.prev.Type
	rule := parseRules[op]

	// Compile the RHS one precedence level higher, so same-precedence
	// operators chain left-associatively: `1 - 2 - 3` parses as `(1-2)-3`.
	p.parsePrec(rule.Prec + 1)

	switch op {
	case TBangEqual:
		p.emitBytes(byte(OpEqual), byte(OpNot))
	case TEqualEqual:
		p.emitBytes(byte(OpEqual))
	case TGreater:
		p.emitBytes(byte(OpGreater))
	case TGreaterEqual:
		p.emitBytes(byte(OpLess), byte(OpNot))
	case TLess:
		p.emitBytes(byte(OpLess))
	case TLessEqual:
		p.emitBytes(byte(OpGreater), byte(OpNot))
	case TPlus:
		p.emitBytes(byte(OpAdd))
	case TMinus:
		p.emitBytes(byte(OpSub))
	case TStar:
		p.emitBytes(byte(OpMul))
	case TSlash:
		p.emitBytes(byte(OpDiv))
	case TPercent:
		p.emitBytes(byte(OpMod))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) expr() { p.parsePrec(PrecAssign) }

type ParseFn = func(p *Parser, canAssign bool)

type ParseRule struct {
	Prefix, Infix ParseFn
	Prec
}

// parseRules is the dense, token-kind-indexed rule table that is the spine
// of the whole parser: O(1) dispatch, no per-token allocation, one entry
// per TokenType (the zero ParseRule{nil, nil, PrecNone} covers every kind
// that isn't an operator or a literal in the current expression grammar,
// including every statement/declaration keyword).
var parseRules []ParseRule

func init() {
	parseRules = make([]ParseRule, TEOF+1)
	parseRules[TLParen] = ParseRule{(*Parser).grouping, nil, PrecNone}
	parseRules[TMinus] = ParseRule{(*Parser).unary, (*Parser).binary, PrecTerm}
	parseRules[TPlus] = ParseRule{nil, (*Parser).binary, PrecTerm}
	parseRules[TSlash] = ParseRule{nil, (*Parser).binary, PrecFactor}
	parseRules[TStar] = ParseRule{nil, (*Parser).binary, PrecFactor}
	parseRules[TPercent] = ParseRule{nil, (*Parser).binary, PrecFactor}
	parseRules[TBang] = ParseRule{(*Parser).unary, nil, PrecNone}
	parseRules[TBangEqual] = ParseRule{nil, (*Parser).binary, PrecEqual}
	parseRules[TEqualEqual] = ParseRule{nil, (*Parser).binary, PrecEqual}
	parseRules[TGreater] = ParseRule{nil, (*Parser).binary, PrecComp}
	parseRules[TGreaterEqual] = ParseRule{nil, (*Parser).binary, PrecComp}
	parseRules[TLess] = ParseRule{nil, (*Parser).binary, PrecComp}
	parseRules[TLessEqual] = ParseRule{nil, (*Parser).binary, PrecComp}
	parseRules[TStr] = ParseRule{(*Parser).str, nil, PrecNone}
	parseRules[TNum] = ParseRule{(*Parser).num, nil, PrecNone}
	parseRules[TFalse] = ParseRule{(*Parser).lit, nil, PrecNone}
	parseRules[TNil] = ParseRule{(*Parser).lit, nil, PrecNone}
	parseRules[TTrue] = ParseRule{(*Parser).lit, nil, PrecNone}
}

// parsePrec implements precedence climbing: it parses a prefix expression,
// then keeps consuming infix operators whose precedence is at least prec.
func (p *Parser) parsePrec(prec Prec) {
	p.advance()

	prefix := parseRules[p.prev.Type].Prefix
	if prefix == nil {
		p.Error("expect expression")
		return
	}
	canAssign := prec <= PrecAssign
	prefix(p, canAssign)

	for prec <= parseRules[p.curr.Type].Prec {
		p.advance()
		infix := parseRules[p.prev.Type].Infix
		if infix == nil {
			panic(e.Unreachable)
		}
		infix(p, canAssign)
	}
}

/* Parsing helpers */

func (p *Parser) check(ty TokenType) bool { return p.curr.Type == ty }

func (p *Parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.ScanToken()
		if !p.check(TErr) {
			break
		}
		p.ErrorAtCurr(p.curr.String())
	}
}

func (p *Parser) consume(ty TokenType, errorMsg string) *Token {
	if !p.check(ty) {
		p.ErrorAtCurr(errorMsg)
		return nil
	}
	p.advance()
	return &p.prev
}

/* Compiling helpers */

// Compile parses and emits a single expression followed by EOF, returning
// the finished chunk iff no diagnostic was raised. On failure, the first
// diagnostic has already been written to stderr by ErrorAt and all of them,
// aggregated via go-multierror, are returned instead of a chunk.
func (p *Parser) Compile(src string) (*Chunk, error) {
	res := NewChunk("script")
	p.compilingChunk = res
	defer func() { p.compilingChunk = nil }()

	p.Scanner = NewScanner(src)
	p.advance()
	p.expr()
	p.consume(TEOF, "expect end of expression")

	p.endCompiler()
	if p.HadError() {
		return nil, p.errors.ErrorOrNil()
	}
	return res, nil
}

func (p *Parser) currentChunk() *Chunk { return p.compilingChunk }

func (p *Parser) emitBytes(bs ...byte) {
	for _, b := range bs {
		p.currentChunk().Write(b, p.prev.Line)
	}
}

func (p *Parser) endCompiler() { p.emitBytes(byte(OpReturn)) }

//go:generate stringer -type=Prec
type Prec int

const (
	PrecNone   Prec = iota
	PrecAssign      // =
	PrecOr          // or
	PrecAnd         // and
	PrecEqual       // == !=
	PrecComp        // < > <= >=
	PrecTerm        // + -
	PrecFactor      // * / %
	PrecUnary       // ! -
	PrecCall        // . ()
	PrecPrimary
)

/* Error handling */

// sync is the statement-boundary resynchronization hook named in the design
// notes. The current grammar parses a single expression with no statement
// keywords, so it has nothing to synchronize to yet; it only clears
// panicMode so a caller that did add statements has a point to build on.
func (p *Parser) sync() { p.panicMode = false }

func (p *Parser) ErrorAt(tk Token, reason string) {
	var loc string
	switch tk.Type {
	case TEOF:
		loc = " at end"
	case TErr:
		loc = ""
	default:
		loc = fmt.Sprintf(" at '%s'", tk)
	}
	err := &e.CompilationError{Line: tk.Line, Loc: loc, Reason: reason}
	p.errors = multierror.Append(p.errors, err)
	if p.panicMode {
		return
	}
	p.panicMode = true
	fmt.Fprintln(os.Stderr, err)
}

func (p *Parser) Error(reason string)       { p.ErrorAt(p.prev, reason) }
func (p *Parser) ErrorAtCurr(reason string) { p.ErrorAt(p.curr, reason) }
func (p *Parser) HadError() bool            { return p.errors != nil }
