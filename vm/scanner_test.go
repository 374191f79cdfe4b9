package vm_test

import (
	"testing"

	"github.com/rami3l/golox/vm"
	"github.com/stretchr/testify/assert"
)

func scanAll(src string) []vm.Token {
	s := vm.NewScanner(src)
	var toks []vm.Token
	for {
		tk := s.ScanToken()
		toks = append(toks, tk)
		if tk.Type == vm.TEOF {
			return toks
		}
	}
}

func types(toks []vm.Token) []vm.TokenType {
	res := make([]vm.TokenType, len(toks))
	for i, tk := range toks {
		res[i] = tk.Type
	}
	return res
}

func TestScanPunctuationAndOperators(t *testing.T) {
	t.Parallel()
	got := types(scanAll(`(){};,.-+/*%`))
	want := []vm.TokenType{
		vm.TLParen, vm.TRParen, vm.TLBrace, vm.TRBrace, vm.TSemi, vm.TComma,
		vm.TDot, vm.TMinus, vm.TPlus, vm.TSlash, vm.TStar, vm.TPercent, vm.TEOF,
	}
	assert.Equal(t, want, got)
}

func TestScanTwoCharOperators(t *testing.T) {
	t.Parallel()
	got := types(scanAll("! != = == < <= > >="))
	want := []vm.TokenType{
		vm.TBang, vm.TBangEqual, vm.TEqual, vm.TEqualEqual,
		vm.TLess, vm.TLessEqual, vm.TGreater, vm.TGreaterEqual, vm.TEOF,
	}
	assert.Equal(t, want, got)
}

func TestScanNumberAndString(t *testing.T) {
	t.Parallel()
	toks := scanAll(`123 4.5 "hi there"`)
	assert.Equal(t, []vm.TokenType{vm.TNum, vm.TNum, vm.TStr, vm.TEOF}, types(toks))
	assert.Equal(t, "123", toks[0].String())
	assert.Equal(t, "4.5", toks[1].String())
	assert.Equal(t, `"hi there"`, toks[2].String())
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	t.Parallel()
	toks := scanAll("nil true false foo nilly")
	want := []vm.TokenType{vm.TNil, vm.TTrue, vm.TFalse, vm.TIdent, vm.TIdent, vm.TEOF}
	assert.Equal(t, want, types(toks))
}

func TestScanSkipsWhitespaceAndComments(t *testing.T) {
	t.Parallel()
	toks := scanAll("  1 // a comment\n  + 2  ")
	assert.Equal(t, []vm.TokenType{vm.TNum, vm.TPlus, vm.TNum, vm.TEOF}, types(toks))
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	t.Parallel()
	toks := scanAll(`"oops`)
	assert.Equal(t, vm.TErr, toks[0].Type)
	assert.Equal(t, "unterminated string", toks[0].String())
}

func TestScanUnexpectedCharacterIsError(t *testing.T) {
	t.Parallel()
	toks := scanAll("@")
	assert.Equal(t, vm.TErr, toks[0].Type)
	assert.Equal(t, "unexpected character", toks[0].String())
}

func TestScanTracksLineNumbers(t *testing.T) {
	t.Parallel()
	toks := scanAll("1\n+\n2")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}
