/*
File    : trill/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/token"
)

// tokenize is a small helper mirroring the teacher's ConsumeTokens style:
// run the lexer to EOF and return the kind/text pairs only, since ranges
// vary per test input and aren't worth asserting here.
func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	mgr := source.NewManager()
	f := mgr.AddFile("test.trill", src)
	lx := New(f)
	toks := lx.NextAll()
	require.Empty(t, lx.Errors, "unexpected lex errors: %v", lx.Errors)
	return toks
}

type kindText struct {
	Kind token.Kind
	Text string
}

func kinds(toks []token.Token) []kindText {
	var out []kindText
	for _, tk := range toks {
		out = append(out, kindText{tk.Kind, tk.Text})
	}
	return out
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		Input    string
		Expected []kindText
	}{
		{
			Input: "1 + 2 - 3",
			Expected: []kindText{
				{token.INT_LIT, "1"}, {token.OPERATOR, "+"}, {token.INT_LIT, "2"},
				{token.OPERATOR, "-"}, {token.INT_LIT, "3"}, {token.EOF, ""},
			},
		},
		{
			Input: "a <= b && c >> 2",
			Expected: []kindText{
				{token.IDENT, "a"}, {token.OPERATOR, "<="}, {token.IDENT, "b"},
				{token.OPERATOR, "&&"}, {token.IDENT, "c"}, {token.OPERATOR, ">>"},
				{token.INT_LIT, "2"}, {token.EOF, ""},
			},
		},
		{
			Input: "Array<Int>",
			Expected: []kindText{
				{token.IDENT, "Array"}, {token.OPERATOR, "<"}, {token.IDENT, "Int"},
				{token.OPERATOR, ">"}, {token.EOF, ""},
			},
		},
	}
	for _, tc := range tests {
		toks := tokenize(t, tc.Input)
		assert.Equal(t, tc.Expected, kinds(toks), "input: %q", tc.Input)
	}
}

func TestLexer_KeywordsAndIdents(t *testing.T) {
	toks := tokenize(t, "func main let x var y")
	assert.Equal(t, []kindText{
		{token.KEYWORD, "func"}, {token.IDENT, "main"}, {token.KEYWORD, "let"},
		{token.IDENT, "x"}, {token.KEYWORD, "var"}, {token.IDENT, "y"}, {token.EOF, ""},
	}, kinds(toks))
}

func TestLexer_NumericRadices(t *testing.T) {
	mgr := source.NewManager()
	f := mgr.AddFile("t.trill", "0xFF 0b101 0o17 3.14 10")
	lx := New(f)
	toks := lx.NextAll()
	require.Empty(t, lx.Errors)
	require.Len(t, toks, 6)
	assert.Equal(t, uint64(255), toks[0].IntValue)
	assert.Equal(t, uint64(5), toks[1].IntValue)
	assert.Equal(t, uint64(15), toks[2].IntValue)
	assert.Equal(t, 3.14, toks[3].FloatValue)
	assert.Equal(t, uint64(10), toks[4].IntValue)
}

func TestLexer_UInt64MaxLiteralDoesNotWrap(t *testing.T) {
	mgr := source.NewManager()
	f := mgr.AddFile("t.trill", "18446744073709551615")
	lx := New(f)
	toks := lx.NextAll()
	require.Empty(t, lx.Errors)
	require.Len(t, toks, 2)
	assert.Equal(t, uint64(18446744073709551615), toks[0].IntValue)
}

func TestLexer_StringEscapes(t *testing.T) {
	mgr := source.NewManager()
	f := mgr.AddFile("t.trill", `"a\nb\t\"c\\"`)
	lx := New(f)
	toks := lx.NextAll()
	require.Empty(t, lx.Errors)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING_LIT, toks[0].Kind)
	assert.Equal(t, "a\nb\t\"c\\", toks[0].StringValue)
}

func TestLexer_StringInterpolation(t *testing.T) {
	mgr := source.NewManager()
	f := mgr.AddFile("t.trill", `"x = \(a + f(b)) end"`)
	lx := New(f)
	toks := lx.NextAll()
	require.Empty(t, lx.Errors)
	require.Len(t, toks, 2)
	tk := toks[0]
	require.Equal(t, token.INTERP_LIT, tk.Kind)
	require.Len(t, tk.InterpParts, 3)
	assert.Equal(t, "x = ", tk.InterpParts[0].Text)
	assert.NotEmpty(t, tk.InterpParts[1].Tokens)
	assert.Equal(t, " end", tk.InterpParts[2].Text)
	// nested call inside the interpolation must itself have tokenized,
	// i.e. contain identifiers a, f, b and the call parens.
	var identTexts []string
	for _, sub := range tk.InterpParts[1].Tokens {
		if sub.Kind == token.IDENT {
			identTexts = append(identTexts, sub.Text)
		}
	}
	assert.Equal(t, []string{"a", "f", "b"}, identTexts)
}

func TestLexer_Separators(t *testing.T) {
	toks := tokenize(t, "let x = 1\nlet y = 2;")
	var sepKinds []token.Kind
	for _, tk := range toks {
		if tk.IsSeparator() {
			sepKinds = append(sepKinds, tk.Kind)
		}
	}
	assert.Equal(t, []token.Kind{token.NEWLINE, token.SEMI}, sepKinds)
}

func TestLexer_InvalidCharacter(t *testing.T) {
	mgr := source.NewManager()
	f := mgr.AddFile("t.trill", "let x = 1 @ 2")
	lx := New(f)
	lx.NextAll()
	require.Len(t, lx.Errors, 1)
	assert.Equal(t, "InvalidCharacter", lx.Errors[0].Kind)
}

func TestLexer_TokenLengthInvariant(t *testing.T) {
	// spec §8 invariant 6: sum of token lengths (excluding whitespace and
	// comments) equals the non-skipped portion of the source.
	src := "let x=1+2 // trailing comment\nreturn x"
	mgr := source.NewManager()
	f := mgr.AddFile("t.trill", src)
	lx := New(f)
	toks := lx.NextAll()
	total := 0
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		total += tk.Range.End.Offset - tk.Range.Start.Offset
	}
	nonSkipped := len("let") + len("x") + len("=") + len("1") + len("+") + len("2") + len("\n") + len("return") + len("x")
	assert.Equal(t, nonSkipped, total)
}
