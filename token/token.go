/*
File    : trill/token/token.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package token defines the lexical token set for Trill. Tokens carry no
// behavior beyond recognizing their own category, matching the original
// TokenType-string-constant style but widened with the payload fields a
// statically typed language needs: parsed numeric values, interpolation
// sub-streams, and a source range instead of a bare line/column pair.
package token

import "github.com/akashmaji946/trill/source"

// Kind identifies the lexical category of a Token.
type Kind string

const (
	EOF     Kind = "EOF"
	UNKNOWN Kind = "UNKNOWN"
	NEWLINE Kind = "NEWLINE" // statement separator
	SEMI    Kind = "SEMI"    // explicit ';' statement separator

	IDENT     Kind = "IDENT"
	KEYWORD   Kind = "KEYWORD"
	DIRECTIVE Kind = "DIRECTIVE" // #file, #line, #function, #warning, #error

	INT_LIT    Kind = "INT_LIT"
	FLOAT_LIT  Kind = "FLOAT_LIT"
	CHAR_LIT   Kind = "CHAR_LIT"
	STRING_LIT Kind = "STRING_LIT"
	INTERP_LIT Kind = "INTERP_LIT" // string literal with \( ... ) sub-streams

	OPERATOR Kind = "OPERATOR" // maximal-munch run over ~*+-/<>=%^|&!
	PUNCT    Kind = "PUNCT"    // ( ) { } [ ] , : ? .
)

// Keywords is the fixed lookup table the lexer consults once an
// identifier-shaped run of characters has been scanned.
var Keywords = map[string]bool{
	"func": true, "type": true, "protocol": true, "extension": true,
	"var": true, "let": true, "if": true, "else": true, "while": true,
	"for": true, "switch": true, "case": true, "default": true,
	"break": true, "continue": true, "return": true, "init": true,
	"deinit": true, "subscript": true, "sizeof": true, "where": true,
	"in": true, "as": true, "is": true, "nil": true, "true": true,
	"false": true, "_": true,
	"foreign": true, "static": true, "mutating": true, "indirect": true,
	"noreturn": true, "implicit": true,
}

// Directives is the fixed set of '#'-prefixed identifiers recognized as
// directives rather than plain identifiers.
var Directives = map[string]bool{
	"#file": true, "#line": true, "#function": true,
	"#warning": true, "#error": true,
}

// InterpPart is one piece of an interpolated string literal: either a
// plain run of literal text, or a nested token stream produced by
// recursively lexing the contents between \( and its matching ).
type InterpPart struct {
	Text   string  // set when Tokens == nil
	Tokens []Token // set when this part came from \( ... )
}

// Token is a single lexical token with its source range and payload.
type Token struct {
	Kind  Kind
	Text  string // raw source text, including quotes/escapes for literals
	Range source.Range

	// Numeric payloads, populated by the lexer for INT_LIT/FLOAT_LIT.
	// IntValue is unsigned: the grammar never folds a leading '-' into an
	// integer literal (negation is a separate PrefixExpr), so the full
	// uint64 range — including the UInt64 boundary literal 2^64-1 — is
	// representable without confusing it with a negative value.
	IntValue   uint64
	FloatValue float64
	IntRadix   int // 2, 8, 10, or 16

	// CHAR_LIT / STRING_LIT decoded value (escapes resolved).
	StringValue string

	// INTERP_LIT payload: alternating plain-text and nested-token parts.
	InterpParts []InterpPart
}

// Is reports whether the token is a KEYWORD/OPERATOR/PUNCT with the given
// literal text, the three categories whose meaning is carried by Text
// rather than by a dedicated Kind value.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsSeparator reports whether the token terminates a statement.
func (t Token) IsSeparator() bool {
	return t.Kind == NEWLINE || t.Kind == SEMI
}

func (t Token) String() string {
	return t.Range.String() + ": " + string(t.Kind) + " " + t.Text
}
