/*
Package scanner defines the interface between tokenizers and the parser
of package ll/parser.

Tokens carry a category, a lexeme, a span and, for identifiers and literals,
a handle into the symbol or constant table. Tokenizers signal the end of
input with a token of category sfaa.EndOfInput.

An adapter for lexmachine lives in sub-package `lexmach`. For tests and for
replaying a token sequence, TokenSlice serves tokens from memory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
)

// tracer traces with key 'sfaa.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.scanner")
}

// Tokenizer is a scanner interface.
//
// Errors during scanning are reported to an error handler and do not stop
// the tokenizer; clients decide whether to abort.
type Tokenizer interface {
	NextToken() sfaa.Token
	SetErrorHandler(func(error))
}

// LogError is the default error reporting function for tokenizers.
func LogError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is an unsophisticated token type, used by the lexmachine
// adapter and by TokenSlice.
type DefaultToken struct {
	kind   sfaa.TokType
	lexeme string
	handle sfaa.Handle
	span   sfaa.Span
}

var _ sfaa.Token = DefaultToken{}

// MakeDefaultToken creates a token without a handle.
func MakeDefaultToken(typ sfaa.TokType, lexeme string, span sfaa.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		handle: sfaa.NoHandle,
		span:   span,
	}
}

// WithHandle returns a copy of t carrying a handle.
func (t DefaultToken) WithHandle(h sfaa.Handle) DefaultToken {
	t.handle = h
	return t
}

// EOF returns an end-of-input token located at pos.
func EOF(pos uint64) DefaultToken {
	return MakeDefaultToken(sfaa.EndOfInput, "", sfaa.Span{pos, pos})
}

// TokType is part of interface sfaa.Token.
func (t DefaultToken) TokType() sfaa.TokType {
	return t.kind
}

// Lexeme is part of interface sfaa.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Handle is part of interface sfaa.Token.
func (t DefaultToken) Handle() sfaa.Handle {
	return t.handle
}

// Span is part of interface sfaa.Token.
func (t DefaultToken) Span() sfaa.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.handle.Valid() {
		return fmt.Sprintf("<%d|%q|#%d>", t.kind, t.lexeme, t.handle)
	}
	return fmt.Sprintf("<%d|%q>", t.kind, t.lexeme)
}

// --- Token slices ----------------------------------------------------------

// TokenSlice is a tokenizer serving tokens from a slice. After the last
// token it produces end-of-input tokens.
type TokenSlice struct {
	tokens []sfaa.Token
	pos    int
}

var _ Tokenizer = (*TokenSlice)(nil)

// NewTokenSlice creates a tokenizer for a sequence of tokens.
func NewTokenSlice(tokens ...sfaa.Token) *TokenSlice {
	return &TokenSlice{tokens: tokens}
}

// Categories is a convenience function which creates a TokenSlice from
// token categories only. Lexemes are the decimal category values.
func Categories(types ...sfaa.TokType) *TokenSlice {
	tokens := make([]sfaa.Token, len(types))
	for i, t := range types {
		tokens[i] = MakeDefaultToken(t, fmt.Sprintf("%d", t), sfaa.Span{uint64(i), uint64(i + 1)})
	}
	return NewTokenSlice(tokens...)
}

// NextToken is part of the Tokenizer interface.
func (ts *TokenSlice) NextToken() sfaa.Token {
	if ts.pos >= len(ts.tokens) {
		return EOF(uint64(ts.pos))
	}
	t := ts.tokens[ts.pos]
	ts.pos++
	return t
}

// SetErrorHandler is part of the Tokenizer interface. Token slices never
// produce errors.
func (ts *TokenSlice) SetErrorHandler(func(error)) {}

// Drain reads all tokens from a tokenizer up to (not including) the end of
// input.
func Drain(t Tokenizer) []sfaa.Token {
	var tokens []sfaa.Token
	for tok := t.NextToken(); tok.TokType() != sfaa.EndOfInput; tok = t.NextToken() {
		tokens = append(tokens, tok)
	}
	return tokens
}
