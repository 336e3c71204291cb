package sfaa

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any language
// constants here (see package lang), with the exception of two categories
// every grammar needs: Epsilon and EndOfInput.
type TokType int

// Categories reserved for the grammar machinery. Applications should use
// positive values for their own token categories.
const (
	Epsilon    TokType = -1 // the empty string, valid in FIRST sets only
	EndOfInput TokType = -2 // end marker, valid in FOLLOW sets and as lookahead
)

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories (see ll.Table.Stringer).
type TokTypeStringer func(TokType) string

// Handle references a record in the symbol table or in the constant table.
// Tokens which do not carry a reference have handle NoHandle.
type Handle int

// NoHandle is the handle of tokens without a registry reference.
const NoHandle Handle = -1

// Valid is true for handles which reference a registry entry.
func (h Handle) Valid() bool {
	return h >= 0
}

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    TokType = Const       // identifier for this kind of tokens (application specific)
//    Lexeme  = "3.1416"    // lexeme how it appeared in the input stream
//    Handle  = 7           // constant table entry, carrying type float
//    Span    = 67…73       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Handle() Handle
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
