package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/scanner"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'sfaa.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values. Keywords are added
// first, then init is called, then literals are added. For matches of equal
// length, patterns added earlier take precedence.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, inputLen: len(input), Error: scanner.LogError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner  *lexmachine.Scanner
	inputLen int
	Error    func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = scanner.LogError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() sfaa.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.Error(undefinedToken(ui))
			lms.scanner.TC = ui.FailTC
		} else {
			lms.Error(err)
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.EOF(uint64(lms.inputLen))
	}
	token := tok.(*lexmachine.Token)
	t := scanner.MakeDefaultToken(
		sfaa.TokType(token.Type),
		string(token.Lexeme),
		sfaa.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
	if h, ok := token.Value.(sfaa.Handle); ok {
		t = t.WithHandle(h)
	}
	tracer().Debugf("token %v", t)
	return t
}

// undefinedToken converts input no pattern matches into an
// *sfaa.UndefinedTokenError naming the unmatched text.
func undefinedToken(ui *machines.UnconsumedInput) error {
	from, to := ui.StartTC, ui.FailTC
	if to <= from {
		to = from + 1
	}
	if to > len(ui.Text) {
		to = len(ui.Text)
	}
	if from > to {
		from = to
	}
	return &sfaa.UndefinedTokenError{
		Name:  string(ui.Text[from:to]),
		Where: fmt.Sprintf("input at offset %d", ui.StartTC),
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// HandleToken is an action which wraps a scanned match into a token carrying
// a handle. resolve maps the lexeme to a symbol or constant table handle;
// its error is passed to the scanner's error handler and the match is
// dropped.
func HandleToken(id int, resolve func(lexeme string) (sfaa.Handle, error)) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		h, err := resolve(string(m.Bytes))
		if err != nil {
			return nil, err
		}
		return s.Token(id, h, m), nil
	}
}
