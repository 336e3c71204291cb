package lang

import (
	"strings"

	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/runtime"
	"github.com/npillmayer/sfaa/scanner"
	"github.com/npillmayer/sfaa/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// MainScopeName is the name of the scope of the main block.
const MainScopeName = "main"

// Lexer is a tokenizer for SFAA. While scanning, it declares variables,
// functions and parameters in the symbol table of its environment and
// resolves identifier uses, so that identifier tokens carry symbol handles.
// Literals are interned into the constant table.
//
// Errors (malformed literals, duplicate or missing declarations) are
// reported to the error handler; scanning continues.
type Lexer struct {
	env      *runtime.Environment
	sc       *lexmach.LMScanner
	onError  func(error)
	prev     [2]sfaa.Token // last and second to last token
	fn       *runtime.Function
	inParams bool
	depth    int // brace depth within a function
}

var _ scanner.Tokenizer = (*Lexer)(nil)

// NewLexer creates a lexer for input, registering symbols in env.
func NewLexer(env *runtime.Environment, input string) (*Lexer, error) {
	lx := &Lexer{env: env, onError: scanner.LogError}
	adapter, err := lexmach.NewLMAdapter(lx.patterns, literals, keywords, tokenIds())
	if err != nil {
		return nil, err
	}
	if lx.sc, err = adapter.Scanner(input); err != nil {
		return nil, err
	}
	return lx, nil
}

func (lx *Lexer) patterns(lexer *lexmachine.Lexer) {
	consts := lx.env.Constants
	lexer.Add([]byte(`//[^\n]*\n?`), lexmach.Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`#([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("id", int(ID)))
	lexer.Add([]byte(`[0-9]([0-9]|\.)*`), lexmach.HandleToken(int(Const),
		func(lexeme string) (sfaa.Handle, error) {
			return consts.Intern(lexeme, false)
		}))
	lexer.Add([]byte(`'[^']*'`), lexmach.HandleToken(int(Const),
		func(lexeme string) (sfaa.Handle, error) {
			return consts.Intern(strings.Trim(lexeme, "'"), true)
		}))
}

// SetErrorHandler is part of the Tokenizer interface.
func (lx *Lexer) SetErrorHandler(h func(error)) {
	if h == nil {
		h = scanner.LogError
	}
	lx.onError = h
	lx.sc.SetErrorHandler(h)
}

// NextToken is part of the Tokenizer interface.
func (lx *Lexer) NextToken() sfaa.Token {
	tok := lx.sc.NextToken()
	switch tok.TokType() {
	case ID:
		tok = lx.identifier(tok)
	case True, False:
		if h, err := lx.env.Constants.Intern(tok.Lexeme(), false); err == nil {
			tok = withHandle(tok, h)
		} else {
			lx.onError(err)
		}
	case Start:
		lx.env.Symbols.PushScope(MainScopeName)
	case End:
		if lx.env.Symbols.Scopes().Current().Name == MainScopeName {
			lx.env.Symbols.PopScope()
		}
	case RParen:
		lx.inParams = false
	case LBrace:
		if lx.fn != nil {
			lx.depth++
		}
	case RBrace:
		if lx.fn != nil {
			lx.depth--
			if lx.depth == 0 {
				lx.env.Symbols.PopScope()
				lx.fn = nil
			}
		}
	}
	lx.prev[1], lx.prev[0] = lx.prev[0], tok
	return tok
}

// identifier declares or resolves an identifier, depending on the two
// preceding tokens:
//
//    var  int #x       variable declaration
//    func int #f       function declaration, opens the function's scope
//    ( int #p , int …  parameter declaration within a function header
//    #x                anything else is a use
//
func (lx *Lexer) identifier(tok sfaa.Token) sfaa.Token {
	syms := lx.env.Symbols
	name := tok.Lexeme()
	var sym runtime.Symbol
	var err error
	if lx.prev[0] != nil && IsTypeKeyword(lx.prev[0].TokType()) {
		typ, _ := runtime.TypeFromName(lx.prev[0].Lexeme())
		switch {
		case lx.prev[1] != nil && lx.prev[1].TokType() == Var:
			sym, err = syms.DeclareVariable(name, typ)
		case lx.prev[1] != nil && lx.prev[1].TokType() == Func:
			var fn *runtime.Function
			if fn, err = syms.DeclareFunction(name, typ); err == nil {
				sym = fn
				syms.PushScope(name)
				fn.Body = syms.Scopes().Current()
				lx.fn, lx.inParams, lx.depth = fn, true, 0
			}
		case lx.inParams:
			sym, err = syms.AddParameter(lx.fn, name, typ)
		default:
			sym, err = syms.Resolve(name)
		}
	} else {
		sym, err = syms.Resolve(name)
	}
	if err != nil {
		lx.onError(err)
		return tok
	}
	return withHandle(tok, sym.Handle())
}

func withHandle(tok sfaa.Token, h sfaa.Handle) sfaa.Token {
	return scanner.MakeDefaultToken(tok.TokType(), tok.Lexeme(), tok.Span()).WithHandle(h)
}
