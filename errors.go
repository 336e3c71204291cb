package sfaa

import (
	"fmt"
	"strings"
)

// Errors in this file are fatal for a compilation unit. They are returned
// (never panicked) and travel upwards unchanged; clients inspect them with
// errors.As.

// UndefinedTokenError is raised if a grammar or a source text references a
// terminal category unknown to the token category registry.
type UndefinedTokenError struct {
	Name  string // name of the unknown terminal
	Where string // grammar rule or input position
}

func (e *UndefinedTokenError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("undefined token %q", e.Name)
	}
	return fmt.Sprintf("undefined token %q in %s", e.Name, e.Where)
}

// MismatchKind enumerates the reasons for a GrammarMismatchError.
type MismatchKind int8

// Subtypes of grammar mismatches.
const (
	UnexpectedToken MismatchKind = iota // terminal on stack does not match input
	NoProduction                        // empty table cell for (non-terminal, lookahead)
	LeftoverStack                       // input exhausted, stack not empty
	LeftoverInput                       // stack empty, input remaining
)

func (k MismatchKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case NoProduction:
		return "no production"
	case LeftoverStack:
		return "leftover stack"
	case LeftoverInput:
		return "leftover input"
	}
	return "mismatch"
}

// GrammarMismatchError is raised by the parser if the input cannot be derived
// from the grammar.
type GrammarMismatchError struct {
	Kind     MismatchKind
	Expected string // expected terminal or non-terminal on top of stack
	Found    string // input token (or "end of input")
	Span     Span   // position of the offending input token
}

func (e *GrammarMismatchError) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("syntax error at %s: expected %s, found %s", e.Span, e.Expected, e.Found)
	case NoProduction:
		return fmt.Sprintf("syntax error at %s: no production for %s with lookahead %s",
			e.Span, e.Expected, e.Found)
	case LeftoverStack:
		return fmt.Sprintf("syntax error: unexpected end of input, expected %s", e.Expected)
	case LeftoverInput:
		return fmt.Sprintf("syntax error at %s: input continues with %s after end of program",
			e.Span, e.Found)
	}
	return "syntax error"
}

// SemanticTypeError is raised if operand types disagree in an expression, an
// assignment, a condition, a return or a parameter binding.
type SemanticTypeError struct {
	Context string // what was being typed, e.g. "assignment to #x"
	Want    string // expected type
	Got     string // offending type
}

func (e *SemanticTypeError) Error() string {
	return fmt.Sprintf("type error in %s: expected %s, got %s", e.Context, e.Want, e.Got)
}

// DuplicateDeclarationError is raised by the symbol table if a name is declared
// twice in the same scope.
type DuplicateDeclarationError struct {
	Name  string
	Scope string
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%s already declared in scope %s", e.Name, e.Scope)
}

// UndeclaredSymbolError is raised by the symbol table if a name cannot be
// resolved.
type UndeclaredSymbolError struct {
	Name  string
	Scope string
}

func (e *UndeclaredSymbolError) Error() string {
	return fmt.Sprintf("%s is not declared (scope %s)", e.Name, e.Scope)
}

// ParameterProblem tells what is wrong with the arguments of a call.
type ParameterProblem int8

// Problems detected when validating a call against a function's parameters.
const (
	WrongParamNum ParameterProblem = iota
	WrongParamType
	FunctionAsParam
)

// ParameterMismatchError is raised by the symbol table if the arguments of a
// call do not fit the parameter list of the callee.
type ParameterMismatchError struct {
	Function string
	Problem  ParameterProblem
	Params   []string // declared parameter types
	Args     []string // argument types
}

func (e *ParameterMismatchError) Error() string {
	var what string
	switch e.Problem {
	case WrongParamNum:
		what = "wrong number of parameters"
	case WrongParamType:
		what = "wrong type of parameters"
	case FunctionAsParam:
		what = "a function as a parameter"
	}
	return fmt.Sprintf("function %s passed %s: (%s) for (%s)", e.Function, what,
		strings.Join(e.Args, ", "), strings.Join(e.Params, ", "))
}

// MalformedConstantError is raised by the constant table if a literal cannot
// be converted to its type.
type MalformedConstantError struct {
	Text  string
	Type  string
	Cause error
}

func (e *MalformedConstantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed %s constant %q: %v", e.Type, e.Text, e.Cause)
	}
	return fmt.Sprintf("malformed %s constant %q", e.Type, e.Text)
}

func (e *MalformedConstantError) Unwrap() error {
	return e.Cause
}
