/*
Package lang defines the SFAA language: its token categories, its grammar
and a lexer which feeds the symbol and constant tables.

An SFAA program consists of function declarations, followed by a main
block:

    func int #square ( int #n ) {
        return #n * #n ;
    }
    start
        var int #x = 7 ;
        #x = call #square ( #x ) ;
        if ( #x > 40 ) { #x = 40 ; } fi
    end

Identifiers start with '#'. Literals are numbers (a dot makes them
floats), characters in single quotes, and the keywords true and false.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lang

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/ll"
)

// tracer traces with key 'sfaa.lang'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.lang")
}

// Token categories of SFAA.
const (
	ID sfaa.TokType = iota + 1
	Const
	// keywords
	Func
	Start
	End
	Var
	Call
	If
	ElseIf
	Else
	Fi
	Meanwhile
	Done
	Return
	True
	False
	IntType
	FloatType
	CharType
	BooleanType
	// literals
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Semicolon
	Assign
	Plus
	Minus
	Star
	Slash
	Less
	Greater
	LessEq
	GreaterEq
	Equal
	NotEqual
	And
	Or
)

var keywords = []string{
	"func", "start", "end", "var", "call", "if", "elseif", "else", "fi",
	"meanwhile", "done", "return", "true", "false",
	"int", "float", "char", "boolean",
}

var literals = []string{
	"(", ")", "{", "}", ",", ";", "=", "+", "-", "*", "/",
	"<", ">", "<=", ">=", "==", "!=", "&&", "||",
}

// tokenIds maps category names to categories. Keywords and literals are
// numbered consecutively, starting at Func.
func tokenIds() map[string]int {
	ids := map[string]int{"id": int(ID), "const": int(Const)}
	for i, name := range keywords {
		ids[name] = int(Func) + i
	}
	for i, lit := range literals {
		ids[lit] = int(LParen) + i
	}
	return ids
}

// Categories returns the category registry of SFAA. Category names are
// "id", "const", the keywords and the literals themselves.
func Categories() *ll.CategoryTable {
	cats := ll.NewCategoryTable()
	for name, id := range tokenIds() {
		if err := cats.Add(sfaa.TokType(id), name); err != nil {
			panic(err) // categories are statically known
		}
	}
	return cats
}

// IsTypeKeyword is true for the categories of the type keywords.
func IsTypeKeyword(t sfaa.TokType) bool {
	return t >= IntType && t <= BooleanType
}

// IsOperator is true for the categories of arithmetic, relational and
// logical operators.
func IsOperator(t sfaa.TokType) bool {
	return t >= Plus && t <= Or
}
