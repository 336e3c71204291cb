/*
Package runtime implements the registries of a compilation unit: a symbol
table with scopes for variables and functions, and a table of constants.

Symbol Table and Scope Tree

Symbols are either variables or functions. Both are addressed by a dense
integer handle (type sfaa.Handle), which the lexer stores in identifier
tokens. Names live in scopes; scopes are organized in a tree, which is
built like a stack during lexical analysis.

Constant Table

Literals are typed when they are registered: a character literal has to
have length 1, "true" and "false" are boolean, a literal containing a dot
is a float, everything else has to be an int.

Registries are not safe for concurrent use. Every compilation unit creates
its own Environment.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
)

// tracer traces with key 'sfaa.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.runtime")
}

// Environment bundles the registries of a compilation unit.
type Environment struct {
	Symbols   *SymbolTable
	Constants *ConstantTable
}

// NewEnvironment constructs a new set of registries. The symbol table
// starts with the global scope on its scope stack.
func NewEnvironment() *Environment {
	env := &Environment{
		Symbols:   NewSymbolTable(),
		Constants: NewConstantTable(),
	}
	return env
}

// The following methods let an Environment serve as the registry of code
// generation.

// Lookup returns the symbol for a handle, or nil.
func (env *Environment) Lookup(h sfaa.Handle) Symbol {
	return env.Symbols.Lookup(h)
}

// Constant returns the constant for a handle.
func (env *Environment) Constant(h sfaa.Handle) (*Constant, bool) {
	return env.Constants.Lookup(h)
}

// NewTemporary creates a fresh temporary variable of type typ.
func (env *Environment) NewTemporary(typ Type) *Variable {
	return env.Symbols.NewTemporary(typ)
}

// ReturnSlot returns the variable receiving return values.
func (env *Environment) ReturnSlot() *Variable {
	return env.Symbols.ReturnSlot()
}

// CheckCall validates the arguments of a call to fn.
func (env *Environment) CheckCall(fn *Function, args []Argument) error {
	return env.Symbols.CheckCall(fn, args)
}
