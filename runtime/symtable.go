package runtime

import (
	"fmt"

	"github.com/npillmayer/sfaa"
)

// Symbol table for variables and functions. Names are attached to scopes,
// symbols themselves live in one table and are addressed by handle.
// Scopes are organized in a tree.

// --- Symbols ---------------------------------------------------------------

// Symbol is either a *Variable or a *Function. Clients switch on the
// concrete type:
//
//    switch s := sym.(type) {
//    case *runtime.Variable:
//        …
//    case *runtime.Function:
//        …
//    }
//
// No other implementations exist.
type Symbol interface {
	Name() string
	Handle() sfaa.Handle
	Type() Type
	isSymbol()
}

// Variable is a named storage location. Temporaries created during code
// generation are variables without a scope.
type Variable struct {
	name      string
	handle    sfaa.Handle
	Typ       Type
	Scope     *Scope
	Value     string // initial value, if known
	Temporary bool
	Parameter bool
}

// Name gets the variable's name.
func (v *Variable) Name() string { return v.name }

// Handle gets the variable's handle.
func (v *Variable) Handle() sfaa.Handle { return v.handle }

// Type gets the declared type of the variable.
func (v *Variable) Type() Type { return v.Typ }

func (v *Variable) isSymbol() {}

func (v *Variable) String() string {
	if v.Scope == nil {
		return fmt.Sprintf("<var %s:%s>", v.name, v.Typ)
	}
	return fmt.Sprintf("<var %s:%s in %s>", v.name, v.Typ, v.Scope.Name)
}

// Function is a global function symbol. Params holds the handles of the
// parameter variables, in declaration order.
type Function struct {
	name    string
	handle  sfaa.Handle
	Returns Type
	Params  []sfaa.Handle
	Body    *Scope // scope of parameters and local variables
}

// Name gets the function's name.
func (f *Function) Name() string { return f.name }

// Handle gets the function's handle.
func (f *Function) Handle() sfaa.Handle { return f.handle }

// Type gets the return type of the function.
func (f *Function) Type() Type { return f.Returns }

func (f *Function) isSymbol() {}

func (f *Function) String() string {
	return fmt.Sprintf("<func %s(%d):%s>", f.name, len(f.Params), f.Returns)
}

// === Scopes ================================================================

// Scope is a named scope, which may contain symbol definitions. Scopes link
// back to a parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	names  map[string]sfaa.Handle
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		names:  make(map[string]sfaa.Handle),
	}
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Size counts the names defined in this scope (not including parents).
func (s *Scope) Size() int {
	return len(s.names)
}

// Lookup finds a name in this scope only.
func (s *Scope) Lookup(name string) (sfaa.Handle, bool) {
	h, ok := s.names[name]
	return h, ok
}

// Resolve finds a name. It returns the handle and the scope (of a
// scope-tree-path) the name was found in, or NoHandle and nil.
func (s *Scope) Resolve(name string) (sfaa.Handle, *Scope) {
	for ; s != nil; s = s.Parent {
		if h, ok := s.names[name]; ok {
			return h, s
		}
	}
	return sfaa.NoHandle, nil
}

func (s *Scope) define(name string, h sfaa.Handle) {
	s.names[name] = h
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack during static analysis, thus
// building a tree from scopes which are pushed an popped to/from the stack.
type ScopeTree struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeTree) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// PushNewScope pushes a new scope onto the stack of scopes.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc
	}
	scst.ScopeTOS = newsc
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope. The global scope cannot be
// popped.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.ScopeTOS == nil || scst.ScopeTOS == scst.ScopeBase {
		panic("attempt to pop global scope")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	return sc
}

// === Symbol Tables =========================================================

// GlobalScopeName is the name of the outermost scope.
const GlobalScopeName = "globals"

// SymbolTable stores variables and functions, addressed by dense handles.
type SymbolTable struct {
	symbols []Symbol
	scopes  ScopeTree
	temps   int
	retslot *Variable
}

// NewSymbolTable creates an empty symbol table with the global scope on
// its scope stack.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{}
	st.scopes.PushNewScope(GlobalScopeName)
	return st
}

// Scopes returns the scope stack of the table.
func (st *SymbolTable) Scopes() *ScopeTree {
	return &st.scopes
}

// PushScope opens a new scope nested into the current one.
func (st *SymbolTable) PushScope(name string) *Scope {
	return st.scopes.PushNewScope(name)
}

// PopScope closes the current scope.
func (st *SymbolTable) PopScope() *Scope {
	return st.scopes.PopScope()
}

func (st *SymbolTable) nextHandle() sfaa.Handle {
	return sfaa.Handle(len(st.symbols))
}

// DeclareVariable declares a variable in the current scope. Declaring a
// name twice within the same scope results in a DuplicateDeclarationError.
func (st *SymbolTable) DeclareVariable(name string, typ Type) (*Variable, error) {
	sc := st.scopes.Current()
	if _, exists := sc.Lookup(name); exists {
		return nil, &sfaa.DuplicateDeclarationError{Name: name, Scope: sc.Name}
	}
	v := &Variable{name: name, handle: st.nextHandle(), Typ: typ, Scope: sc}
	st.symbols = append(st.symbols, v)
	sc.define(name, v.handle)
	tracer().P("scope", sc.Name).Debugf("declared %s", v)
	return v, nil
}

// DeclareFunction declares a function in the global scope.
func (st *SymbolTable) DeclareFunction(name string, returns Type) (*Function, error) {
	sc := st.scopes.Globals()
	if _, exists := sc.Lookup(name); exists {
		return nil, &sfaa.DuplicateDeclarationError{Name: name, Scope: sc.Name}
	}
	f := &Function{name: name, handle: st.nextHandle(), Returns: returns}
	st.symbols = append(st.symbols, f)
	sc.define(name, f.handle)
	tracer().Debugf("declared %s", f)
	return f, nil
}

// AddParameter declares a parameter variable of fn in the current scope
// and appends it to fn's parameter list.
func (st *SymbolTable) AddParameter(fn *Function, name string, typ Type) (*Variable, error) {
	v, err := st.DeclareVariable(name, typ)
	if err != nil {
		return nil, err
	}
	v.Parameter = true
	fn.Params = append(fn.Params, v.handle)
	return v, nil
}

// Resolve finds a name, starting at the current scope. Unknown names
// result in an UndeclaredSymbolError.
func (st *SymbolTable) Resolve(name string) (Symbol, error) {
	sc := st.scopes.Current()
	h, _ := sc.Resolve(name)
	if !h.Valid() {
		return nil, &sfaa.UndeclaredSymbolError{Name: name, Scope: sc.Name}
	}
	return st.symbols[h], nil
}

// Lookup returns the symbol for a handle, or nil.
func (st *SymbolTable) Lookup(h sfaa.Handle) Symbol {
	if !h.Valid() || int(h) >= len(st.symbols) {
		return nil
	}
	return st.symbols[h]
}

// NewTemporary creates a fresh temporary variable. Temporaries are
// numbered t0, t1, … and live outside of any scope.
func (st *SymbolTable) NewTemporary(typ Type) *Variable {
	v := &Variable{
		name:      fmt.Sprintf("t%d", st.temps),
		handle:    st.nextHandle(),
		Typ:       typ,
		Temporary: true,
	}
	st.temps++
	st.symbols = append(st.symbols, v)
	return v
}

// ReturnSlot returns the variable which receives return values. All
// functions share a single return slot.
func (st *SymbolTable) ReturnSlot() *Variable {
	if st.retslot == nil {
		st.retslot = &Variable{name: "0return", handle: st.nextHandle(), Temporary: true}
		st.symbols = append(st.symbols, st.retslot)
	}
	return st.retslot
}

// Argument describes an actual argument of a function call.
type Argument struct {
	Type     Type
	Function bool // a function has been passed by name
}

// CheckCall validates the arguments of a call against the parameter list of
// fn. It returns a ParameterMismatchError if the number of arguments
// differs, if a function is passed as an argument, or if argument and
// parameter types differ.
func (st *SymbolTable) CheckCall(fn *Function, args []Argument) error {
	params := make([]string, len(fn.Params))
	ptypes := make([]Type, len(fn.Params))
	for i, h := range fn.Params {
		ptypes[i] = st.symbols[h].Type()
		params[i] = ptypes[i].String()
	}
	argtypes := make([]string, len(args))
	for i, a := range args {
		if a.Function {
			argtypes[i] = "func"
		} else {
			argtypes[i] = a.Type.String()
		}
	}
	mismatch := func(p sfaa.ParameterProblem) error {
		err := &sfaa.ParameterMismatchError{
			Function: fn.name,
			Problem:  p,
			Params:   params,
			Args:     argtypes,
		}
		tracer().Errorf(err.Error())
		return err
	}
	if len(args) != len(fn.Params) {
		return mismatch(sfaa.WrongParamNum)
	}
	for i, a := range args {
		if a.Function {
			return mismatch(sfaa.FunctionAsParam)
		}
		if a.Type != ptypes[i] {
			return mismatch(sfaa.WrongParamType)
		}
	}
	return nil
}

// Size counts the symbols in the table, including temporaries.
func (st *SymbolTable) Size() int {
	return len(st.symbols)
}

// Each iterates over the symbols of the table, in order of creation.
func (st *SymbolTable) Each(mapper func(Symbol)) {
	for _, s := range st.symbols {
		mapper(s)
	}
}
