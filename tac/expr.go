package tac

import (
	"fmt"

	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/lang"
	"github.com/npillmayer/sfaa/runtime"
	"github.com/npillmayer/sfaa/tree"
)

var operators = map[sfaa.TokType]Op{
	lang.Plus: Add, lang.Minus: Sub, lang.Star: Mul, lang.Slash: Div,
	lang.Less: Less, lang.Greater: Greater, lang.LessEq: LessEq, lang.GreaterEq: GreaterEq,
	lang.Equal: Equal, lang.NotEqual: NotEqual,
	lang.And: And, lang.Or: Or,
}

// expression generates code for an expression and returns the operand
// holding its value, together with the value's type.
//
// Expression nodes have a flat list of children, alternating between
// operands and operators:
//
//    (SUM #a + (TERM #b * #c) - #d)
//
// Children are combined left to right. The first operand produces a
// half-built instruction holding just that operand. An operator is pushed
// into the half-built instruction, the next operand completes it. A complete
// instruction receives a fresh temporary as its result and is emitted; the
// temporary starts the next half-built instruction. Sub-expressions are
// generated recursively before they are combined; a sub-expression which
// did not need an instruction of its own contributes its operand directly.
// For the example above:
//
//    t0 := #b * #c
//    t1 := #a + t0
//    t2 := t1 - #d
//
func (g *Generator) expression(n tree.NodeID) (Operand, runtime.Type, error) {
	if g.ast.IsLeaf(n) {
		return g.operand(n)
	}
	var half *Instruction
	var typ runtime.Type
	for _, ch := range g.ast.Children(n) {
		A := g.ast.Value(ch).Symbol
		if A.IsTerminal() && lang.IsOperator(A.Category) {
			if half == nil || half.Op != Nop {
				return Operand{}, runtime.Untyped, fmt.Errorf("misplaced operator %s", A)
			}
			half.Op = operators[A.Category]
			continue
		}
		val, t, err := g.expression(ch)
		if err != nil {
			return Operand{}, runtime.Untyped, err
		}
		if half == nil {
			half, typ = &Instruction{Operand1: val}, t
			continue
		}
		if half.Op == Nop {
			return Operand{}, runtime.Untyped, fmt.Errorf("missing operator before %s", g.ast.Value(ch))
		}
		half.Operand2 = val
		if typ, err = g.complete(half, typ, t); err != nil {
			return Operand{}, runtime.Untyped, err
		}
		half = &Instruction{Operand1: half.Result}
	}
	if half == nil || half.Op != Nop {
		return Operand{}, runtime.Untyped, fmt.Errorf("incomplete expression %s", g.ast.Value(n))
	}
	return half.Operand1, typ, nil
}

// complete checks the operand types of a half-built instruction, allocates
// a temporary for its result and emits it. It returns the type of the
// result.
func (g *Generator) complete(ins *Instruction, t1, t2 runtime.Type) (runtime.Type, error) {
	typ, err := resultType(ins.Op, t1, t2)
	if err != nil {
		return runtime.Untyped, err
	}
	tmp := g.ctx.NewTemporary(typ)
	ins.Result = SymbolOperand(tmp.Handle())
	g.emit(*ins)
	return typ, nil
}

func resultType(op Op, t1, t2 runtime.Type) (runtime.Type, error) {
	if t1 != t2 {
		return runtime.Untyped, &sfaa.SemanticTypeError{
			Context: "operation " + op.String(),
			Want:    t1.String(),
			Got:     t2.String(),
		}
	}
	switch {
	case op.IsLogical():
		if t1 != runtime.Boolean {
			return runtime.Untyped, &sfaa.SemanticTypeError{
				Context: "operation " + op.String(),
				Want:    runtime.Boolean.String(),
				Got:     t1.String(),
			}
		}
		return runtime.Boolean, nil
	case op.IsRelational():
		return runtime.Boolean, nil
	case t1 == runtime.Boolean:
		return runtime.Untyped, &sfaa.SemanticTypeError{
			Context: "operation " + op.String(),
			Want:    "number",
			Got:     t1.String(),
		}
	}
	return t1, nil
}

// operand returns the operand for an identifier or a literal.
func (g *Generator) operand(n tree.NodeID) (Operand, runtime.Type, error) {
	v := g.ast.Value(n)
	if !v.Symbol.IsTerminal() || v.Token == nil {
		return Operand{}, runtime.Untyped, fmt.Errorf("unexpected %s in expression", v)
	}
	h := v.Token.Handle()
	switch v.Symbol.Category {
	case lang.ID:
		switch s := g.ctx.Lookup(h).(type) {
		case *runtime.Variable:
			return SymbolOperand(h), s.Typ, nil
		case *runtime.Function:
			return Operand{}, runtime.Untyped, &sfaa.SemanticTypeError{
				Context: "expression",
				Want:    "variable",
				Got:     "function " + s.Name(),
			}
		}
	case lang.Const, lang.True, lang.False:
		if c, ok := g.ctx.Constant(h); ok {
			return ConstantOperand(h), c.Type(), nil
		}
	default:
		return Operand{}, runtime.Untyped, fmt.Errorf("unexpected %s in expression", v)
	}
	return Operand{}, runtime.Untyped, fmt.Errorf("unresolved operand %s", v)
}

// condition generates code for a boolean expression.
func (g *Generator) condition(n tree.NodeID, what string) (Operand, error) {
	val, typ, err := g.expression(n)
	if err != nil {
		return Operand{}, err
	}
	if typ != runtime.Boolean {
		return Operand{}, &sfaa.SemanticTypeError{
			Context: "condition of " + what,
			Want:    runtime.Boolean.String(),
			Got:     typ.String(),
		}
	}
	return val, nil
}
