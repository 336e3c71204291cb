package tac

import (
	"fmt"

	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/lang"
	"github.com/npillmayer/sfaa/runtime"
	"github.com/npillmayer/sfaa/tree"
)

// branches collects the branches of an if-chain. The first branch is the
// IF node itself, followed by ELSE nodes for every elseif and a final else.
//
//    (IF if ( cond ) { … } (ELSE elseif ( cond ) { … } (ELSE else { … } fi)))
//    (IF if ( cond ) { … } fi)
func (g *Generator) branches(n tree.NodeID) []tree.NodeID {
	chain := []tree.NodeID{n}
	for {
		last := g.ast.Child(n, g.ast.ChildCount(n)-1)
		A := g.ast.Value(last).Symbol
		if A.IsTerminal() || A.Name != lang.NtElse {
			return chain
		}
		chain = append(chain, last)
		n = last
	}
}

// conditional generates an if-chain. Every branch gets a label, which marks
// the code following the branch. The label of the last branch is the end
// of the chain:
//
//    cond1                     cond1
//    iffalse c1 goto L1        iffalse c1 goto L1
//    body1                     body1
//    goto L2                   goto L1
//    L1:                       L1:
//    body2 (else)
//    L2:
//
func (g *Generator) conditional(n tree.NodeID) error {
	chain := g.branches(n)
	labels := make([]int, len(chain))
	for i := range chain {
		labels[i] = g.newLabel()
	}
	end := labels[len(labels)-1]
	for i, b := range chain {
		kw := g.ast.Value(g.ast.Child(b, 0))
		if kw.Symbol.Category == lang.Else {
			if err := g.statements(g.block(b)); err != nil {
				return err
			}
		} else {
			c, err := g.condition(g.ast.Child(b, 2), kw.Symbol.Name)
			if err != nil {
				return err
			}
			g.emit(Instruction{Op: IfFalse, Result: LabelOperand(labels[i]), Operand1: c})
			if err := g.statements(g.block(b)); err != nil {
				return err
			}
			g.emit(Instruction{Op: Goto, Result: LabelOperand(end)})
		}
		g.emit(Instruction{Op: Label, Result: LabelOperand(labels[i])})
	}
	return nil
}

// loop generates a pre-test loop.
//
//    LOOP: meanwhile ( cond ) { … } done
//
//    L1:
//    cond
//    iffalse c goto L2
//    body
//    goto L1
//    L2:
func (g *Generator) loop(n tree.NodeID) error {
	head := g.newLabel()
	g.emit(Instruction{Op: Label, Result: LabelOperand(head)})
	c, err := g.condition(g.ast.Child(n, 2), "meanwhile")
	if err != nil {
		return err
	}
	exit := g.newLabel()
	g.emit(Instruction{Op: IfFalse, Result: LabelOperand(exit), Operand1: c})
	if err := g.statements(g.block(n)); err != nil {
		return err
	}
	g.emit(Instruction{Op: Goto, Result: LabelOperand(head)})
	g.emit(Instruction{Op: Label, Result: LabelOperand(exit)})
	return nil
}

// ret moves a value into the return slot and returns. The main block
// returns an int.
func (g *Generator) ret(expr tree.NodeID) error {
	val, typ, err := g.expression(expr)
	if err != nil {
		return err
	}
	want, where := runtime.Int, lang.MainScopeName
	if g.fn != nil {
		want, where = g.fn.Returns, g.fn.Name()
	}
	if typ != want {
		return &sfaa.SemanticTypeError{
			Context: "return from " + where,
			Want:    want.String(),
			Got:     typ.String(),
		}
	}
	slot := g.ctx.ReturnSlot()
	g.emit(Instruction{Op: Move, Result: SymbolOperand(slot.Handle()), Operand1: val})
	g.emit(Instruction{Op: Return})
	return nil
}

// call binds the arguments of a call to the parameters of the callee and
// jumps to its entry label.
//
//    CALL: call #f ( arg , … )
func (g *Generator) call(n tree.NodeID) (*runtime.Function, error) {
	callee := g.ast.Child(n, 1)
	var fn *runtime.Function
	switch s := g.ctx.Lookup(g.handle(callee)).(type) {
	case *runtime.Function:
		fn = s
	case *runtime.Variable:
		return nil, &sfaa.SemanticTypeError{Context: "call", Want: "function", Got: "variable " + s.Name()}
	default:
		return nil, fmt.Errorf("unresolved callee %s", g.ast.Value(callee))
	}
	var args []runtime.Argument
	var vals []Operand
	children := g.ast.Children(n)
	for _, ch := range children[3 : len(children)-1] {
		v := g.ast.Value(ch)
		if v.Symbol.IsTerminal() && v.Symbol.Category == lang.Comma {
			continue
		}
		if v.Symbol.IsTerminal() && v.Symbol.Category == lang.ID {
			if f, ok := g.ctx.Lookup(v.Handle()).(*runtime.Function); ok {
				args = append(args, runtime.Argument{Type: f.Returns, Function: true})
				vals = append(vals, Operand{})
				continue
			}
		}
		val, typ, err := g.expression(ch)
		if err != nil {
			return nil, err
		}
		args = append(args, runtime.Argument{Type: typ})
		vals = append(vals, val)
	}
	if err := g.ctx.CheckCall(fn, args); err != nil {
		return nil, err
	}
	for i, p := range fn.Params {
		g.emit(Instruction{Op: Move, Result: SymbolOperand(p), Operand1: vals[i]})
	}
	entry, ok := g.entry[fn.Handle()]
	if !ok {
		return nil, fmt.Errorf("function %s has no body", fn.Name())
	}
	g.emit(Instruction{Op: Call, Result: LabelOperand(entry)})
	return fn, nil
}
