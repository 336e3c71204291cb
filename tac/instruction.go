package tac

import (
	"fmt"
	"strings"

	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/runtime"
)

// OperandKind tells what an operand references.
type OperandKind int8

// Kinds of operands.
const (
	Empty       OperandKind = iota
	SymbolRef               // variable or temporary in the symbol table
	ConstantRef             // entry of the constant table
	LabelRef                // block label
)

// Operand is an operand or the result of an instruction.
type Operand struct {
	Kind   OperandKind
	Handle sfaa.Handle // for symbol and constant references
	Label  int         // for label references
}

// SymbolOperand references a symbol.
func SymbolOperand(h sfaa.Handle) Operand {
	return Operand{Kind: SymbolRef, Handle: h}
}

// ConstantOperand references a constant.
func ConstantOperand(h sfaa.Handle) Operand {
	return Operand{Kind: ConstantRef, Handle: h}
}

// LabelOperand references a block label.
func LabelOperand(l int) Operand {
	return Operand{Kind: LabelRef, Handle: sfaa.NoHandle, Label: l}
}

// IsEmpty is true for absent operands.
func (o Operand) IsEmpty() bool {
	return o.Kind == Empty
}

// Names resolves handles of operands to symbols and constants.
type Names interface {
	Lookup(h sfaa.Handle) runtime.Symbol
	Constant(h sfaa.Handle) (*runtime.Constant, bool)
}

// Format renders an operand. Without names, symbols print as #n and
// constants as $n.
func (o Operand) Format(names Names) string {
	switch o.Kind {
	case SymbolRef:
		if names != nil {
			if s := names.Lookup(o.Handle); s != nil {
				return s.Name()
			}
		}
		return fmt.Sprintf("#%d", o.Handle)
	case ConstantRef:
		if names != nil {
			if c, ok := names.Constant(o.Handle); ok {
				return c.String()
			}
		}
		return fmt.Sprintf("$%d", o.Handle)
	case LabelRef:
		return fmt.Sprintf("L%d", o.Label)
	}
	return ""
}

func (o Operand) String() string {
	return o.Format(nil)
}

// --- Operations ------------------------------------------------------------

// Op is the operation of an instruction.
type Op int8

// Operations. Arithmetic, relational and logical operations combine two
// operands; Move copies operand 1 to the result. For Goto, Label and Call
// the result is a label operand, IfFalse jumps to the label in the result if
// operand 1 is false.
const (
	Nop Op = iota
	Add
	Sub
	Mul
	Div
	Less
	Greater
	LessEq
	GreaterEq
	Equal
	NotEqual
	And
	Or
	Move
	Goto
	IfFalse
	Label
	Call
	Return
)

var opSymbols = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/",
	Less: "<", Greater: ">", LessEq: "<=", GreaterEq: ">=", Equal: "==", NotEqual: "!=",
	And: "&&", Or: "||",
	Nop: "nop", Move: ":=", Goto: "goto", IfFalse: "iffalse", Label: "label",
	Call: "call", Return: "return",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opSymbols) {
		return "?"
	}
	return opSymbols[op]
}

// IsBinary is true for operations combining two operands.
func (op Op) IsBinary() bool {
	return op >= Add && op <= Or
}

// IsRelational is true for comparisons.
func (op Op) IsRelational() bool {
	return op >= Less && op <= NotEqual
}

// IsLogical is true for && and ||.
func (op Op) IsLogical() bool {
	return op == And || op == Or
}

// --- Instructions ----------------------------------------------------------

// Instruction is a three-address code instruction
//
//    result := operand1 op operand2
//
// where op and either operand may be absent.
type Instruction struct {
	Result   Operand
	Operand1 Operand
	Operand2 Operand
	Op       Op
}

// IsComplete is true if an instruction has a result. Instructions holding
// operands (and maybe an operation) but no result are half-built.
func (ins Instruction) IsComplete() bool {
	return !ins.Result.IsEmpty()
}

// Format renders an instruction on a single line, resolving names of
// symbols and constants.
func (ins Instruction) Format(names Names) string {
	r, a, b := ins.Result.Format(names), ins.Operand1.Format(names), ins.Operand2.Format(names)
	switch ins.Op {
	case Move:
		return fmt.Sprintf("%s := %s", r, a)
	case Goto:
		return "goto " + r
	case IfFalse:
		return fmt.Sprintf("iffalse %s goto %s", a, r)
	case Label:
		return r + ":"
	case Call:
		return "call " + r
	case Return:
		return "return"
	case Nop:
		return "nop"
	}
	if !ins.IsComplete() { // half-built
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", a, ins.Op, b))
	}
	return fmt.Sprintf("%s := %s %s %s", r, a, ins.Op, b)
}

func (ins Instruction) String() string {
	return ins.Format(nil)
}

// Listing renders a sequence of instructions, one per line. Labels are
// flush left, all other instructions are indented.
func Listing(code []Instruction, names Names) string {
	var b strings.Builder
	for _, ins := range code {
		if ins.Op != Label {
			b.WriteString("    ")
		}
		b.WriteString(ins.Format(names))
		b.WriteString("\n")
	}
	return b.String()
}
