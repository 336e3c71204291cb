package runtime

// Type is the data type of variables, constants and function results.
type Type int8

// Data types of the language. Untyped is used for symbols whose type is
// not (yet) known.
const (
	Untyped Type = iota
	Int
	Float
	Char
	Boolean
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Char:
		return "char"
	case Boolean:
		return "boolean"
	}
	return "untyped"
}

// TypeFromName returns the type for a type keyword.
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "char":
		return Char, true
	case "boolean":
		return Boolean, true
	}
	return Untyped, false
}
