package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/sfaa"
)

// Constant is a typed literal. Value holds the converted value: int64,
// float64, rune or bool.
type Constant struct {
	Text  string
	Typ   Type
	Value interface{}
}

// Type gets the type of the constant.
func (c *Constant) Type() Type {
	return c.Typ
}

func (c *Constant) String() string {
	if c.Typ == Char {
		return "'" + c.Text + "'"
	}
	return c.Text
}

// ConstantTable stores literals, addressed by dense handles. Equal
// literals of equal type share an entry.
type ConstantTable struct {
	constants []*Constant
	index     map[string]sfaa.Handle
}

// NewConstantTable creates an empty constant table.
func NewConstantTable() *ConstantTable {
	return &ConstantTable{index: make(map[string]sfaa.Handle)}
}

// Intern registers a literal and returns its handle. The type of the
// literal is derived from its text:
//
//    isChar          char, text has to be exactly one character
//    true, false     boolean (case does not matter)
//    contains '.'    float
//    otherwise       int
//
// Texts which do not convert result in a MalformedConstantError.
func (ct *ConstantTable) Intern(text string, isChar bool) (sfaa.Handle, error) {
	c, err := typeConstant(text, isChar)
	if err != nil {
		tracer().Errorf(err.Error())
		return sfaa.NoHandle, err
	}
	key := fmt.Sprintf("%d:%s", c.Typ, c.Text)
	if h, ok := ct.index[key]; ok {
		return h, nil
	}
	h := sfaa.Handle(len(ct.constants))
	ct.constants = append(ct.constants, c)
	ct.index[key] = h
	tracer().Debugf("constant %s:%s = #%d", c, c.Typ, h)
	return h, nil
}

func typeConstant(text string, isChar bool) (*Constant, error) {
	if isChar {
		r := []rune(text)
		if len(r) != 1 {
			return nil, &sfaa.MalformedConstantError{Text: text, Type: Char.String(),
				Cause: fmt.Errorf("a char cannot be longer than one character")}
		}
		return &Constant{Text: text, Typ: Char, Value: r[0]}, nil
	}
	if strings.EqualFold(text, "true") || strings.EqualFold(text, "false") {
		b := strings.EqualFold(text, "true")
		return &Constant{Text: strconv.FormatBool(b), Typ: Boolean, Value: b}, nil
	}
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &sfaa.MalformedConstantError{Text: text, Type: Float.String(), Cause: err}
		}
		return &Constant{Text: text, Typ: Float, Value: f}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, &sfaa.MalformedConstantError{Text: text, Type: Int.String(), Cause: err}
	}
	return &Constant{Text: text, Typ: Int, Value: n}, nil
}

// Lookup returns the constant for a handle.
func (ct *ConstantTable) Lookup(h sfaa.Handle) (*Constant, bool) {
	if !h.Valid() || int(h) >= len(ct.constants) {
		return nil, false
	}
	return ct.constants[h], true
}

// Size counts the constants in the table.
func (ct *ConstantTable) Size() int {
	return len(ct.constants)
}

// Each iterates over the constants in order of registration.
func (ct *ConstantTable) Each(mapper func(sfaa.Handle, *Constant)) {
	for i, c := range ct.constants {
		mapper(sfaa.Handle(i), c)
	}
}
