package ll

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/sfaa"
)

// Categories is a registry of token categories. Grammar sources use it to
// resolve terminal names, the parsing table uses it to size its columns.
type Categories interface {
	Category(name string) (sfaa.TokType, bool)
	CategoryName(t sfaa.TokType) string
	EachCategory(f func(t sfaa.TokType, name string))
}

// CategoryTable is a simple Categories implementation. Categories are
// iterated in ascending order.
type CategoryTable struct {
	byName map[string]sfaa.TokType
	byType *treemap.Map
}

// NewCategoryTable creates an empty category registry.
func NewCategoryTable() *CategoryTable {
	return &CategoryTable{
		byName: make(map[string]sfaa.TokType),
		byType: treemap.NewWith(tokTypeComparator),
	}
}

// Add registers a category. Category values must be non-negative, and names
// and values must be unique.
func (ct *CategoryTable) Add(t sfaa.TokType, name string) error {
	if t < 0 {
		return fmt.Errorf("token category %q has reserved value %d", name, t)
	}
	if _, exists := ct.byName[name]; exists {
		return fmt.Errorf("token category %q defined twice", name)
	}
	if _, exists := ct.byType.Get(t); exists {
		return fmt.Errorf("token category value %d defined twice", t)
	}
	ct.byName[name] = t
	ct.byType.Put(t, name)
	return nil
}

// Category returns the category for a name.
func (ct *CategoryTable) Category(name string) (sfaa.TokType, bool) {
	t, ok := ct.byName[name]
	return t, ok
}

// CategoryName returns the name of a category. Epsilon and end of input have
// fixed names.
func (ct *CategoryTable) CategoryName(t sfaa.TokType) string {
	switch t {
	case sfaa.Epsilon:
		return "ε"
	case sfaa.EndOfInput:
		return "$"
	}
	if name, ok := ct.byType.Get(t); ok {
		return name.(string)
	}
	return fmt.Sprintf("<%d>", t)
}

// EachCategory iterates over all registered categories, ascending.
func (ct *CategoryTable) EachCategory(f func(t sfaa.TokType, name string)) {
	it := ct.byType.Iterator()
	for it.Next() {
		f(it.Key().(sfaa.TokType), it.Value().(string))
	}
}

// Size returns the number of registered categories.
func (ct *CategoryTable) Size() int {
	return ct.byType.Size()
}

func tokTypeComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(sfaa.TokType)), int(b.(sfaa.TokType)))
}
