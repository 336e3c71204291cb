package compiler

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfaa"
	"golang.org/x/tools/txtar"
)

func file(a *txtar.Archive, name string) (string, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

// errorKind names the type of a compilation error.
func errorKind(err error) string {
	var (
		undef  *sfaa.UndefinedTokenError
		gm     *sfaa.GrammarMismatchError
		typ    *sfaa.SemanticTypeError
		dup    *sfaa.DuplicateDeclarationError
		undecl *sfaa.UndeclaredSymbolError
		pm     *sfaa.ParameterMismatchError
		mc     *sfaa.MalformedConstantError
	)
	switch {
	case errors.As(err, &undef):
		return "UndefinedToken"
	case errors.As(err, &gm):
		return "GrammarMismatch"
	case errors.As(err, &typ):
		return "SemanticType"
	case errors.As(err, &dup):
		return "DuplicateDeclaration"
	case errors.As(err, &undecl):
		return "UndeclaredSymbol"
	case errors.As(err, &pm):
		return "ParameterMismatch"
	case errors.As(err, &mc):
		return "MalformedConstant"
	}
	return "untyped"
}

func TestGolden(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.compiler")
	defer teardown()
	//
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil || len(archives) == 0 {
		t.Fatalf("no test archives found: %v", err)
	}
	unit, err := New()
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range archives {
		a, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatal(err)
		}
		src, ok := file(a, "input.sfaa")
		if !ok {
			t.Fatalf("%s: no input", path)
		}
		result, err := unit.Compile(src)
		if want, ok := file(a, "error"); ok {
			if err == nil {
				t.Errorf("%s: expected error %q", path, strings.TrimSpace(want))
			} else if err.Error() != strings.TrimSpace(want) {
				t.Errorf("%s: expected error\n   %s\ngot %s", path, strings.TrimSpace(want), err)
			}
			if kind, ok := file(a, "kind"); ok && err != nil {
				if k := errorKind(err); k != strings.TrimSpace(kind) {
					t.Errorf("%s: expected error of kind %s, got %s (%T)", path, strings.TrimSpace(kind), k, err)
				}
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		want, _ := file(a, "tac")
		if have := result.Listing(); have != want {
			t.Errorf("%s: expected\n%s--- got ---\n%s", path, want, have)
		}
	}
}

func TestCompileStartsFresh(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.compiler")
	defer teardown()
	//
	unit, err := New()
	if err != nil {
		t.Fatal(err)
	}
	src := "start var int #x = 1 ; #x = #x + 1 ; end"
	r1, err1 := unit.Compile(src)
	r2, err2 := unit.Compile(src)
	if err1 != nil || err2 != nil {
		t.Fatalf("expected repeated compilation to succeed: %v, %v", err1, err2)
	}
	if r1.Listing() != r2.Listing() {
		t.Errorf("expected equal code:\n%s\n---\n%s", r1.Listing(), r2.Listing())
	}
	if r1.Env == r2.Env {
		t.Errorf("expected compilations to use separate registries")
	}
}

func TestParallelUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.compiler")
	defer teardown()
	//
	src := "start var int #i = 0 ; meanwhile ( #i < 3 ) { #i = #i + 1 ; } done end"
	listings := make([]string, 4)
	var wg sync.WaitGroup
	for i := range listings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unit, err := New()
			if err != nil {
				return
			}
			if r, err := unit.Compile(src); err == nil {
				listings[i] = r.Listing()
			}
		}(i)
	}
	wg.Wait()
	for i, l := range listings {
		if l == "" || l != listings[0] {
			t.Errorf("unit #%d produced different code:\n%s", i, l)
		}
	}
}

func TestSuppliedGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.compiler")
	defer teardown()
	//
	u1, _ := New()
	u2, _ := New(WithGrammar(u1.Grammar()))
	f1, f2 := u1.Table().Fingerprint(), u2.Table().Fingerprint()
	if f1 != f2 {
		t.Errorf("expected equal tables, fingerprints %s / %s", f1, f2)
	}
	if len(u1.Table().Conflicts()) > 0 {
		t.Errorf("SFAA grammar has conflicts")
	}
}
