package sparse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSetAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	M := NewIntMatrix(10, 10, -1)
	if old := M.Set(2, 3, 4711); old != -1 {
		t.Errorf("expected fresh cell to report null-value, got %d", old)
	}
	M.Set(0, 9, 1)
	M.Set(9, 0, 2)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(5, 5); v != M.NullValue() {
		t.Errorf("expected M(5,5) to be empty, is %d", v)
	}
	if old := M.Set(2, 3, 7); old != 4711 {
		t.Errorf("expected overwrite to return 4711, got %d", old)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
	M.Set(2, 3, -1)
	if M.ValueCount() != 2 || M.Value(2, 3) != -1 {
		t.Errorf("expected cell (2,3) to be cleared")
	}
}

func TestEachIsOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	M := NewIntMatrix(4, 4, DefaultNullValue)
	M.Set(3, 1, 31)
	M.Set(0, 2, 2)
	M.Set(3, 0, 30)
	M.Set(1, 1, 11)
	var seen []int32
	M.Each(func(i, j int, v int32) {
		seen = append(seen, v)
	})
	want := []int32{2, 11, 30, 31}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for k := range want {
		if seen[k] != want[k] {
			t.Errorf("expected %v, got %v", want, seen)
			break
		}
	}
}

func TestOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected access out of range to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Value(2, 0)
}
