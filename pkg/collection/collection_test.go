package collection_test

import (
	"testing"

	"github.com/shashiranjanraj/ordercrm/pkg/collection"
)

func TestMap(t *testing.T) {
	got := collection.Map([]int{1, 2, 3}, func(n int) int { return n * n })
	want := []int{1, 4, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Map: got %v", got)
		}
	}
}

func TestFilter(t *testing.T) {
	got := collection.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("Filter: got %v", got)
	}
}

func TestCountBy(t *testing.T) {
	got := collection.CountBy([]string{"a", "b", "a", "a"}, func(s string) string { return s })
	if got["a"] != 3 || got["b"] != 1 {
		t.Fatalf("CountBy: got %v", got)
	}
	if got["missing"] != 0 {
		t.Error("absent keys must read zero")
	}
}

func TestTake(t *testing.T) {
	s := []int{1, 2, 3}
	if got := collection.Take(s, 2); len(got) != 2 {
		t.Errorf("Take(2): got %v", got)
	}
	if got := collection.Take(s, 10); len(got) != 3 {
		t.Errorf("Take beyond length must return everything, got %v", got)
	}
	if got := collection.Take(s, 0); len(got) != 0 {
		t.Errorf("Take(0): got %v", got)
	}
}
