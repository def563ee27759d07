package bitset

import (
	"testing"
)

func TestSet(t *testing.T) {
	s := New(100)

	if s.Cap() != 100 {
		t.Errorf("expected cap 100, got %d", s.Cap())
	}

	s.Add(10)
	if !s.Test(10) {
		t.Errorf("expected id 10 to be set")
	}

	if s.Count() != 1 {
		t.Errorf("expected count 1, got %d", s.Count())
	}

	s.Remove(10)
	if s.Test(10) {
		t.Errorf("expected id 10 to be unset")
	}

	s.Add(10)
	s.Add(20)
	s.Add(99)

	if s.Count() != 3 {
		t.Errorf("expected count 3, got %d", s.Count())
	}

	s.Clear()
	if s.Count() != 0 {
		t.Errorf("expected count 0 after clear, got %d", s.Count())
	}

	if s.Test(-1) || s.Test(100) {
		t.Errorf("out of range ids must not be members")
	}
}

func TestSet_Full(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 130} {
		s := Full(n)
		if s.Count() != n {
			t.Errorf("Full(%d).Count() = %d", n, s.Count())
		}
		if s.Test(n) {
			t.Errorf("Full(%d) contains id %d", n, n)
		}
	}
}

func TestSet_Single(t *testing.T) {
	s := New(200)
	if _, ok := s.Single(); ok {
		t.Errorf("empty set must not report a single member")
	}

	s.Add(150)
	id, ok := s.Single()
	if !ok || id != 150 {
		t.Errorf("Single() = %d, %v, expected 150, true", id, ok)
	}

	s.Add(3)
	if _, ok := s.Single(); ok {
		t.Errorf("two members across words must not be single")
	}

	s.Remove(150)
	s.Add(4)
	if _, ok := s.Single(); ok {
		t.Errorf("two members in one word must not be single")
	}
}

func TestSet_Next(t *testing.T) {
	s := New(1000)
	s.Add(10)
	s.Add(20)
	s.Add(100)

	tests := []struct {
		start    int
		expected int
	}{
		{0, 10},
		{10, 10},
		{11, 20},
		{20, 20},
		{21, 100},
		{100, 100},
		{101, -1},
		{5000, -1},
	}

	for _, tt := range tests {
		if got := s.Next(tt.start); got != tt.expected {
			t.Errorf("Next(%d) = %d, expected %d", tt.start, got, tt.expected)
		}
	}
}

func TestSet_ForEach(t *testing.T) {
	s := New(300)
	want := []int{0, 64, 65, 200, 299}
	for _, id := range want {
		s.Add(id)
	}

	var got []int
	s.ForEach(func(id int) bool {
		got = append(got, id)
		return true
	})
	if len(got) != len(want) {
		t.Fatalf("ForEach visited %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ForEach visited %v, expected %v", got, want)
		}
	}

	visits := 0
	s.ForEach(func(int) bool {
		visits++
		return visits < 2
	})
	if visits != 2 {
		t.Errorf("expected early stop after 2 visits, got %d", visits)
	}
}

func TestSet_CopyFromIsIndependent(t *testing.T) {
	parent := Full(70)
	child := New(70)
	child.CopyFrom(parent)
	child.Remove(5)
	child.Remove(69)

	if parent.Count() != 70 {
		t.Errorf("parent modified through child: count %d", parent.Count())
	}
	if child.Count() != 68 {
		t.Errorf("expected child count 68, got %d", child.Count())
	}

	clone := child.Clone()
	if !clone.Equal(child) {
		t.Errorf("clone differs from source")
	}
	clone.Remove(0)
	if clone.Equal(child) {
		t.Errorf("clone shares storage with source")
	}
}

func TestSet_CopyFromCapacityMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on capacity mismatch")
		}
	}()
	New(10).CopyFrom(New(11))
}
