package bitset

import (
	"fmt"
	"math/bits"
)

// Set is a non-thread-safe bitset over the ids [0, Cap()).
type Set struct {
	words []uint64
	n     int
}

// New creates an empty set able to hold ids in [0, n).
func New(n int) *Set {
	if n < 0 {
		panic(fmt.Sprintf("bitset: negative capacity %d", n))
	}
	return &Set{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

// Full creates a set that contains every id in [0, n).
func Full(n int) *Set {
	s := New(n)
	s.Fill()
	return s
}

// Cap returns the number of ids the set can hold.
func (s *Set) Cap() int {
	return s.n
}

// Fill adds every id in [0, Cap()).
func (s *Set) Fill() {
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	if r := s.n % 64; r != 0 {
		s.words[len(s.words)-1] = (uint64(1) << r) - 1
	}
}

// Clear removes every id.
func (s *Set) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// Add inserts id.
func (s *Set) Add(id int) {
	s.check(id)
	s.words[id>>6] |= uint64(1) << (id & 63)
}

// Remove deletes id.
func (s *Set) Remove(id int) {
	s.check(id)
	s.words[id>>6] &^= uint64(1) << (id & 63)
}

// Test reports whether id is a member.
func (s *Set) Test(id int) bool {
	if id < 0 || id >= s.n {
		return false
	}
	return s.words[id>>6]&(uint64(1)<<(id&63)) != 0
}

// Count returns the number of members.
func (s *Set) Count() int {
	count := 0
	for _, w := range s.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Single returns the only member when the set has exactly one.
func (s *Set) Single() (int, bool) {
	id := -1
	for i, w := range s.words {
		if w == 0 {
			continue
		}
		if id >= 0 || w&(w-1) != 0 {
			return -1, false
		}
		id = i*64 + bits.TrailingZeros64(w)
	}
	return id, id >= 0
}

// Next returns the smallest member >= i, or -1 if there is none.
func (s *Set) Next(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= s.n {
		return -1
	}
	wordIdx := i >> 6
	w := s.words[wordIdx] &^ ((uint64(1) << (i & 63)) - 1)
	for {
		if w != 0 {
			return wordIdx*64 + bits.TrailingZeros64(w)
		}
		wordIdx++
		if wordIdx >= len(s.words) {
			return -1
		}
		w = s.words[wordIdx]
	}
}

// ForEach calls fn for every member in ascending order until fn returns false.
func (s *Set) ForEach(fn func(id int) bool) {
	for i, w := range s.words {
		for w != 0 {
			id := i*64 + bits.TrailingZeros64(w)
			if !fn(id) {
				return
			}
			w &= w - 1
		}
	}
}

// CopyFrom overwrites s with the members of src. Both sets must share the
// same capacity.
func (s *Set) CopyFrom(src *Set) {
	if s.n != src.n {
		panic(fmt.Sprintf("bitset: capacity mismatch %d != %d", s.n, src.n))
	}
	copy(s.words, src.words)
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := New(s.n)
	copy(c.words, s.words)
	return c
}

// Equal reports whether both sets hold the same members.
func (s *Set) Equal(other *Set) bool {
	if s.n != other.n {
		return false
	}
	for i, w := range s.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

func (s *Set) check(id int) {
	if id < 0 || id >= s.n {
		panic(fmt.Sprintf("bitset: id %d out of range [0, %d)", id, s.n))
	}
}
