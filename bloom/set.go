// Package bloom provides exact string sets fronted by a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Set is an exact string set. The Bloom filter is only a prefilter: a
// negative answer skips the map lookup, a positive one is always settled by
// the map. A filter false positive therefore costs one lookup and never
// changes the answer.
//
// Set is safe for concurrent use.
type Set struct {
	mu      sync.Mutex
	filter  *bloom.BloomFilter
	members map[string]struct{}
}

// NewSet creates a Set sized for n expected members with the given false
// positive rate for the prefilter.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter:  bloom.NewWithEstimates(n, fpRate),
		members: make(map[string]struct{}),
	}
}

// Add inserts v and reports whether it was newly added.
func (s *Set) Add(v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestString(v) {
		if _, ok := s.members[v]; ok {
			return false
		}
	}
	s.filter.AddString(v)
	s.members[v] = struct{}{}
	return true
}

// Len returns the number of members.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
