package crawl

import (
	"sync"

	"github.com/fwojciec/docdig"
)

// Frontier is a first-in first-out queue of crawl entries, which makes the
// crawl breadth-first. It does not deduplicate; the session's visited set
// does that when entries are dequeued.
//
// Frontier is safe for concurrent use.
type Frontier struct {
	mu      sync.Mutex
	entries []docdig.Entry
	head    int
}

// NewFrontier creates a Frontier holding the given entries in order.
func NewFrontier(entries ...docdig.Entry) *Frontier {
	return &Frontier{entries: append([]docdig.Entry(nil), entries...)}
}

// Push appends an entry.
func (f *Frontier) Push(e docdig.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
}

// Pop removes and returns the oldest entry.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (docdig.Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.entries) {
		return docdig.Entry{}, false
	}
	e := f.entries[f.head]
	f.entries[f.head] = docdig.Entry{}
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 >= len(f.entries) {
		f.entries = append([]docdig.Entry(nil), f.entries[f.head:]...)
		f.head = 0
	}
	return e, true
}

// Len returns the number of queued entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries) - f.head
}
