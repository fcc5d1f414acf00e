package mocks

import (
	"sync"

	"github.com/mcoot/kabak/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	mu sync.Mutex

	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Permutations is a queue of orderings applied by Shuffle.
	// Each entry lists, for every output slot, the input index placed there.
	Permutations [][]int
	permIndex    int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Shuffle applies the next queued permutation, or leaves the order unchanged
// if none remaining
func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	if r.permIndex >= len(r.Permutations) {
		r.mu.Unlock()
		return
	}
	perm := r.Permutations[r.permIndex]
	r.permIndex++
	r.mu.Unlock()

	if len(perm) != n {
		return
	}
	// pos[k] tracks where original element k currently sits
	pos := make([]int, n)
	at := make([]int, n)
	for i := range pos {
		pos[i] = i
		at[i] = i
	}
	for slot, want := range perm {
		from := pos[want]
		if from == slot {
			continue
		}
		swap(slot, from)
		displaced := at[slot]
		at[slot], at[from] = want, displaced
		pos[want], pos[displaced] = slot, from
	}
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = append(r.IntnResults, values...)
}

// QueuePermutation adds an ordering to the Shuffle queue
func (r *MockRandom) QueuePermutation(perm ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Permutations = append(r.Permutations, perm)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = nil
	r.intnIndex = 0
	r.Permutations = nil
	r.permIndex = 0
}
