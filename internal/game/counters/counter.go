package counters

import "sort"

// Counter is a named, non-negative count on a permanent.
type Counter struct {
	Name  string
	Count int
}

// Counters manages the counters on one permanent.
type Counters struct {
	counts map[string]int
}

// NewCounters creates an empty collection.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int)}
}

// Add puts amount counters of type ct on the permanent.
func (cs *Counters) Add(ct CounterType, amount int) {
	if amount <= 0 {
		return
	}
	cs.counts[string(ct)] += amount
}

// Remove takes up to amount counters of type ct off and reports whether any
// were removed. The count never goes below zero.
func (cs *Counters) Remove(ct CounterType, amount int) bool {
	have := cs.counts[string(ct)]
	if amount <= 0 || have == 0 {
		return false
	}
	if amount >= have {
		delete(cs.counts, string(ct))
	} else {
		cs.counts[string(ct)] = have - amount
	}
	return true
}

// Get returns the number of counters of type ct.
func (cs *Counters) Get(ct CounterType) int {
	if cs == nil {
		return 0
	}
	return cs.counts[string(ct)]
}

// Has reports whether at least one counter of type ct is present.
func (cs *Counters) Has(ct CounterType) bool {
	return cs.Get(ct) > 0
}

// All returns the counters sorted by name.
func (cs *Counters) All() []Counter {
	if cs == nil {
		return nil
	}
	out := make([]Counter, 0, len(cs.counts))
	for name, n := range cs.counts {
		out = append(out, Counter{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Copy creates a deep copy.
func (cs *Counters) Copy() *Counters {
	c := NewCounters()
	if cs == nil {
		return c
	}
	for k, v := range cs.counts {
		c.counts[k] = v
	}
	return c
}
