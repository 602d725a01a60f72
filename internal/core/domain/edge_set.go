package domain

import (
	"iter"
	"slices"
)

// EdgeSet is a deduplicating container of dependency edges. Edges are
// bucketed by fingerprint and verified with Equal inside a bucket, so two
// edges land in the same slot exactly when they denote the same logical
// dependency. EdgeSet is not safe for concurrent mutation; concurrent
// writers synchronize externally.
type EdgeSet struct {
	buckets map[uint64][]Dependency
	size    int
}

// NewEdgeSet creates an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{
		buckets: make(map[uint64][]Dependency),
	}
}

// Add inserts the edge and reports whether it was new. A duplicate of an
// already present edge leaves the set unchanged.
func (s *EdgeSet) Add(dep Dependency) bool {
	fp := dep.Fingerprint()
	for _, existing := range s.buckets[fp] {
		if existing.Equal(dep) {
			return false
		}
	}
	s.buckets[fp] = append(s.buckets[fp], dep)
	s.size++
	return true
}

// Contains reports whether an equal edge is already present.
func (s *EdgeSet) Contains(dep Dependency) bool {
	for _, existing := range s.buckets[dep.Fingerprint()] {
		if existing.Equal(dep) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct edges.
func (s *EdgeSet) Len() int {
	return s.size
}

// Walk returns an iterator over the edges in a deterministic order
// (label, then configuration, then aspects).
func (s *EdgeSet) Walk() iter.Seq[Dependency] {
	ordered := make([]Dependency, 0, s.size)
	for _, bucket := range s.buckets {
		ordered = append(ordered, bucket...)
	}
	slices.SortFunc(ordered, Dependency.Compare)

	return func(yield func(Dependency) bool) {
		for _, dep := range ordered {
			if !yield(dep) {
				return
			}
		}
	}
}
