package domain

import (
	"iter"
	"slices"
	"strings"
)

// AspectCollection is an immutable set of aspect descriptors in canonical
// order. Two collections built from the same members in different insertion
// orders are the same value; duplicates collapse.
type AspectCollection struct {
	// sorted by AspectDescriptor.Compare, no duplicates; nil when empty.
	members []AspectDescriptor
}

// EmptyAspectCollection is the shared collection with no members.
var EmptyAspectCollection = AspectCollection{}

// NewAspectCollection canonicalizes the given descriptors into a collection.
// With no members it returns the shared empty collection.
func NewAspectCollection(members ...AspectDescriptor) AspectCollection {
	if len(members) == 0 {
		return EmptyAspectCollection
	}

	sorted := slices.Clone(members)
	slices.SortFunc(sorted, AspectDescriptor.Compare)
	sorted = slices.CompactFunc(sorted, func(a, b AspectDescriptor) bool {
		return a.Compare(b) == 0
	})

	return AspectCollection{members: sorted}
}

// Members returns an iterator over the descriptors in canonical order.
func (c AspectCollection) Members() iter.Seq[AspectDescriptor] {
	return func(yield func(AspectDescriptor) bool) {
		for _, d := range c.members {
			if !yield(d) {
				return
			}
		}
	}
}

// Len returns the number of member descriptors.
func (c AspectCollection) Len() int {
	return len(c.members)
}

// IsEmpty reports whether the collection has no members.
func (c AspectCollection) IsEmpty() bool {
	return len(c.members) == 0
}

// Contains reports whether d is a member of the collection.
func (c AspectCollection) Contains(d AspectDescriptor) bool {
	_, found := slices.BinarySearchFunc(c.members, d, AspectDescriptor.Compare)
	return found
}

// Compare orders collections member-wise in canonical order; a strict prefix
// sorts first. Only Equal collections compare as zero.
func (c AspectCollection) Compare(other AspectCollection) int {
	return slices.CompareFunc(c.members, other.members, AspectDescriptor.Compare)
}

// Equal reports structural set equality.
func (c AspectCollection) Equal(other AspectCollection) bool {
	return slices.EqualFunc(c.members, other.members, func(a, b AspectDescriptor) bool {
		return a.Compare(b) == 0
	})
}

// String renders "[a, b]" in canonical order.
func (c AspectCollection) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range c.members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.String())
	}
	b.WriteByte(']')
	return b.String()
}
