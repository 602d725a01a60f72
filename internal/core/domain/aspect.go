package domain

import (
	"maps"
	"slices"
	"strings"
)

// AspectDescriptor is the immutable identity of one aspect definition: its
// name plus the canonicalized parameter assignment. It is a comparable value
// usable as a map key; parameter insertion order is never observable.
type AspectDescriptor struct {
	name   InternedString
	params InternedString
}

// NewAspectDescriptor creates a descriptor for a parameterless aspect.
func NewAspectDescriptor(name string) AspectDescriptor {
	return AspectDescriptor{name: NewInternedString(name), params: NewInternedString("")}
}

// NewAspectDescriptorWithParameters creates a descriptor carrying parameters.
// Parameters are canonicalized into a sorted key=value form so that two
// descriptors built from the same assignment always compare equal.
func NewAspectDescriptorWithParameters(name string, params map[string]string) AspectDescriptor {
	if len(params) == 0 {
		return NewAspectDescriptor(name)
	}

	pairs := make([]string, 0, len(params))
	for _, key := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, key+"="+params[key])
	}

	return AspectDescriptor{
		name:   NewInternedString(name),
		params: NewInternedString(strings.Join(pairs, ",")),
	}
}

// Name returns the aspect name.
func (d AspectDescriptor) Name() string {
	return d.name.String()
}

// IsAbsent reports whether the descriptor is the zero value.
func (d AspectDescriptor) IsAbsent() bool {
	return d.name.IsZero()
}

// Compare totally orders descriptors by name, then parameters.
func (d AspectDescriptor) Compare(other AspectDescriptor) int {
	if c := d.name.Compare(other.name); c != 0 {
		return c
	}
	return d.params.Compare(other.params)
}

// String renders "name" or "name[k=v,...]".
func (d AspectDescriptor) String() string {
	if params := d.params.String(); params != "" {
		return d.name.String() + "[" + params + "]"
	}
	return d.name.String()
}
