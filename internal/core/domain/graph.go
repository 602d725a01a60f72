package domain

import (
	"iter"
	"slices"
	"strings"
)

// Graph holds the declared build targets keyed by label. Validate performs a
// topological sort over the deps and exec tool references; data references
// may point at files outside the graph and are not checked.
type Graph struct {
	targets   map[Label]Target
	walkOrder []Label
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[Label]Target),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same label already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Label]; exists {
		return WithDetail(ErrTargetAlreadyExists, "label", t.Label.String())
	}
	g.targets[t.Label] = *t
	return nil
}

// GetTarget returns the target with the given label.
func (g *Graph) GetTarget(label Label) (Target, bool) {
	t, ok := g.targets[label]
	return t, ok
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Labels returns the labels of all targets in ascending order.
func (g *Graph) Labels() []Label {
	labels := make([]Label, 0, len(g.targets))
	for label := range g.targets {
		labels = append(labels, label)
	}
	slices.SortFunc(labels, Label.Compare)
	return labels
}

// Validate checks that every deps and exec tool reference resolves to a
// declared target and that the reference structure is acyclic. On success it
// fixes the dependency-first walk order.
func (g *Graph) Validate() error {
	g.walkOrder = make([]Label, 0, len(g.targets))
	visited := make(map[Label]int) // 0: unvisited, 1: visiting, 2: visited
	var path []Label

	var visit func(u Label) error
	visit = func(u Label) error {
		visited[u] = 1
		path = append(path, u)

		target, exists := g.targets[u]
		if !exists {
			return WithDetail(ErrMissingTarget, "label", u.String())
		}

		refs := make([]Label, 0, len(target.Deps)+len(target.ExecTools))
		refs = append(refs, target.Deps...)
		refs = append(refs, target.ExecTools...)

		for _, ref := range refs {
			if visited[ref] == 1 {
				return g.buildCycleError(path, ref)
			}
			if visited[ref] == 0 {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.walkOrder = append(g.walkOrder, u)
		return nil
	}

	// Sorted roots keep the walk order stable across runs.
	for _, label := range g.Labels() {
		if visited[label] == 0 {
			if err := visit(label); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error carrying the rendered cycle path.
func (g *Graph) buildCycleError(path []Label, ref Label) error {
	start := slices.IndexFunc(path, func(l Label) bool { return l == ref })

	var rendered strings.Builder
	for i := start; i >= 0 && i < len(path); i++ {
		rendered.WriteString(path[i].String())
		rendered.WriteString(" -> ")
	}
	rendered.WriteString(ref.String())

	return WithDetail(ErrCycleDetected, "cycle", rendered.String())
}

// Walk returns an iterator yielding targets in dependency-first order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, label := range g.walkOrder {
			if !yield(g.targets[label]) {
				return
			}
		}
	}
}
