package domain

// Target is one build target as declared in the manifest. Dependency labels
// are split by attribute class because each class configures its edges
// differently: deps inherit the target configuration and aspect propagation,
// exec tools transition to the tool configuration, data references stay
// unconfigured.
type Target struct {
	Label Label
	Kind  InternedString

	Deps      []Label
	ExecTools []Label
	Data      []Label

	// Aspects holds the names of the aspects the target propagates to its
	// deps edges, resolved against the manifest's aspect table.
	Aspects []InternedString
}
