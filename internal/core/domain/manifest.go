package domain

import "go.trai.ch/zerr"

// AspectDefinition binds a declared aspect to the configuration it runs
// under. A nil Configuration means the aspect inherits the configuration of
// the edge it is attached to.
type AspectDefinition struct {
	Descriptor    AspectDescriptor
	Configuration *BuildConfiguration
}

// Manifest is the fully resolved input of one analysis run: the target graph
// plus the configuration and aspect tables the engine derives edges from.
type Manifest struct {
	Graph *Graph

	// Configurations maps mnemonics to declared configurations.
	Configurations map[string]*BuildConfiguration

	// TargetConfiguration is the configuration deps edges are analyzed under.
	TargetConfiguration *BuildConfiguration

	// ToolConfiguration is the configuration exec tool edges transition to.
	ToolConfiguration *BuildConfiguration

	// Aspects maps aspect names to their definitions.
	Aspects map[string]AspectDefinition
}

// AspectsFor resolves a target's attached aspect names against the aspect
// table. Unknown names fail with ErrUnknownAspect.
func (m *Manifest) AspectsFor(target Target) ([]AspectDefinition, error) {
	if len(target.Aspects) == 0 {
		return nil, nil
	}
	defs := make([]AspectDefinition, 0, len(target.Aspects))
	for _, name := range target.Aspects {
		def, ok := m.Aspects[name.String()]
		if !ok {
			err := WithDetail(ErrUnknownAspect, "aspect", name.String())
			return nil, zerr.With(err, "label", target.Label.String())
		}
		defs = append(defs, def)
	}
	return defs, nil
}
