package config

// Manifestfile represents the structure of the arbor.yaml manifest.
type Manifestfile struct {
	Version        string                      `yaml:"version"`
	Configurations map[string]ConfigurationDTO `yaml:"configurations"`
	Aspects        map[string]AspectDTO        `yaml:"aspects"`
	Targets        map[string]TargetDTO        `yaml:"targets"`
}

// ConfigurationDTO declares one named build configuration.
type ConfigurationDTO struct {
	Options map[string]string `yaml:"options"`

	// ForTools marks the configuration exec tool edges transition to.
	ForTools bool `yaml:"forTools"`

	// Default marks the configuration deps edges are analyzed under.
	Default bool `yaml:"default"`
}

// AspectDTO declares one aspect that targets can attach to their deps edges.
type AspectDTO struct {
	Parameters map[string]string `yaml:"parameters"`

	// Configuration names the configuration the aspect runs under. Empty
	// means the aspect inherits the configuration of its edge.
	Configuration string `yaml:"configuration"`
}

// TargetDTO declares one build target, keyed by its label.
type TargetDTO struct {
	Kind      string   `yaml:"kind"`
	Deps      []string `yaml:"deps"`
	ExecTools []string `yaml:"execTools"`
	Data      []string `yaml:"data"`
	Aspects   []string `yaml:"aspects"`
}
