// Package config provides the manifest loader for arbor.
package config

import (
	"errors"
	"os"
	"slices"
	"strings"

	"go.trai.ch/arbor/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultManifestName is the manifest filename looked up when none is given.
const DefaultManifestName = "arbor.yaml"

// Loader implements ports.ConfigLoader using a YAML manifest file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest at the given path and resolves it into the domain
// model: parsed labels, configuration and aspect tables, and the validated
// reference structure between them.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var file Manifestfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	return resolve(&file)
}

func resolve(file *Manifestfile) (*domain.Manifest, error) {
	manifest := &domain.Manifest{
		Graph:          domain.NewGraph(),
		Configurations: make(map[string]*domain.BuildConfiguration, len(file.Configurations)),
		Aspects:        make(map[string]domain.AspectDefinition, len(file.Aspects)),
	}

	for mnemonic, dto := range file.Configurations {
		cfg := domain.NewConfiguration(mnemonic, dto.Options)
		manifest.Configurations[mnemonic] = cfg
		if dto.Default {
			if manifest.TargetConfiguration != nil {
				return nil, duplicateMarkerError("default", manifest.TargetConfiguration.Mnemonic(), mnemonic)
			}
			manifest.TargetConfiguration = cfg
		}
		if dto.ForTools {
			if manifest.ToolConfiguration != nil {
				return nil, duplicateMarkerError("forTools", manifest.ToolConfiguration.Mnemonic(), mnemonic)
			}
			manifest.ToolConfiguration = cfg
		}
	}
	if manifest.TargetConfiguration == nil {
		return nil, domain.WithDetail(domain.ErrUnknownConfiguration, "missing", "default configuration")
	}
	if manifest.ToolConfiguration == nil {
		// Without a tool transition, exec tools analyze like ordinary deps.
		manifest.ToolConfiguration = manifest.TargetConfiguration
	}

	for name, dto := range file.Aspects {
		def := domain.AspectDefinition{
			Descriptor: domain.NewAspectDescriptorWithParameters(name, dto.Parameters),
		}
		if dto.Configuration != "" {
			cfg, ok := manifest.Configurations[dto.Configuration]
			if !ok {
				err := domain.WithDetail(domain.ErrUnknownConfiguration, "configuration", dto.Configuration)
				return nil, zerr.With(err, "aspect", name)
			}
			def.Configuration = cfg
		}
		manifest.Aspects[name] = def
	}

	for labelStr, dto := range file.Targets {
		target, err := resolveTarget(labelStr, dto, manifest)
		if err != nil {
			return nil, err
		}
		if err := manifest.Graph.AddTarget(target); err != nil {
			return nil, err
		}
	}

	return manifest, nil
}

// duplicateMarkerError reports two configurations claiming the same exclusive
// marker. The pair is sorted so the message does not depend on map order.
func duplicateMarkerError(marker, first, second string) error {
	pair := []string{first, second}
	slices.Sort(pair)
	err := domain.WithDetail(domain.ErrUnknownConfiguration, "duplicate", marker)
	return zerr.With(err, "configurations", strings.Join(pair, ", "))
}

func resolveTarget(labelStr string, dto TargetDTO, manifest *domain.Manifest) (*domain.Target, error) {
	label, err := domain.ParseLabel(labelStr)
	if err != nil {
		return nil, err
	}

	target := &domain.Target{
		Label: label,
		Kind:  domain.NewInternedString(dto.Kind),
	}

	if target.Deps, err = parseLabels(dto.Deps); err != nil {
		return nil, zerr.With(err, "target", labelStr)
	}
	if target.ExecTools, err = parseLabels(dto.ExecTools); err != nil {
		return nil, zerr.With(err, "target", labelStr)
	}
	if target.Data, err = parseLabels(dto.Data); err != nil {
		return nil, zerr.With(err, "target", labelStr)
	}

	for _, name := range dto.Aspects {
		if _, ok := manifest.Aspects[name]; !ok {
			err := domain.WithDetail(domain.ErrUnknownAspect, "aspect", name)
			return nil, zerr.With(err, "target", labelStr)
		}
		target.Aspects = append(target.Aspects, domain.NewInternedString(name))
	}

	return target, nil
}

func parseLabels(strs []string) ([]domain.Label, error) {
	if len(strs) == 0 {
		return nil, nil
	}
	labels := make([]domain.Label, len(strs))
	for i, s := range strs {
		label, err := domain.ParseLabel(s)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}
