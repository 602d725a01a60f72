package domain

import (
	"encoding/binary"
	"fmt"
	"maps"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Dependency is one edge of the analysis graph: a referenced target label,
// the configuration it must be analyzed under, and the aspects that must
// additionally be evaluated on the edge together with the configuration each
// aspect runs under.
//
// A dependency takes one of three shapes:
//
//   - unconfigured: no configuration, no aspects (e.g. a source file edge);
//   - uniform: a configuration shared by the edge and every attached aspect;
//   - per-aspect: a configuration for the edge plus an explicit
//     aspect-to-configuration mapping.
//
// Values are immutable once constructed. Equality and the fingerprint are
// defined over the logical content only, so a uniform edge and a per-aspect
// edge whose mapping happens to resolve every aspect to the edge
// configuration are the same value.
type Dependency struct {
	label         Label
	configuration *BuildConfiguration
	aspects       AspectCollection

	// aspectConfigurations is nil for the unconfigured and uniform shapes.
	// In the per-aspect shape it maps each attached aspect to the
	// configuration it is evaluated under.
	aspectConfigurations map[AspectDescriptor]*BuildConfiguration
}

// UnconfiguredDependency creates an edge with no configuration. Such an edge
// can carry no aspects.
func UnconfiguredDependency(label Label) (Dependency, error) {
	if label.IsAbsent() {
		return Dependency{}, ErrMissingLabel
	}
	return Dependency{label: label, aspects: EmptyAspectCollection}, nil
}

// ConfiguredDependency creates an edge analyzed under the given configuration
// with no aspects attached.
func ConfiguredDependency(label Label, configuration *BuildConfiguration) (Dependency, error) {
	return ConfiguredDependencyWithAspects(label, configuration, EmptyAspectCollection)
}

// ConfiguredDependencyWithAspects creates an edge analyzed under the given
// configuration with the given aspects attached; every aspect is evaluated
// under the edge configuration. The configuration is required even when the
// aspect collection is empty.
func ConfiguredDependencyWithAspects(
	label Label,
	configuration *BuildConfiguration,
	aspects AspectCollection,
) (Dependency, error) {
	if label.IsAbsent() {
		return Dependency{}, ErrMissingLabel
	}
	if configuration == nil {
		return Dependency{}, WithDetail(ErrMissingConfiguration, "label", label.String())
	}
	return Dependency{
		label:         label,
		configuration: configuration,
		aspects:       aspects,
	}, nil
}

// AspectConfiguredDependency creates an edge analyzed under the given
// configuration whose aspects each run under an explicitly mapped
// configuration. The mapping may be empty but not nil; it is copied.
func AspectConfiguredDependency(
	label Label,
	configuration *BuildConfiguration,
	aspects AspectCollection,
	aspectConfigurations map[AspectDescriptor]*BuildConfiguration,
) (Dependency, error) {
	if label.IsAbsent() {
		return Dependency{}, ErrMissingLabel
	}
	if configuration == nil {
		return Dependency{}, WithDetail(ErrMissingConfiguration, "label", label.String())
	}
	if aspectConfigurations == nil {
		return Dependency{}, WithDetail(ErrMissingAspectConfiguration, "label", label.String())
	}
	return Dependency{
		label:                label,
		configuration:        configuration,
		aspects:              aspects,
		aspectConfigurations: maps.Clone(aspectConfigurations),
	}, nil
}

// Label returns the label of the referenced target.
func (d Dependency) Label() Label {
	return d.label
}

// Configuration returns the configuration the edge is analyzed under, or nil
// for an unconfigured edge.
func (d Dependency) Configuration() *BuildConfiguration {
	return d.configuration
}

// Aspects returns the aspects attached to the edge.
func (d Dependency) Aspects() AspectCollection {
	return d.aspects
}

// AspectConfiguration returns the configuration the given aspect is evaluated
// under. On a uniform edge this is always the edge configuration. On a
// per-aspect edge a descriptor without a mapping is a precondition violation
// on the caller side and fails with ErrAspectNotAttached.
func (d Dependency) AspectConfiguration(descriptor AspectDescriptor) (*BuildConfiguration, error) {
	if d.aspectConfigurations == nil {
		return d.configuration, nil
	}
	configuration, ok := d.aspectConfigurations[descriptor]
	if !ok {
		err := WithDetail(ErrAspectNotAttached, "aspect", descriptor.String())
		return nil, zerr.With(err, "label", d.label.String())
	}
	return configuration, nil
}

// resolvedAspectConfiguration is the per-aspect projection equality and the
// fingerprint are defined over: the mapped configuration on a per-aspect
// edge, the edge configuration otherwise. A member aspect missing from the
// mapping resolves to nil.
func (d Dependency) resolvedAspectConfiguration(descriptor AspectDescriptor) *BuildConfiguration {
	if d.aspectConfigurations == nil {
		return d.configuration
	}
	return d.aspectConfigurations[descriptor]
}

// Equal reports whether both edges denote the same logical
// (label, configuration, aspect set, per-aspect configuration) tuple,
// regardless of which constructor produced them.
func (d Dependency) Equal(other Dependency) bool {
	if d.label != other.label {
		return false
	}
	if !d.configuration.Equal(other.configuration) {
		return false
	}
	if !d.aspects.Equal(other.aspects) {
		return false
	}
	for aspect := range d.aspects.Members() {
		if !d.resolvedAspectConfiguration(aspect).Equal(other.resolvedAspectConfiguration(aspect)) {
			return false
		}
	}
	return true
}

// Fingerprint returns a hash over the same projection Equal compares:
// equal edges always share a fingerprint.
func (d Dependency) Fingerprint() uint64 {
	digest := xxhash.New()

	_, _ = digest.WriteString(d.label.String())
	_, _ = digest.Write([]byte{0})

	writeConfiguration(digest, d.configuration)

	for aspect := range d.aspects.Members() {
		_, _ = digest.WriteString(aspect.String())
		_, _ = digest.Write([]byte{0})
		writeConfiguration(digest, d.resolvedAspectConfiguration(aspect))
	}

	return digest.Sum64()
}

// String renders the edge for diagnostics, e.g. "//a:a (target-0a1b2c3d) [lint]".
func (d Dependency) String() string {
	if d.aspects.IsEmpty() {
		return fmt.Sprintf("%s (%s)", d.label, d.configuration)
	}
	return fmt.Sprintf("%s (%s) %s", d.label, d.configuration, d.aspects)
}

// Compare orders edges by label, configuration, then aspect content. It gives
// walks over deduplicated edge sets a stable order; only Equal edges compare
// as zero.
func (d Dependency) Compare(other Dependency) int {
	if c := d.label.Compare(other.label); c != 0 {
		return c
	}
	if c := compareConfigurations(d.configuration, other.configuration); c != 0 {
		return c
	}
	if c := d.aspects.Compare(other.aspects); c != 0 {
		return c
	}
	for aspect := range d.aspects.Members() {
		c := compareConfigurations(
			d.resolvedAspectConfiguration(aspect),
			other.resolvedAspectConfiguration(aspect),
		)
		if c != 0 {
			return c
		}
	}
	return 0
}

func writeConfiguration(digest *xxhash.Digest, configuration *BuildConfiguration) {
	var buf [9]byte
	if configuration != nil {
		buf[0] = 1
		binary.BigEndian.PutUint64(buf[1:], configuration.Checksum())
	}
	_, _ = digest.Write(buf[:])
}

func compareConfigurations(a, b *BuildConfiguration) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if a.Mnemonic() != b.Mnemonic() {
		if a.Mnemonic() < b.Mnemonic() {
			return -1
		}
		return 1
	}
	switch {
	case a.Checksum() < b.Checksum():
		return -1
	case a.Checksum() > b.Checksum():
		return 1
	}
	return 0
}
