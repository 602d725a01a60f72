package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/arbor/internal/core/domain"
)

func hostConfig() *domain.BuildConfiguration {
	return domain.NewConfiguration("host", map[string]string{"cpu": "k8", "compilation_mode": "opt"})
}

func targetConfig() *domain.BuildConfiguration {
	return domain.NewConfiguration("target", map[string]string{"cpu": "arm64", "compilation_mode": "dbg"})
}

func TestUnconfiguredDependency_BasicAccessors(t *testing.T) {
	dep, err := domain.UnconfiguredDependency(domain.MustParseLabel("//a"))
	require.NoError(t, err)

	assert.Equal(t, domain.MustParseLabel("//a"), dep.Label())
	assert.Nil(t, dep.Configuration())
	assert.True(t, dep.Aspects().IsEmpty())
}

func TestUnconfiguredDependency_RejectsAbsentLabel(t *testing.T) {
	_, err := domain.UnconfiguredDependency(domain.Label{})
	require.ErrorIs(t, err, domain.ErrMissingLabel)
}

func TestConfiguredDependency_BasicAccessors(t *testing.T) {
	target := targetConfig()
	dep, err := domain.ConfiguredDependency(domain.MustParseLabel("//a"), target)
	require.NoError(t, err)

	assert.Equal(t, domain.MustParseLabel("//a"), dep.Label())
	assert.True(t, target.Equal(dep.Configuration()))
	assert.True(t, dep.Aspects().IsEmpty())
}

func TestConfiguredDependency_RejectsAbsentValues(t *testing.T) {
	_, err := domain.ConfiguredDependency(domain.Label{}, targetConfig())
	require.ErrorIs(t, err, domain.ErrMissingLabel)

	_, err = domain.ConfiguredDependency(domain.MustParseLabel("//a"), nil)
	require.ErrorIs(t, err, domain.ErrMissingConfiguration)
}

func TestConfiguredDependencyWithAspects_BasicAccessors(t *testing.T) {
	simple := domain.NewAspectDescriptor("simple")
	attribute := domain.NewAspectDescriptor("attribute")
	twoAspects := domain.NewAspectCollection(simple, attribute)
	target := targetConfig()

	dep, err := domain.ConfiguredDependencyWithAspects(domain.MustParseLabel("//a"), target, twoAspects)
	require.NoError(t, err)

	assert.Equal(t, domain.MustParseLabel("//a"), dep.Label())
	assert.True(t, target.Equal(dep.Configuration()))
	assert.True(t, twoAspects.Equal(dep.Aspects()))

	// On a uniform edge every aspect runs under the edge configuration.
	for _, aspect := range []domain.AspectDescriptor{simple, attribute} {
		cfg, err := dep.AspectConfiguration(aspect)
		require.NoError(t, err)
		assert.True(t, target.Equal(cfg))
	}
}

func TestConfiguredDependencyWithAspects_RejectsNilConfiguration(t *testing.T) {
	twoAspects := domain.NewAspectCollection(
		domain.NewAspectDescriptor("simple"),
		domain.NewAspectDescriptor("attribute"),
	)

	// The configuration stays required with aspects attached...
	_, err := domain.ConfiguredDependencyWithAspects(domain.MustParseLabel("//a"), nil, twoAspects)
	require.ErrorIs(t, err, domain.ErrMissingConfiguration)

	// ...and with the empty collection, where the call otherwise looks like
	// the two-argument form.
	_, err = domain.ConfiguredDependencyWithAspects(domain.MustParseLabel("//a"), nil, domain.EmptyAspectCollection)
	require.ErrorIs(t, err, domain.ErrMissingConfiguration)
}

func TestConfiguredDependencyWithAspects_AllowsEmptyAspectSet(t *testing.T) {
	dep, err := domain.ConfiguredDependencyWithAspects(
		domain.MustParseLabel("//a"), targetConfig(), domain.EmptyAspectCollection)
	require.NoError(t, err)
	assert.True(t, dep.Aspects().IsEmpty())
}

func TestAspectConfiguredDependency_BasicAccessors(t *testing.T) {
	simple := domain.NewAspectDescriptor("simple")
	attribute := domain.NewAspectDescriptor("attribute")
	aspects := domain.NewAspectCollection(simple, attribute)
	host := hostConfig()
	target := targetConfig()

	dep, err := domain.AspectConfiguredDependency(
		domain.MustParseLabel("//a"), target, aspects,
		map[domain.AspectDescriptor]*domain.BuildConfiguration{
			simple:    target,
			attribute: host,
		})
	require.NoError(t, err)

	assert.Equal(t, domain.MustParseLabel("//a"), dep.Label())
	assert.True(t, target.Equal(dep.Configuration()))
	assert.True(t, aspects.Equal(dep.Aspects()))

	simpleCfg, err := dep.AspectConfiguration(simple)
	require.NoError(t, err)
	assert.True(t, target.Equal(simpleCfg))

	attributeCfg, err := dep.AspectConfiguration(attribute)
	require.NoError(t, err)
	assert.True(t, host.Equal(attributeCfg))
}

func TestAspectConfiguredDependency_RejectsAbsentValues(t *testing.T) {
	aspects := domain.NewAspectCollection(domain.NewAspectDescriptor("simple"))
	emptyMap := map[domain.AspectDescriptor]*domain.BuildConfiguration{}

	_, err := domain.AspectConfiguredDependency(domain.Label{}, targetConfig(), aspects, emptyMap)
	require.ErrorIs(t, err, domain.ErrMissingLabel)

	_, err = domain.AspectConfiguredDependency(domain.MustParseLabel("//a"), nil, aspects, emptyMap)
	require.ErrorIs(t, err, domain.ErrMissingConfiguration)

	_, err = domain.AspectConfiguredDependency(domain.MustParseLabel("//a"), targetConfig(), aspects, nil)
	require.ErrorIs(t, err, domain.ErrMissingAspectConfiguration)
}

func TestAspectConfiguredDependency_AllowsEmptyAspectMap(t *testing.T) {
	dep, err := domain.AspectConfiguredDependency(
		domain.MustParseLabel("//a"), targetConfig(), domain.EmptyAspectCollection,
		map[domain.AspectDescriptor]*domain.BuildConfiguration{})
	require.NoError(t, err)
	assert.True(t, dep.Aspects().IsEmpty())
}

func TestAspectConfiguration_UnmappedDescriptorFails(t *testing.T) {
	simple := domain.NewAspectDescriptor("simple")
	errAspect := domain.NewAspectDescriptor("error")
	target := targetConfig()

	dep, err := domain.AspectConfiguredDependency(
		domain.MustParseLabel("//a"), target,
		domain.NewAspectCollection(simple),
		map[domain.AspectDescriptor]*domain.BuildConfiguration{simple: target})
	require.NoError(t, err)

	_, err = dep.AspectConfiguration(errAspect)
	require.ErrorIs(t, err, domain.ErrAspectNotAttached)
}

// mustDep builds dependencies for the equality partition below; construction
// failures are test bugs.
func mustDep(dep domain.Dependency, err error) domain.Dependency {
	if err != nil {
		panic(err)
	}
	return dep
}

// TestDependency_EqualityPartition constructs the same logical edge via every
// applicable constructor and asserts mutual equality and fingerprint
// agreement within a group, and inequality across groups that differ in
// exactly one dimension (label, configuration, aspect set).
func TestDependency_EqualityPartition(t *testing.T) {
	a := domain.MustParseLabel("//a")
	aExplicit := domain.MustParseLabel("//a:a")
	b := domain.MustParseLabel("//b")

	host := hostConfig()
	target := targetConfig()

	simple := domain.NewAspectDescriptor("simple")
	attribute := domain.NewAspectDescriptor("attribute")
	errAspect := domain.NewAspectDescriptor("error")

	twoAspects := domain.NewAspectCollection(simple, attribute)
	inverseAspects := domain.NewAspectCollection(attribute, simple)
	differentAspects := domain.NewAspectCollection(attribute, errAspect)
	noAspects := domain.EmptyAspectCollection

	twoAspectsHostMap := map[domain.AspectDescriptor]*domain.BuildConfiguration{
		simple: host, attribute: host,
	}
	twoAspectsTargetMap := map[domain.AspectDescriptor]*domain.BuildConfiguration{
		simple: target, attribute: target,
	}
	differentAspectsHostMap := map[domain.AspectDescriptor]*domain.BuildConfiguration{
		attribute: host, errAspect: host,
	}
	differentAspectsTargetMap := map[domain.AspectDescriptor]*domain.BuildConfiguration{
		attribute: target, errAspect: target,
	}
	noAspectsMap := map[domain.AspectDescriptor]*domain.BuildConfiguration{}

	groups := []struct {
		name string
		deps []domain.Dependency
	}{
		{
			name: "a host twoAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(a, host, twoAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(aExplicit, host, twoAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(a, host, inverseAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(aExplicit, host, inverseAspects)),
				mustDep(domain.AspectConfiguredDependency(a, host, twoAspects, twoAspectsHostMap)),
				mustDep(domain.AspectConfiguredDependency(aExplicit, host, twoAspects, twoAspectsHostMap)),
			},
		},
		{
			name: "b host twoAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(b, host, twoAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(b, host, inverseAspects)),
				mustDep(domain.AspectConfiguredDependency(b, host, twoAspects, twoAspectsHostMap)),
			},
		},
		{
			name: "a target twoAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(a, target, twoAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(aExplicit, target, twoAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(a, target, inverseAspects)),
				mustDep(domain.AspectConfiguredDependency(a, target, twoAspects, twoAspectsTargetMap)),
			},
		},
		{
			name: "a unconfigured",
			deps: []domain.Dependency{
				mustDep(domain.UnconfiguredDependency(a)),
				mustDep(domain.UnconfiguredDependency(aExplicit)),
			},
		},
		{
			name: "a host differentAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(a, host, differentAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(aExplicit, host, differentAspects)),
				mustDep(domain.AspectConfiguredDependency(a, host, differentAspects, differentAspectsHostMap)),
			},
		},
		{
			name: "b target twoAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(b, target, twoAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(b, target, inverseAspects)),
				mustDep(domain.AspectConfiguredDependency(b, target, twoAspects, twoAspectsTargetMap)),
			},
		},
		{
			name: "b unconfigured",
			deps: []domain.Dependency{
				mustDep(domain.UnconfiguredDependency(b)),
			},
		},
		{
			name: "b host differentAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(b, host, differentAspects)),
				mustDep(domain.AspectConfiguredDependency(b, host, differentAspects, differentAspectsHostMap)),
			},
		},
		{
			name: "a target differentAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(a, target, differentAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(aExplicit, target, differentAspects)),
				mustDep(domain.AspectConfiguredDependency(a, target, differentAspects, differentAspectsTargetMap)),
			},
		},
		{
			name: "b target differentAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependencyWithAspects(b, target, differentAspects)),
				mustDep(domain.AspectConfiguredDependency(b, target, differentAspects, differentAspectsTargetMap)),
			},
		},
		{
			name: "a host noAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependency(a, host)),
				mustDep(domain.ConfiguredDependency(aExplicit, host)),
				mustDep(domain.ConfiguredDependencyWithAspects(a, host, noAspects)),
				mustDep(domain.ConfiguredDependencyWithAspects(aExplicit, host, noAspects)),
				mustDep(domain.AspectConfiguredDependency(a, host, noAspects, noAspectsMap)),
				mustDep(domain.AspectConfiguredDependency(aExplicit, host, noAspects, noAspectsMap)),
			},
		},
		{
			name: "b host noAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependency(b, host)),
				mustDep(domain.ConfiguredDependencyWithAspects(b, host, noAspects)),
				mustDep(domain.AspectConfiguredDependency(b, host, noAspects, noAspectsMap)),
			},
		},
		{
			name: "a target noAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependency(a, target)),
				mustDep(domain.ConfiguredDependency(aExplicit, target)),
				mustDep(domain.ConfiguredDependencyWithAspects(a, target, noAspects)),
				mustDep(domain.AspectConfiguredDependency(a, target, noAspects, noAspectsMap)),
			},
		},
		{
			name: "b target noAspects",
			deps: []domain.Dependency{
				mustDep(domain.ConfiguredDependency(b, target)),
				mustDep(domain.ConfiguredDependencyWithAspects(b, target, noAspects)),
				mustDep(domain.AspectConfiguredDependency(b, target, noAspects, noAspectsMap)),
			},
		},
	}

	for i, group := range groups {
		t.Run(group.name, func(t *testing.T) {
			for j, dep := range group.deps {
				// Reflexivity and intra-group equality, both directions.
				for k, other := range group.deps {
					assert.True(t, dep.Equal(other), "deps %d and %d should be equal", j, k)
					assert.True(t, other.Equal(dep), "deps %d and %d should be equal (symmetric)", k, j)
					assert.Equal(t, dep.Fingerprint(), other.Fingerprint(),
						"equal deps %d and %d must share a fingerprint", j, k)
				}
				// Inequality against every member of every other group.
				for o, otherGroup := range groups {
					if o == i {
						continue
					}
					for _, other := range otherGroup.deps {
						assert.False(t, dep.Equal(other),
							"%s should not equal member of %s", dep, groups[o].name)
						assert.False(t, other.Equal(dep),
							"member of %s should not equal %s", groups[o].name, dep)
					}
				}
			}
		})
	}
}

// TestDependency_UniformAndPerAspectShapesCollapse checks that the uniform
// and the per-aspect shapes are the same value when the mapping assigns
// every aspect the edge configuration.
func TestDependency_UniformAndPerAspectShapesCollapse(t *testing.T) {
	label := domain.MustParseLabel("//lib:core")
	cfg := targetConfig()
	simple := domain.NewAspectDescriptor("simple")
	attribute := domain.NewAspectDescriptor("attribute")
	aspects := domain.NewAspectCollection(simple, attribute)

	uniform, err := domain.ConfiguredDependencyWithAspects(label, cfg, aspects)
	require.NoError(t, err)

	explicit, err := domain.AspectConfiguredDependency(label, cfg, aspects,
		map[domain.AspectDescriptor]*domain.BuildConfiguration{
			simple:    cfg,
			attribute: cfg,
		})
	require.NoError(t, err)

	assert.True(t, uniform.Equal(explicit))
	assert.True(t, explicit.Equal(uniform))
	assert.Equal(t, uniform.Fingerprint(), explicit.Fingerprint())
}

// TestDependency_ConfigurationPresencePartitions checks that an unconfigured
// edge never equals a configured one for the same label.
func TestDependency_ConfigurationPresencePartitions(t *testing.T) {
	label := domain.MustParseLabel("//a")

	unconfigured, err := domain.UnconfiguredDependency(label)
	require.NoError(t, err)

	configured, err := domain.ConfiguredDependency(label, targetConfig())
	require.NoError(t, err)

	assert.False(t, unconfigured.Equal(configured))
	assert.False(t, configured.Equal(unconfigured))
}

func TestDependency_EqualValueConfigurations(t *testing.T) {
	// Distinct configuration instances with the same content are the same
	// configuration as far as the edge is concerned.
	label := domain.MustParseLabel("//a")
	first, err := domain.ConfiguredDependency(label, targetConfig())
	require.NoError(t, err)
	second, err := domain.ConfiguredDependency(label, targetConfig())
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestDependency_CompareByAspectContent(t *testing.T) {
	target := targetConfig()
	joined := mustDep(domain.ConfiguredDependencyWithAspects(
		domain.MustParseLabel("//a"),
		target,
		domain.NewAspectCollection(domain.NewAspectDescriptor("coverage, lint")),
	))
	split := mustDep(domain.ConfiguredDependencyWithAspects(
		domain.MustParseLabel("//a"),
		target,
		domain.NewAspectCollection(
			domain.NewAspectDescriptor("coverage"),
			domain.NewAspectDescriptor("lint"),
		),
	))

	// The two edges render identically but carry different aspect sets.
	assert.Equal(t, joined.String(), split.String())
	assert.NotZero(t, joined.Compare(split))
	assert.Zero(t, joined.Compare(joined))
	assert.Equal(t, -split.Compare(joined), joined.Compare(split))
}
