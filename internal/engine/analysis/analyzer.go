// Package analysis implements the dependency edge analysis engine.
package analysis

import (
	"context"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/arbor/internal/core/domain"
	"go.trai.ch/arbor/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// memoCacheSize bounds the per-target derivation cache. Build graphs rarely
// exceed this within one process; older entries are evicted LRU-style.
const memoCacheSize = 4096

// Result summarizes one analysis run.
type Result struct {
	// Edges is the deduplicated set of dependency edges.
	Edges *domain.EdgeSet

	// TargetsAnalyzed is the number of targets whose edges were derived.
	TargetsAnalyzed int

	// EdgesCreated is the number of distinct edges in the set.
	EdgesCreated int

	// DuplicatesCollapsed is the number of derived edges that deduplicated
	// onto an already present edge.
	DuplicatesCollapsed int
}

// Analyzer derives the configured dependency edges of a target graph.
// It is safe for concurrent use.
type Analyzer struct {
	logger ports.Logger
	tracer ports.Tracer

	// memo caches derived edges per target, keyed by the fingerprint of the
	// (target, manifest configuration) pair.
	memo *lru.Cache[uint64, []domain.Dependency]
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(logger ports.Logger, tracer ports.Tracer) (*Analyzer, error) {
	memo, err := lru.New[uint64, []domain.Dependency](memoCacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create analysis cache")
	}
	return &Analyzer{
		logger: logger,
		tracer: tracer,
		memo:   memo,
	}, nil
}

// Analyze derives and deduplicates the dependency edges of the requested
// targets. With no explicit targets every target in the graph is analyzed.
func (a *Analyzer) Analyze(ctx context.Context, manifest *domain.Manifest, targetNames []string) (*Result, error) {
	if err := manifest.Graph.Validate(); err != nil {
		return nil, err
	}

	targets, err := resolveTargets(manifest.Graph, targetNames)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	planned := make([]string, len(targets))
	for i, target := range targets {
		planned[i] = target.Label.String()
	}
	a.tracer.EmitPlan(ctx, planned)

	var (
		mu         sync.Mutex
		edges      = domain.NewEdgeSet()
		duplicates int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			spanCtx, span := a.tracer.Start(ctx, "analyze "+target.Label.String())
			defer span.End()

			derived, err := a.edgesFor(spanCtx, target, manifest)
			if err != nil {
				span.RecordError(err)
				return err
			}
			span.SetAttribute("edges", len(derived))

			mu.Lock()
			for _, dep := range derived {
				if !edges.Add(dep) {
					duplicates++
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "failed to derive dependency edges")
	}

	result := &Result{
		Edges:               edges,
		TargetsAnalyzed:     len(targets),
		EdgesCreated:        edges.Len(),
		DuplicatesCollapsed: duplicates,
	}
	a.logger.Info("analysis complete",
		"targets", result.TargetsAnalyzed,
		"edges", result.EdgesCreated,
		"duplicates", result.DuplicatesCollapsed,
	)
	return result, nil
}

// edgesFor derives the edges of one target, memoized across runs.
func (a *Analyzer) edgesFor(_ context.Context, target domain.Target, manifest *domain.Manifest) ([]domain.Dependency, error) {
	key := memoKey(target, manifest)
	if cached, ok := a.memo.Get(key); ok {
		return cached, nil
	}

	derived, err := deriveEdges(target, manifest)
	if err != nil {
		return nil, err
	}

	a.memo.Add(key, derived)
	return derived, nil
}

// deriveEdges maps a target's attribute classes onto dependency shapes: deps
// inherit the target configuration and the attached aspects, exec tools
// transition to the tool configuration without aspects, data references stay
// unconfigured.
func deriveEdges(target domain.Target, manifest *domain.Manifest) ([]domain.Dependency, error) {
	derived := make([]domain.Dependency, 0, len(target.Deps)+len(target.ExecTools)+len(target.Data))

	aspectDefs, err := manifest.AspectsFor(target)
	if err != nil {
		return nil, err
	}

	for _, label := range target.Deps {
		dep, err := depsEdge(label, manifest.TargetConfiguration, aspectDefs)
		if err != nil {
			return nil, err
		}
		derived = append(derived, dep)
	}

	for _, label := range target.ExecTools {
		dep, err := domain.ConfiguredDependency(label, manifest.ToolConfiguration)
		if err != nil {
			return nil, err
		}
		derived = append(derived, dep)
	}

	for _, label := range target.Data {
		dep, err := domain.UnconfiguredDependency(label)
		if err != nil {
			return nil, err
		}
		derived = append(derived, dep)
	}

	return derived, nil
}

// depsEdge builds one deps edge. The per-aspect shape is only needed when
// some aspect overrides its configuration; otherwise the uniform shape
// carries the same information.
func depsEdge(label domain.Label, configuration *domain.BuildConfiguration, aspectDefs []domain.AspectDefinition) (domain.Dependency, error) {
	if len(aspectDefs) == 0 {
		return domain.ConfiguredDependency(label, configuration)
	}

	descriptors := make([]domain.AspectDescriptor, len(aspectDefs))
	overridden := false
	for i, def := range aspectDefs {
		descriptors[i] = def.Descriptor
		if def.Configuration != nil {
			overridden = true
		}
	}
	aspects := domain.NewAspectCollection(descriptors...)

	if !overridden {
		return domain.ConfiguredDependencyWithAspects(label, configuration, aspects)
	}

	aspectConfigs := make(map[domain.AspectDescriptor]*domain.BuildConfiguration, len(aspectDefs))
	for _, def := range aspectDefs {
		if def.Configuration != nil {
			aspectConfigs[def.Descriptor] = def.Configuration
		} else {
			aspectConfigs[def.Descriptor] = configuration
		}
	}
	return domain.AspectConfiguredDependency(label, configuration, aspects, aspectConfigs)
}

func resolveTargets(graph *domain.Graph, targetNames []string) ([]domain.Target, error) {
	if len(targetNames) == 0 {
		targets := make([]domain.Target, 0, graph.TargetCount())
		for target := range graph.Walk() {
			targets = append(targets, target)
		}
		return targets, nil
	}

	targets := make([]domain.Target, 0, len(targetNames))
	for _, name := range targetNames {
		label, err := domain.ParseLabel(name)
		if err != nil {
			return nil, err
		}
		target, ok := graph.GetTarget(label)
		if !ok {
			return nil, domain.WithDetail(domain.ErrTargetNotFound, "label", label.String())
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// memoKey fingerprints the target together with the configurations and
// aspect definitions in force, so a manifest change never serves stale edges.
func memoKey(target domain.Target, manifest *domain.Manifest) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(target.Label.String())
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(manifest.TargetConfiguration.String())
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(manifest.ToolConfiguration.String())
	for _, labels := range [][]domain.Label{target.Deps, target.ExecTools, target.Data} {
		_, _ = h.Write([]byte{0})
		for _, label := range labels {
			_, _ = h.WriteString(label.String())
			_, _ = h.Write([]byte{0})
		}
	}
	for _, name := range target.Aspects {
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(name.String())
		if def, ok := manifest.Aspects[name.String()]; ok {
			_, _ = h.Write([]byte{0})
			_, _ = h.WriteString(def.Descriptor.String())
			_, _ = h.Write([]byte{0})
			_, _ = h.WriteString(def.Configuration.String())
		}
	}
	return h.Sum64()
}
