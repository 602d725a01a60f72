// Package app implements the application layer for arbor.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/arbor/internal/core/domain"
	"go.trai.ch/arbor/internal/core/ports"
	"go.trai.ch/arbor/internal/engine/analysis"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	analyzer     *analysis.Analyzer
	logger       ports.Logger
	out          io.Writer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, analyzer *analysis.Analyzer, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		analyzer:     analyzer,
		logger:       log,
		out:          os.Stdout,
	}
}

// WithOutput redirects edge listing output. This is primarily used for
// testing.
func (a *App) WithOutput(out io.Writer) *App {
	a.out = out
	return a
}

// AnalyzeOptions configuration for the Analyze method.
type AnalyzeOptions struct {
	ManifestPath string
	ListEdges    bool
}

// Analyze loads the manifest, derives the dependency edges of the requested
// targets and prints a summary. With ListEdges set every distinct edge is
// written to the output in deterministic order.
func (a *App) Analyze(ctx context.Context, targetNames []string, opts AnalyzeOptions) error {
	manifest, err := a.configLoader.Load(opts.ManifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	result, err := a.analyzer.Analyze(ctx, manifest, targetNames)
	if err != nil {
		return errors.Join(domain.ErrAnalysisFailed, err)
	}

	if opts.ListEdges {
		for dep := range result.Edges.Walk() {
			if _, err := fmt.Fprintln(a.out, dep.String()); err != nil {
				return zerr.Wrap(err, "failed to write edge listing")
			}
		}
	}

	_, err = fmt.Fprintf(a.out, "analyzed %d targets: %d edges (%d duplicates collapsed)\n",
		result.TargetsAnalyzed, result.EdgesCreated, result.DuplicatesCollapsed)
	if err != nil {
		return zerr.Wrap(err, "failed to write summary")
	}
	return nil
}
