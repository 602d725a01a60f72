package analysis

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/arbor/internal/adapters/logger"    //nolint:depguard // Wired in engine node
	"go.trai.ch/arbor/internal/adapters/telemetry" //nolint:depguard // Wired in engine node
	"go.trai.ch/arbor/internal/core/ports"
)

// NodeID is the unique identifier for the analyzer Graft node.
const NodeID graft.ID = "engine.analyzer"

func init() {
	graft.Register(graft.Node[*Analyzer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Analyzer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewAnalyzer(log, tracer)
		},
	})
}
