// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/arbor/internal/adapters/config"
	_ "go.trai.ch/arbor/internal/adapters/logger"
	_ "go.trai.ch/arbor/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/arbor/internal/app"
	_ "go.trai.ch/arbor/internal/engine/analysis"
)
