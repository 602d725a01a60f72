package ports

import "go.trai.ch/arbor/internal/core/domain"

// ConfigLoader defines the interface for loading the analysis manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest at the given path and returns the resolved
	// target graph together with its configuration and aspect tables.
	Load(path string) (*domain.Manifest, error)
}
