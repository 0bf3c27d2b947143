package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	// Workers overrides the manifest's worker count when positive.
	Workers int
	// DryRun builds and prints the task graph without executing anything.
	DryRun bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers cannot be negative")
	}
	return &cfg, nil
}
