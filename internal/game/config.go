package game

import "time"

// WorldConfig holds the tunable parameters NewGame uses to size and
// configure the registry and scheduler. Loading this from disk is out of
// scope (see SPEC_FULL.md Non-goals) — callers that need persisted
// settings populate a WorldConfig themselves and pass it to NewGameWithConfig.
type WorldConfig struct {
	MaxEntities     int
	EntityPoolSize  int
	ThreadPoolSize  int
	GCInterval      time.Duration
	EnableMetrics   bool
	EnableDebugMode bool
}

// DefaultWorldConfig returns sane defaults for a single-player arcade game.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		MaxEntities:     10000,
		EntityPoolSize:  1000,
		ThreadPoolSize:  4,
		GCInterval:      30 * time.Second,
		EnableMetrics:   true,
		EnableDebugMode: false,
	}
}
