package engine

import (
	"time"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/config"
)

// Options represents configuration options for the Engine.
type Options struct {
	SnapshotInterval    time.Duration
	SnapshotOffsetDelta int64
	// ReadBackoff is the pause after a failed read from the command topic.
	ReadBackoff time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval:    30 * time.Second,
		SnapshotOffsetDelta: 1000,
		ReadBackoff:         100 * time.Millisecond,
	}
}

// OptionsFromConfig overlays the configured snapshot policy on the defaults.
func OptionsFromConfig(cfg config.EngineConfig) *Options {
	opts := DefaultEngineOptions()
	if cfg.SnapshotInterval > 0 {
		opts.SnapshotInterval = cfg.SnapshotInterval
	}
	if cfg.SnapshotOffsetDelta > 0 {
		opts.SnapshotOffsetDelta = cfg.SnapshotOffsetDelta
	}
	return opts
}
