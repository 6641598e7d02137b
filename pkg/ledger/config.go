package ledger

import (
	"fmt"

	"bankledger/pkg/logging"
	"bankledger/pkg/metrics"
)

// DuplicatePolicy controls what CreateAccount does when the identifier is
// already present in the ledger.
type DuplicatePolicy string

const (
	// DuplicateOverwrite replaces the existing account and discards its
	// history. This is the legacy behavior and the default.
	DuplicateOverwrite DuplicatePolicy = "overwrite"

	// DuplicateReject fails with ErrAccountExists and leaves the existing
	// account untouched.
	DuplicateReject DuplicatePolicy = "reject"
)

// Valid reports whether p is a known policy.
func (p DuplicatePolicy) Valid() bool {
	return p == DuplicateOverwrite || p == DuplicateReject
}

// Config holds construction options for a Ledger.
type Config struct {
	// Logger receives operational events (account lifecycle, dropped
	// deposits). Nil means no logging.
	Logger *logging.Logger

	// Metrics receives operation counts, latencies, and amounts.
	// Nil means no metrics.
	Metrics metrics.Collector

	// DuplicatePolicy selects overwrite or reject semantics for
	// CreateAccount on an existing identifier. Empty means overwrite.
	DuplicatePolicy DuplicatePolicy
}

// DefaultConfig returns a configuration with legacy overwrite semantics and
// no observability hooks.
func DefaultConfig() Config {
	return Config{
		Logger:          logging.NewNopLogger(),
		Metrics:         metrics.NoOpCollector{},
		DuplicatePolicy: DuplicateOverwrite,
	}
}

// Validate checks the configuration, filling in defaults for nil hooks.
func (c *Config) Validate() error {
	if c.Logger == nil {
		c.Logger = logging.NewNopLogger()
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NoOpCollector{}
	}
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = DuplicateOverwrite
	}
	if !c.DuplicatePolicy.Valid() {
		return fmt.Errorf("ledger: unknown duplicate policy %q", c.DuplicatePolicy)
	}
	return nil
}
