// Package metrics defines the collection interface for ledger operation
// metrics. Implementations can export metrics to various backends; see the
// memory and prometheus subpackages.
package metrics

import "time"

// Collector defines the interface for collecting ledger metrics.
// Implementations must be safe for concurrent use.
type Collector interface {
	// RecordOperation records one completed ledger operation together with
	// its result classification ("ok", "not_found", "inactive",
	// "insufficient_funds", ...) and duration.
	RecordOperation(op string, result string, duration time.Duration)

	// RecordAmount records the value moved by a successful deposit,
	// withdrawal, or transfer.
	RecordAmount(op string, amount float64)

	// RecordDroppedDeposit counts a deposit that was silently discarded
	// because the receiving account was inactive.
	RecordDroppedDeposit()

	// RecordAccounts records the current number of accounts in the ledger.
	RecordAccounts(count int)
}

// NoOpCollector is a no-op implementation of Collector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordOperation does nothing.
func (NoOpCollector) RecordOperation(op string, result string, duration time.Duration) {}

// RecordAmount does nothing.
func (NoOpCollector) RecordAmount(op string, amount float64) {}

// RecordDroppedDeposit does nothing.
func (NoOpCollector) RecordDroppedDeposit() {}

// RecordAccounts does nothing.
func (NoOpCollector) RecordAccounts(count int) {}
