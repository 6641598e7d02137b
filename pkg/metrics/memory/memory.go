// Package memory provides an in-memory metrics collector, used for tests
// and for serving JSON metric snapshots without an external backend.
package memory

import (
	"sync"
	"time"
)

// Collector implements metrics.Collector with plain counters held in
// process memory.
type Collector struct {
	mu sync.RWMutex

	// Per-operation metrics
	operations map[string]*OperationMetrics

	// Ledger-level metrics
	droppedDeposits int64
	accounts        int
}

// OperationMetrics holds metrics for a single ledger operation.
type OperationMetrics struct {
	// Calls counts all invocations of the operation
	Calls int64

	// Failures counts invocations that returned a domain error
	Failures int64

	// ResultCounts breaks calls down by result classification
	ResultCounts map[string]int64

	// AmountTotal sums the values moved by successful mutations
	AmountTotal float64

	// Latencies holds per-call durations (simple stats)
	Latencies []time.Duration
}

// NewCollector creates a new in-memory metrics collector.
func NewCollector() *Collector {
	return &Collector{
		operations: make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns the OperationMetrics for op, creating it if needed.
// Callers must hold mu.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	if _, exists := c.operations[op]; !exists {
		c.operations[op] = &OperationMetrics{
			ResultCounts: make(map[string]int64),
		}
	}
	return c.operations[op]
}

// RecordOperation records one completed ledger operation.
func (c *Collector) RecordOperation(op string, result string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	om := c.getOrCreate(op)
	om.Calls++
	if result != "ok" {
		om.Failures++
	}
	om.ResultCounts[result]++
	om.Latencies = append(om.Latencies, duration)
}

// RecordAmount records the value moved by a successful mutation.
func (c *Collector) RecordAmount(op string, amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.getOrCreate(op).AmountTotal += amount
}

// RecordDroppedDeposit counts a deposit discarded by an inactive account.
func (c *Collector) RecordDroppedDeposit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.droppedDeposits++
}

// RecordAccounts records the current account count.
func (c *Collector) RecordAccounts(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts = count
}

// Snapshot is a copy of the collector's state at one point in time.
type Snapshot struct {
	Operations      map[string]OperationMetrics `json:"operations"`
	DroppedDeposits int64                       `json:"dropped_deposits"`
	Accounts        int                         `json:"accounts"`
}

// Snapshot returns a copy of the current metrics state.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := Snapshot{
		Operations:      make(map[string]OperationMetrics),
		DroppedDeposits: c.droppedDeposits,
		Accounts:        c.accounts,
	}

	for op, om := range c.operations {
		cp := *om
		cp.ResultCounts = make(map[string]int64, len(om.ResultCounts))
		for k, v := range om.ResultCounts {
			cp.ResultCounts[k] = v
		}
		cp.Latencies = append([]time.Duration(nil), om.Latencies...)
		snapshot.Operations[op] = cp
	}

	return snapshot
}

// SnapshotJSON exposes Snapshot behind an untyped return so callers can
// discover it with a small interface assertion.
func (c *Collector) SnapshotJSON() interface{} {
	return c.Snapshot()
}
