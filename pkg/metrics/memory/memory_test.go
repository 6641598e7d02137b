package memory

import (
	"testing"
	"time"
)

func TestCollector_RecordOperation(t *testing.T) {
	c := NewCollector()

	c.RecordOperation("deposit", "ok", time.Millisecond)
	c.RecordOperation("deposit", "ok", 2*time.Millisecond)
	c.RecordOperation("deposit", "not_found", time.Millisecond)
	c.RecordOperation("withdraw", "insufficient_funds", time.Millisecond)

	snap := c.Snapshot()

	dep := snap.Operations["deposit"]
	if dep.Calls != 3 {
		t.Errorf("Expected 3 deposit calls, got %d", dep.Calls)
	}
	if dep.Failures != 1 {
		t.Errorf("Expected 1 deposit failure, got %d", dep.Failures)
	}
	if dep.ResultCounts["ok"] != 2 || dep.ResultCounts["not_found"] != 1 {
		t.Errorf("Unexpected result counts: %v", dep.ResultCounts)
	}
	if len(dep.Latencies) != 3 {
		t.Errorf("Expected 3 latencies, got %d", len(dep.Latencies))
	}

	wd := snap.Operations["withdraw"]
	if wd.Failures != 1 {
		t.Errorf("Expected 1 withdraw failure, got %d", wd.Failures)
	}
}

func TestCollector_RecordAmount(t *testing.T) {
	c := NewCollector()

	c.RecordAmount("deposit", 100)
	c.RecordAmount("deposit", 25.5)

	snap := c.Snapshot()
	if got := snap.Operations["deposit"].AmountTotal; got != 125.5 {
		t.Errorf("Expected amount total 125.5, got %v", got)
	}
}

func TestCollector_DroppedDepositsAndAccounts(t *testing.T) {
	c := NewCollector()

	c.RecordDroppedDeposit()
	c.RecordDroppedDeposit()
	c.RecordAccounts(7)

	snap := c.Snapshot()
	if snap.DroppedDeposits != 2 {
		t.Errorf("Expected 2 dropped deposits, got %d", snap.DroppedDeposits)
	}
	if snap.Accounts != 7 {
		t.Errorf("Expected 7 accounts, got %d", snap.Accounts)
	}
}

func TestCollector_SnapshotIsCopy(t *testing.T) {
	c := NewCollector()
	c.RecordOperation("deposit", "ok", time.Millisecond)

	snap := c.Snapshot()
	snap.Operations["deposit"].ResultCounts["ok"] = 99

	if got := c.Snapshot().Operations["deposit"].ResultCounts["ok"]; got != 1 {
		t.Errorf("Snapshot shares state with collector: got %d", got)
	}
}
