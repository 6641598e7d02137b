package ledger

import "testing"

func TestAccount_Deposit(t *testing.T) {
	a := NewAccount(Checking)

	if err := a.Deposit(100); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if a.Balance() != 100 {
		t.Errorf("Expected balance 100, got %v", a.Balance())
	}

	txs := a.Transactions()
	if len(txs) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Kind != TxDeposit || txs[0].Amount != 100 {
		t.Errorf("Expected Deposit(100), got %s", txs[0])
	}
}

func TestAccount_DepositInactive(t *testing.T) {
	a := NewAccount(Savings)
	a.Deactivate()

	if err := a.Deposit(50); err != ErrAccountInactive {
		t.Errorf("Expected ErrAccountInactive, got %v", err)
	}
	if a.Balance() != 0 {
		t.Errorf("Expected balance unchanged at 0, got %v", a.Balance())
	}
	if len(a.Transactions()) != 0 {
		t.Errorf("Expected empty history, got %d records", len(a.Transactions()))
	}
}

func TestAccount_DepositNoAmountValidation(t *testing.T) {
	// Negative amounts pass through unchecked, matching legacy behavior.
	a := NewAccount(Checking)

	if err := a.Deposit(-25); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if a.Balance() != -25 {
		t.Errorf("Expected balance -25, got %v", a.Balance())
	}
}

func TestAccount_Withdraw(t *testing.T) {
	a := NewAccount(Checking)
	if err := a.Deposit(100); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	if err := a.Withdraw(40); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if a.Balance() != 60 {
		t.Errorf("Expected balance 60, got %v", a.Balance())
	}

	txs := a.Transactions()
	if len(txs) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txs))
	}
	if txs[1].Kind != TxWithdrawal || txs[1].Amount != 40 {
		t.Errorf("Expected Withdrawal(40), got %s", txs[1])
	}
}

func TestAccount_WithdrawExactBalance(t *testing.T) {
	a := NewAccount(Checking)
	if err := a.Deposit(100); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	// amount == balance succeeds; only amount > balance fails
	if err := a.Withdraw(100); err != nil {
		t.Fatalf("Withdraw of exact balance failed: %v", err)
	}
	if a.Balance() != 0 {
		t.Errorf("Expected balance 0, got %v", a.Balance())
	}
}

func TestAccount_WithdrawInsufficient(t *testing.T) {
	a := NewAccount(Checking)
	if err := a.Deposit(30); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	if err := a.Withdraw(31); err != ErrInsufficientFunds {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	if a.Balance() != 30 {
		t.Errorf("Expected balance unchanged at 30, got %v", a.Balance())
	}
	if len(a.Transactions()) != 1 {
		t.Errorf("Expected history unchanged with 1 record, got %d", len(a.Transactions()))
	}
}

func TestAccount_WithdrawInactive(t *testing.T) {
	a := NewAccount(Checking)
	if err := a.Deposit(100); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	a.Deactivate()

	if err := a.Withdraw(10); err != ErrAccountInactive {
		t.Errorf("Expected ErrAccountInactive, got %v", err)
	}
	if a.Balance() != 100 {
		t.Errorf("Expected balance unchanged at 100, got %v", a.Balance())
	}
}

func TestAccount_ActivateDeactivateIdempotent(t *testing.T) {
	a := NewAccount(Credit)

	a.Deactivate()
	a.Deactivate()
	if a.Active() {
		t.Error("Expected account inactive after repeated Deactivate")
	}

	a.Activate()
	a.Activate()
	if !a.Active() {
		t.Error("Expected account active after repeated Activate")
	}
}

func TestAccount_TransactionsCopy(t *testing.T) {
	a := NewAccount(Checking)
	if err := a.Deposit(10); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	txs := a.Transactions()
	txs[0].Amount = 9999

	if got := a.Transactions()[0].Amount; got != 10 {
		t.Errorf("History mutated through returned slice: got %v", got)
	}
}

func TestParseAccountType(t *testing.T) {
	cases := []struct {
		in      string
		want    AccountType
		wantErr bool
	}{
		{"checking", Checking, false},
		{"Savings", Savings, false},
		{"  CREDIT  ", Credit, false},
		{"", "", true},
		{"money-market", "", true},
	}

	for _, tc := range cases {
		got, err := ParseAccountType(tc.in)
		if tc.wantErr {
			if err != ErrInvalidAccountType {
				t.Errorf("ParseAccountType(%q): expected ErrInvalidAccountType, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAccountType(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAccountType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
