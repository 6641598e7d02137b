package ledger

import "strings"

// AccountType classifies an account. The set is closed and the type is
// fixed at creation time.
type AccountType string

const (
	// Checking is a transactional account
	Checking AccountType = "checking"

	// Savings is an interest-bearing account
	Savings AccountType = "savings"

	// Credit is a credit line account
	Credit AccountType = "credit"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Credit:
		return true
	}
	return false
}

// String returns the lowercase name of the account type.
func (t AccountType) String() string {
	return string(t)
}

// ParseAccountType converts a user-supplied string into an AccountType.
// Matching is case-insensitive. Returns ErrInvalidAccountType for anything
// outside the closed set.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidAccountType
	}
	return t, nil
}

// Account is one ledger entry: a balance, a fixed type, an append-only
// transaction history, and an active flag gating deposits and withdrawals.
//
// Account methods do not lock; the owning Ledger serializes all access
// under its own mutex.
type Account struct {
	balance      float64
	accountType  AccountType
	transactions []Transaction
	active       bool
}

// NewAccount creates an empty active account of the given type.
func NewAccount(accountType AccountType) *Account {
	return &Account{accountType: accountType, active: true}
}

// Deposit adds amount to the balance and appends a deposit record.
// Inactive accounts reject the deposit with ErrAccountInactive and are left
// unchanged. The amount itself is not validated: negative and non-finite
// values pass through, matching the legacy behavior.
func (a *Account) Deposit(amount float64) error {
	if !a.active {
		return ErrAccountInactive
	}
	a.balance += amount
	a.transactions = append(a.transactions, newDeposit(amount))
	return nil
}

// Withdraw subtracts amount from the balance and appends a withdrawal
// record. Fails with ErrAccountInactive on a deactivated account and with
// ErrInsufficientFunds when amount exceeds the balance; in both cases
// balance and history are untouched.
func (a *Account) Withdraw(amount float64) error {
	if !a.active {
		return ErrAccountInactive
	}
	if amount > a.balance {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	a.transactions = append(a.transactions, newWithdrawal(amount))
	return nil
}

// Balance returns the current balance.
func (a *Account) Balance() float64 {
	return a.balance
}

// Type returns the account's fixed type.
func (a *Account) Type() AccountType {
	return a.accountType
}

// Active reports whether deposits and withdrawals are currently allowed.
func (a *Account) Active() bool {
	return a.active
}

// Activate enables deposits and withdrawals. Idempotent.
func (a *Account) Activate() {
	a.active = true
}

// Deactivate disables deposits and withdrawals. Idempotent.
func (a *Account) Deactivate() {
	a.active = false
}

// Transactions returns a copy of the history in insertion order. The copy
// keeps callers from mutating internal state.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// appendTransfer records one leg of a transfer against this account.
// Called by Ledger.Transfer for both sides, regardless of whether the
// destination actually received funds.
func (a *Account) appendTransfer(amount float64, counterparty string) {
	a.transactions = append(a.transactions, newTransfer(amount, counterparty))
}
