package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionKind identifies the variant of a transaction record.
// The set is closed: deposits, withdrawals, and transfer legs.
type TransactionKind string

const (
	// TxDeposit is money added to the account
	TxDeposit TransactionKind = "deposit"

	// TxWithdrawal is money removed from the account
	TxWithdrawal TransactionKind = "withdrawal"

	// TxTransfer is one leg of a two-account transfer; the record carries
	// the counterparty identifier
	TxTransfer TransactionKind = "transfer"
)

// Transaction is one immutable entry in an account's history. Records are
// created only as side effects of Deposit, Withdraw, and Transfer and are
// never modified or removed afterwards.
type Transaction struct {
	// ID uniquely identifies the record
	ID uuid.UUID `json:"id"`

	// Kind is the transaction variant
	Kind TransactionKind `json:"kind"`

	// Amount is the value moved by this record
	Amount float64 `json:"amount"`

	// Counterparty is the other account's identifier; set only for
	// transfer legs
	Counterparty string `json:"counterparty,omitempty"`

	// Time is when the record was created
	Time time.Time `json:"time"`
}

func newDeposit(amount float64) Transaction {
	return Transaction{ID: uuid.New(), Kind: TxDeposit, Amount: amount, Time: time.Now()}
}

func newWithdrawal(amount float64) Transaction {
	return Transaction{ID: uuid.New(), Kind: TxWithdrawal, Amount: amount, Time: time.Now()}
}

func newTransfer(amount float64, counterparty string) Transaction {
	return Transaction{ID: uuid.New(), Kind: TxTransfer, Amount: amount, Counterparty: counterparty, Time: time.Now()}
}

// String renders the record for human-readable listings, e.g.
// "Deposit(100.00)" or "Transfer(30.00, A2)".
func (t Transaction) String() string {
	switch t.Kind {
	case TxDeposit:
		return fmt.Sprintf("Deposit(%.2f)", t.Amount)
	case TxWithdrawal:
		return fmt.Sprintf("Withdrawal(%.2f)", t.Amount)
	case TxTransfer:
		return fmt.Sprintf("Transfer(%.2f, %s)", t.Amount, t.Counterparty)
	default:
		return fmt.Sprintf("Unknown(%.2f)", t.Amount)
	}
}
