package ledger

import "errors"

// Domain errors returned by Account and Ledger operations.
// Every failure is a returned value; the ledger never panics on a
// business-rule violation.
var (
	// ErrAccountNotFound is returned when an operation references an
	// account identifier that is not present in the ledger
	ErrAccountNotFound = errors.New("ledger: account not found")

	// ErrAccountInactive is returned when a deposit or withdrawal is
	// attempted on a deactivated account
	ErrAccountInactive = errors.New("ledger: account is inactive")

	// ErrInsufficientFunds is returned when a withdrawal or transfer
	// amount exceeds the available balance
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrAccountExists is returned by CreateAccount under the Reject
	// duplicate policy when the identifier is already taken
	ErrAccountExists = errors.New("ledger: account already exists")

	// ErrInvalidAccountType is returned when an account type outside the
	// closed Checking/Savings/Credit set is supplied
	ErrInvalidAccountType = errors.New("ledger: invalid account type")

	// ErrSameAccount is returned when a transfer names the same account
	// as both source and destination
	ErrSameAccount = errors.New("ledger: source and destination are the same account")
)

// IsNotFound checks if the given error indicates a missing account.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsInactive checks if the given error indicates a deactivated account.
func IsInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

// IsInsufficientFunds checks if the given error indicates a balance shortfall.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// ClassifyError returns a string classification of the error for metrics
// labels. Unknown errors are grouped under "other".
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, ErrAccountInactive):
		return "inactive"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAccountExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidAccountType):
		return "invalid_type"
	case errors.Is(err, ErrSameAccount):
		return "same_account"
	default:
		return "other"
	}
}
