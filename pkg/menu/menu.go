// Package menu drives the ledger through an interactive text menu. It owns
// all prompt/parse I/O so the core stays free of it; each loop iteration
// collects one intent plus its arguments, calls exactly one ledger
// operation, and prints the result.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bankledger/pkg/ledger"
	"bankledger/pkg/logging"
)

// Menu reads commands from in and writes results to out. It holds no state
// of its own beyond the scanner position.
type Menu struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
	logger *logging.Logger
}

// New creates a menu over the given ledger. Pass os.Stdin and os.Stdout for
// interactive use; any reader/writer pair works for tests.
func New(l *ledger.Ledger, in io.Reader, out io.Writer, logger *logging.Logger) *Menu {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Menu{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.Named("menu"),
	}
}

// Run loops until the user picks Exit or input ends. Malformed input never
// aborts the loop; the offending step prints a message and the menu shows
// again.
func (m *Menu) Run() error {
	for {
		m.printMenu()

		choice, ok := m.promptInt("Enter your choice: ")
		if !ok {
			if m.in.Err() != nil {
				return m.in.Err()
			}
			return nil // EOF
		}

		switch choice {
		case 1:
			m.createAccount()
		case 2:
			m.deposit()
		case 3:
			m.withdraw()
		case 4:
			m.checkBalance()
		case 5:
			m.transfer()
		case 6:
			m.accountType()
		case 7:
			m.listTransactions()
		case 8:
			m.activate()
		case 9:
			m.deactivate()
		case 10:
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice!")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "1. Create Account")
	fmt.Fprintln(m.out, "2. Deposit")
	fmt.Fprintln(m.out, "3. Withdraw")
	fmt.Fprintln(m.out, "4. Check Balance")
	fmt.Fprintln(m.out, "5. Transfer")
	fmt.Fprintln(m.out, "6. Get Account Type")
	fmt.Fprintln(m.out, "7. Get Transactions")
	fmt.Fprintln(m.out, "8. Activate Account")
	fmt.Fprintln(m.out, "9. Deactivate Account")
	fmt.Fprintln(m.out, "10. Exit")
}

// prompt reads one trimmed line; ok is false on EOF.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptInt reads a line and parses it as an integer. A parse failure
// returns -1 with ok true, which falls through to "Invalid choice!".
func (m *Menu) promptInt(label string) (int, bool) {
	line, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return -1, true
	}
	return n, true
}

// promptFloat reads a line and parses it as an amount; prints a message and
// reports failure when the value does not parse.
func (m *Menu) promptFloat(label string) (float64, bool) {
	line, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid amount!")
		return 0, false
	}
	return v, true
}

// promptAccountID reads a non-empty account identifier.
func (m *Menu) promptAccountID(label string) (string, bool) {
	id, ok := m.prompt(label)
	if !ok {
		return "", false
	}
	if id == "" {
		fmt.Fprintln(m.out, "Account number must not be empty!")
		return "", false
	}
	return id, true
}

func (m *Menu) createAccount() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}

	choice, ok := m.promptInt("Enter account type (1. Checking, 2. Savings, 3. Credit): ")
	if !ok {
		return
	}
	var accountType ledger.AccountType
	switch choice {
	case 1:
		accountType = ledger.Checking
	case 2:
		accountType = ledger.Savings
	case 3:
		accountType = ledger.Credit
	default:
		fmt.Fprintln(m.out, "Invalid account type!")
		return
	}

	if err := m.ledger.CreateAccount(id, accountType); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Account created successfully!")
}

func (m *Menu) deposit() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}
	amount, ok := m.promptFloat("Enter amount to deposit: ")
	if !ok {
		return
	}

	if err := m.ledger.Deposit(id, amount); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Deposit successful!")
}

func (m *Menu) withdraw() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}
	amount, ok := m.promptFloat("Enter amount to withdraw: ")
	if !ok {
		return
	}

	if err := m.ledger.Withdraw(id, amount); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Withdrawal successful!")
}

func (m *Menu) checkBalance() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}

	balance, err := m.ledger.Balance(id)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Balance: %.2f\n", balance)
}

func (m *Menu) transfer() {
	from, ok := m.promptAccountID("Enter account number to transfer from: ")
	if !ok {
		return
	}
	to, ok := m.promptAccountID("Enter account number to transfer to: ")
	if !ok {
		return
	}
	amount, ok := m.promptFloat("Enter amount to transfer: ")
	if !ok {
		return
	}

	if err := m.ledger.Transfer(from, to, amount); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Transfer successful!")
}

func (m *Menu) accountType() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}

	accountType, err := m.ledger.AccountType(id)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintf(m.out, "Account Type: %s\n", accountType)
}

func (m *Menu) listTransactions() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}

	transactions, err := m.ledger.Transactions(id)
	if err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Transactions:")
	for i, t := range transactions {
		fmt.Fprintf(m.out, "%d: %s\n", i+1, t)
	}
}

func (m *Menu) activate() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}
	if err := m.ledger.Activate(id); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Account activated successfully!")
}

func (m *Menu) deactivate() {
	id, ok := m.promptAccountID("Enter account number: ")
	if !ok {
		return
	}
	if err := m.ledger.Deactivate(id); err != nil {
		m.report(err)
		return
	}
	fmt.Fprintln(m.out, "Account deactivated successfully!")
}

// report prints a user-facing message for a domain error.
func (m *Menu) report(err error) {
	switch {
	case ledger.IsNotFound(err):
		fmt.Fprintln(m.out, "Account not found!")
	case ledger.IsInactive(err):
		fmt.Fprintln(m.out, "Account is inactive!")
	case ledger.IsInsufficientFunds(err):
		fmt.Fprintln(m.out, "Insufficient balance!")
	case errors.Is(err, ledger.ErrAccountExists):
		fmt.Fprintln(m.out, "Account already exists!")
	case errors.Is(err, ledger.ErrSameAccount):
		fmt.Fprintln(m.out, "Cannot transfer to the same account!")
	case errors.Is(err, ledger.ErrInvalidAccountType):
		fmt.Fprintln(m.out, "Invalid account type!")
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}
