package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger movement recorded on an
// account
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is an immutable record of a balance movement. BalanceAfter
// snapshots the account balance at the moment the movement was applied,
// so history rows stay meaningful as the live balance keeps changing.
type Transaction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Type         TransactionType
	Amount       decimal.Decimal
	Notes        string
	Timestamp    time.Time
	BalanceAfter decimal.Decimal
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer:
	default:
		return errors.New("transaction type must be DEPOSIT, WITHDRAW or TRANSFER")
	}
	if t.Amount.IsNegative() {
		return errors.New("transaction amount cannot be negative")
	}
	return nil
}

// TransferOutcome is the authoritative result of an executed transfer,
// produced only after the debit, credit and fee deduction committed as
// one unit. Card numbers are already masked for display.
type TransferOutcome struct {
	TransferID       uuid.UUID
	FromCardNumber   string
	ToCardNumber     string
	Amount           decimal.Decimal
	Fee              decimal.Decimal
	FromBalanceAfter decimal.Decimal
	Notes            string
	Timestamp        time.Time
}
