package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context) ([]*User, error)

	// SetActive freezes or unfreezes a user
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	Count(ctx context.Context) (int64, error)

	CountActive(ctx context.Context) (int64, error)
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error

	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	GetByCardNumber(ctx context.Context, cardNumber string) (*Account, error)

	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	List(ctx context.Context) ([]*Account, error)

	ListByCardType(ctx context.Context, cardType CardType) ([]*Account, error)

	// SetActive freezes or unfreezes an account
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// UpdatePassword replaces the 6-digit card PIN
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error

	// UpdateCredit persists the mutable credit-card fields (available
	// credit, outstanding balance, last payment date) and the balance
	UpdateCredit(ctx context.Context, account *Account) error

	Count(ctx context.Context) (int64, error)

	CountActive(ctx context.Context) (int64, error)

	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}

// TransactionActivity aggregates ledger movement over a period
type TransactionActivity struct {
	Count          int64
	Amount         decimal.Decimal
	TransferAmount decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence
// operations. The Record* methods are the atomicity boundary: balance
// mutation and history insertion happen in one database transaction, or
// not at all.
type TransactionRepository interface {
	// RecordDeposit credits the account and inserts a DEPOSIT row
	RecordDeposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, notes string) (*Transaction, error)

	// RecordWithdrawal debits the account and inserts a WITHDRAW row.
	// Returns ErrLowBalance when the account cannot cover the amount,
	// re-checked inside the transaction to survive concurrent debits.
	RecordWithdrawal(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, notes string) (*Transaction, error)

	// RecordTransfer debits amount+fee from the source, credits amount
	// to the destination and inserts a TRANSFER row on the source plus
	// a DEPOSIT row on the destination, all atomically. Returns the
	// source-side row.
	RecordTransfer(ctx context.Context, fromID, toID uuid.UUID, amount, fee decimal.Decimal, fromNotes, toNotes string) (*Transaction, error)

	// Record inserts a history row without touching any balance. Used
	// for credit-card movements, which are tracked on the credit
	// fields rather than the balance column.
	Record(ctx context.Context, tx *Transaction) error

	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)

	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error)

	List(ctx context.Context) ([]*Transaction, error)

	Count(ctx context.Context) (int64, error)

	// ActivitySince aggregates rows with a timestamp at or after since
	ActivitySince(ctx context.Context, since time.Time) (*TransactionActivity, error)
}

// CardApplicationRepository defines the interface for card application
// persistence operations
type CardApplicationRepository interface {
	Create(ctx context.Context, app *CardApplication) error

	GetByID(ctx context.Context, id uuid.UUID) (*CardApplication, error)

	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*CardApplication, error)

	List(ctx context.Context) ([]*CardApplication, error)

	ListByStatus(ctx context.Context, status ApplicationStatus) ([]*CardApplication, error)

	Update(ctx context.Context, app *CardApplication) error
}

// LoanApplicationRepository defines the interface for loan application
// persistence operations
type LoanApplicationRepository interface {
	Create(ctx context.Context, app *LoanApplication) error

	GetByID(ctx context.Context, id uuid.UUID) (*LoanApplication, error)

	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*LoanApplication, error)

	List(ctx context.Context) ([]*LoanApplication, error)

	ListByStatus(ctx context.Context, status ApplicationStatus) ([]*LoanApplication, error)

	Update(ctx context.Context, app *LoanApplication) error
}

// LoanRepository defines the interface for loan persistence operations
type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) error

	GetByID(ctx context.Context, id uuid.UUID) (*Loan, error)

	ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*Loan, error)

	Update(ctx context.Context, loan *Loan) error
}

// PasswordResetRepository defines the interface for password-reset
// request persistence operations
type PasswordResetRepository interface {
	Create(ctx context.Context, req *PasswordResetRequest) error

	// FindValid returns the unused, unexpired request matching the
	// account and verification code, or ErrCodeInvalid
	FindValid(ctx context.Context, accountID uuid.UUID, code string, now time.Time) (*PasswordResetRequest, error)

	MarkUsed(ctx context.Context, id uuid.UUID) error

	DeleteExpired(ctx context.Context, now time.Time) error
}
