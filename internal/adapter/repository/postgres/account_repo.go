package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, user_id, card_number, password, balance, is_active,
	card_type, cvv, credit_limit, available_credit, outstanding_balance, last_payment_date`

func scanAccount(row interface{ Scan(...any) error }) (*domain.Account, error) {
	var account domain.Account
	var balanceStr, creditLimitStr, availableStr, outstandingStr string
	var lastPayment sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.CardNumber,
		&account.Password,
		&balanceStr,
		&account.IsActive,
		&account.CardType,
		&account.CVV,
		&creditLimitStr,
		&availableStr,
		&outstandingStr,
		&lastPayment,
	)
	if err != nil {
		return nil, err
	}

	if account.Balance, err = decimal.NewFromString(balanceStr); err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	if account.CreditLimit, err = decimal.NewFromString(creditLimitStr); err != nil {
		return nil, fmt.Errorf("failed to parse credit_limit: %w", err)
	}
	if account.AvailableCredit, err = decimal.NewFromString(availableStr); err != nil {
		return nil, fmt.Errorf("failed to parse available_credit: %w", err)
	}
	if account.OutstandingBalance, err = decimal.NewFromString(outstandingStr); err != nil {
		return nil, fmt.Errorf("failed to parse outstanding_balance: %w", err)
	}
	if lastPayment.Valid {
		t := lastPayment.Time
		account.LastPaymentDate = &t
	}

	return &account, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, card_number, password, balance, is_active,
			card_type, cvv, credit_limit, available_credit, outstanding_balance, last_payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var lastPayment interface{}
	if account.LastPaymentDate != nil {
		lastPayment = *account.LastPaymentDate
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.CardNumber,
		account.Password,
		account.Balance.String(),
		account.IsActive,
		string(account.CardType),
		account.CVV,
		account.CreditLimit.String(),
		account.AvailableCredit.String(),
		account.OutstandingBalance.String(),
		lastPayment,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}
	return account, nil
}

// GetByCardNumber retrieves an account by its card number
func (r *accountRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE card_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, cardNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by card number: %w", err)
	}
	return account, nil
}

func (r *accountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// ListByUserID retrieves all accounts belonging to a user
func (r *accountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY card_number`
	return r.queryAccounts(ctx, query, userID)
}

// List retrieves all accounts
func (r *accountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY card_number`
	return r.queryAccounts(ctx, query)
}

// ListByCardType retrieves all accounts of a given card type
func (r *accountRepository) ListByCardType(ctx context.Context, cardType domain.CardType) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE card_type = $1 ORDER BY card_number`
	return r.queryAccounts(ctx, query, string(cardType))
}

// SetActive freezes or unfreezes an account
func (r *accountRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE accounts SET is_active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to update account active flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdatePassword replaces the 6-digit card PIN
func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	query := `UPDATE accounts SET password = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, password, id)
	if err != nil {
		return fmt.Errorf("failed to update account password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdateCredit persists the mutable credit fields and the balance
func (r *accountRepository) UpdateCredit(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $1, credit_limit = $2, available_credit = $3,
			outstanding_balance = $4, last_payment_date = $5
		WHERE id = $6
	`

	var lastPayment interface{}
	if account.LastPaymentDate != nil {
		lastPayment = *account.LastPaymentDate
	}

	result, err := r.db.ExecContext(ctx, query,
		account.Balance.String(),
		account.CreditLimit.String(),
		account.AvailableCredit.String(),
		account.OutstandingBalance.String(),
		lastPayment,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account credit fields: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Count returns the total number of accounts
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// CountActive returns the number of unfrozen accounts
func (r *accountRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE is_active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active accounts: %w", err)
	}
	return count, nil
}

// TotalBalance sums every account balance
func (r *accountRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var totalStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts`).Scan(&totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse total balance: %w", err)
	}
	return total, nil
}
