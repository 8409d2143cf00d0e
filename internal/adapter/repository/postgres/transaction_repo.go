package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, account_id, type, amount, notes, timestamp, balance_after`

const insertTransactionQuery = `
	INSERT INTO transactions (id, account_id, type, amount, notes, timestamp, balance_after)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	var tx domain.Transaction
	var amountStr, balanceAfterStr string

	err := row.Scan(
		&tx.ID,
		&tx.AccountID,
		&tx.Type,
		&amountStr,
		&tx.Notes,
		&tx.Timestamp,
		&balanceAfterStr,
	)
	if err != nil {
		return nil, err
	}

	if tx.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	if tx.BalanceAfter, err = decimal.NewFromString(balanceAfterStr); err != nil {
		return nil, fmt.Errorf("failed to parse balance_after: %w", err)
	}

	return &tx, nil
}

// RecordDeposit credits the account and inserts a DEPOSIT row in one
// database transaction
func (r *transactionRepository) RecordDeposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, notes string) (*domain.Transaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	var balanceStr string
	err = dbTx.QueryRowContext(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount.String(), accountID,
	).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to credit account: %w", err)
	}

	balanceAfter, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}

	tx := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         domain.TransactionTypeDeposit,
		Amount:       amount,
		Notes:        notes,
		Timestamp:    time.Now(),
		BalanceAfter: balanceAfter,
	}
	if err := insertTransaction(ctx, dbTx, tx); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tx, nil
}

// RecordWithdrawal debits the account and inserts a WITHDRAW row in one
// database transaction. The balance guard runs inside the update so a
// concurrent debit cannot push the account negative.
func (r *transactionRepository) RecordWithdrawal(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, notes string) (*domain.Transaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	balanceAfter, err := debitAccount(ctx, dbTx, accountID, amount)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         domain.TransactionTypeWithdraw,
		Amount:       amount,
		Notes:        notes,
		Timestamp:    time.Now(),
		BalanceAfter: balanceAfter,
	}
	if err := insertTransaction(ctx, dbTx, tx); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tx, nil
}

// RecordTransfer debits amount+fee from the source, credits amount to
// the destination and inserts the two history rows, all atomically.
// Returns the source-side row.
func (r *transactionRepository) RecordTransfer(ctx context.Context, fromID, toID uuid.UUID, amount, fee decimal.Decimal, fromNotes, toNotes string) (*domain.Transaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	fromBalance, err := debitAccount(ctx, dbTx, fromID, amount.Add(fee))
	if err != nil {
		return nil, err
	}

	var toBalanceStr string
	err = dbTx.QueryRowContext(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount.String(), toID,
	).Scan(&toBalanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to credit destination account: %w", err)
	}
	toBalance, err := decimal.NewFromString(toBalanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination balance: %w", err)
	}

	sourceTx, destTx := transferRows(fromID, toID, amount, fee, fromNotes, toNotes, fromBalance, toBalance, time.Now())
	if err := insertTransaction(ctx, dbTx, sourceTx); err != nil {
		return nil, err
	}
	if err := insertTransaction(ctx, dbTx, destTx); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return sourceTx, nil
}

// transferRows builds the two ledger rows of a transfer. The source row
// records the full charge, amount plus fee, matching what left the
// account; the destination row records the amount credited.
func transferRows(fromID, toID uuid.UUID, amount, fee decimal.Decimal, fromNotes, toNotes string, fromBalance, toBalance decimal.Decimal, now time.Time) (*domain.Transaction, *domain.Transaction) {
	sourceTx := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    fromID,
		Type:         domain.TransactionTypeTransfer,
		Amount:       amount.Add(fee),
		Notes:        fromNotes,
		Timestamp:    now,
		BalanceAfter: fromBalance,
	}
	destTx := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    toID,
		Type:         domain.TransactionTypeDeposit,
		Amount:       amount,
		Notes:        toNotes,
		Timestamp:    now,
		BalanceAfter: toBalance,
	}
	return sourceTx, destTx
}

// Record inserts a history row without touching any balance
func (r *transactionRepository) Record(ctx context.Context, tx *domain.Transaction) error {
	_, err := r.db.ExecContext(ctx, insertTransactionQuery,
		tx.ID,
		tx.AccountID,
		string(tx.Type),
		tx.Amount.String(),
		tx.Notes,
		tx.Timestamp,
		tx.BalanceAfter.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func insertTransaction(ctx context.Context, dbTx *sql.Tx, tx *domain.Transaction) error {
	_, err := dbTx.ExecContext(ctx, insertTransactionQuery,
		tx.ID,
		tx.AccountID,
		string(tx.Type),
		tx.Amount.String(),
		tx.Notes,
		tx.Timestamp,
		tx.BalanceAfter.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// debitAccount subtracts amount from the account balance inside dbTx.
// Returns ErrLowBalance when the balance cannot cover the amount and
// ErrNotFound when the account does not exist.
func debitAccount(ctx context.Context, dbTx *sql.Tx, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balanceStr string
	err := dbTx.QueryRowContext(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1 RETURNING balance`,
		amount.String(), accountID,
	).Scan(&balanceStr)
	if err == nil {
		balance, perr := decimal.NewFromString(balanceStr)
		if perr != nil {
			return decimal.Zero, fmt.Errorf("failed to parse balance: %w", perr)
		}
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("failed to debit account: %w", err)
	}

	// The guard swallowed the update; distinguish a missing account
	// from an insufficient balance.
	var exists bool
	if err := dbTx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID,
	).Scan(&exists); err != nil {
		return decimal.Zero, fmt.Errorf("failed to check account existence: %w", err)
	}
	if !exists {
		return decimal.Zero, domain.ErrNotFound
	}
	return decimal.Zero, domain.ErrLowBalance
}

// ListByUserID retrieves all transactions across a user's accounts,
// newest first
func (r *transactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.type, t.amount, t.notes, t.timestamp, t.balance_after
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1
		ORDER BY t.timestamp DESC
	`
	return r.queryTransactions(ctx, query, userID)
}

// ListByAccountID retrieves all transactions for an account, newest first
func (r *transactionRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY timestamp DESC`
	return r.queryTransactions(ctx, query, accountID)
}

// List retrieves the full ledger, newest first
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY timestamp DESC`
	return r.queryTransactions(ctx, query)
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// Count returns the total number of transactions
func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ActivitySince aggregates rows with a timestamp at or after since
func (r *transactionRepository) ActivitySince(ctx context.Context, since time.Time) (*domain.TransactionActivity, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'TRANSFER'), 0)
		FROM transactions
		WHERE timestamp >= $1
	`

	var activity domain.TransactionActivity
	var amountStr, transferStr string
	err := r.db.QueryRowContext(ctx, query, since).Scan(&activity.Count, &amountStr, &transferStr)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	if activity.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return nil, fmt.Errorf("failed to parse amount sum: %w", err)
	}
	if activity.TransferAmount, err = decimal.NewFromString(transferStr); err != nil {
		return nil, fmt.Errorf("failed to parse transfer sum: %w", err)
	}

	return &activity, nil
}
