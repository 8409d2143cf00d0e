package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alienbank/bank-backend/internal/domain"
)

// passwordResetRepository implements domain.PasswordResetRepository
type passwordResetRepository struct {
	db *DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *DB) domain.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create creates a new password reset request
func (r *passwordResetRepository) Create(ctx context.Context, req *domain.PasswordResetRequest) error {
	query := `
		INSERT INTO password_reset_requests (id, account_id, verification_code, new_password,
			request_time, expiry_time, is_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.AccountID,
		req.VerificationCode,
		req.NewPassword,
		req.RequestTime,
		req.ExpiryTime,
		req.IsUsed,
	)
	if err != nil {
		return fmt.Errorf("failed to create password reset request: %w", err)
	}

	return nil
}

// FindValid returns the newest unused, unexpired request matching the
// account and verification code
func (r *passwordResetRepository) FindValid(ctx context.Context, accountID uuid.UUID, code string, now time.Time) (*domain.PasswordResetRequest, error) {
	query := `
		SELECT id, account_id, verification_code, new_password, request_time, expiry_time, is_used
		FROM password_reset_requests
		WHERE account_id = $1 AND verification_code = $2 AND NOT is_used AND expiry_time > $3
		ORDER BY request_time DESC
		LIMIT 1
	`

	var req domain.PasswordResetRequest
	err := r.db.QueryRowContext(ctx, query, accountID, code, now).Scan(
		&req.ID,
		&req.AccountID,
		&req.VerificationCode,
		&req.NewPassword,
		&req.RequestTime,
		&req.ExpiryTime,
		&req.IsUsed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, fmt.Errorf("failed to find password reset request: %w", err)
	}

	return &req, nil
}

// MarkUsed consumes a password reset request
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE password_reset_requests SET is_used = TRUE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark password reset request used: %w", err)
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

// DeleteExpired drops requests past their expiry
func (r *passwordResetRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_reset_requests WHERE expiry_time <= $1`, now)
	if err != nil {
		return fmt.Errorf("failed to delete expired password reset requests: %w", err)
	}
	return nil
}
