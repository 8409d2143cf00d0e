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

// cardApplicationRepository implements domain.CardApplicationRepository
type cardApplicationRepository struct {
	db *DB
}

// NewCardApplicationRepository creates a new card application repository
func NewCardApplicationRepository(db *DB) domain.CardApplicationRepository {
	return &cardApplicationRepository{db: db}
}

const cardApplicationColumns = `id, user_id, preferred_password, card_type, requested_credit_limit,
	application_reason, status, application_date, processed_date, processed_by, admin_notes, generated_card_number`

func scanCardApplication(row interface{ Scan(...any) error }) (*domain.CardApplication, error) {
	var app domain.CardApplication
	var requestedLimit sql.NullString
	var processedDate sql.NullTime
	var processedBy sql.NullString

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.PreferredPassword,
		&app.CardType,
		&requestedLimit,
		&app.ApplicationReason,
		&app.Status,
		&app.ApplicationDate,
		&processedDate,
		&processedBy,
		&app.AdminNotes,
		&app.GeneratedCardNumber,
	)
	if err != nil {
		return nil, err
	}

	if requestedLimit.Valid {
		limit, err := decimal.NewFromString(requestedLimit.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse requested_credit_limit: %w", err)
		}
		app.RequestedCreditLimit = &limit
	}
	if processedDate.Valid {
		t := processedDate.Time
		app.ProcessedDate = &t
	}
	if processedBy.Valid {
		id, err := uuid.Parse(processedBy.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse processed_by: %w", err)
		}
		app.ProcessedBy = &id
	}

	return &app, nil
}

// Create creates a new card application
func (r *cardApplicationRepository) Create(ctx context.Context, app *domain.CardApplication) error {
	query := `
		INSERT INTO card_applications (id, user_id, preferred_password, card_type, requested_credit_limit,
			application_reason, status, application_date, admin_notes, generated_card_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var requestedLimit interface{}
	if app.RequestedCreditLimit != nil {
		requestedLimit = app.RequestedCreditLimit.String()
	}

	_, err := r.db.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.PreferredPassword,
		string(app.CardType),
		requestedLimit,
		app.ApplicationReason,
		string(app.Status),
		app.ApplicationDate,
		app.AdminNotes,
		app.GeneratedCardNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to create card application: %w", err)
	}

	return nil
}

// GetByID retrieves a card application by its ID
func (r *cardApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CardApplication, error) {
	query := `SELECT ` + cardApplicationColumns + ` FROM card_applications WHERE id = $1`

	app, err := scanCardApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card application by ID: %w", err)
	}
	return app, nil
}

func (r *cardApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]*domain.CardApplication, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query card applications: %w", err)
	}
	defer rows.Close()

	var apps []*domain.CardApplication
	for rows.Next() {
		app, err := scanCardApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card applications: %w", err)
	}

	return apps, nil
}

// ListByUserID retrieves a user's card applications, newest first
func (r *cardApplicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CardApplication, error) {
	query := `SELECT ` + cardApplicationColumns + ` FROM card_applications WHERE user_id = $1 ORDER BY application_date DESC`
	return r.queryApplications(ctx, query, userID)
}

// List retrieves every card application, newest first
func (r *cardApplicationRepository) List(ctx context.Context) ([]*domain.CardApplication, error) {
	query := `SELECT ` + cardApplicationColumns + ` FROM card_applications ORDER BY application_date DESC`
	return r.queryApplications(ctx, query)
}

// ListByStatus retrieves card applications in a given review state,
// newest first
func (r *cardApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.CardApplication, error) {
	query := `SELECT ` + cardApplicationColumns + ` FROM card_applications WHERE status = $1 ORDER BY application_date DESC`
	return r.queryApplications(ctx, query, string(status))
}

// Update persists the review outcome of a card application
func (r *cardApplicationRepository) Update(ctx context.Context, app *domain.CardApplication) error {
	query := `
		UPDATE card_applications
		SET status = $1, processed_date = $2, processed_by = $3, admin_notes = $4, generated_card_number = $5
		WHERE id = $6
	`

	var processedDate, processedBy interface{}
	if app.ProcessedDate != nil {
		processedDate = *app.ProcessedDate
	}
	if app.ProcessedBy != nil {
		processedBy = *app.ProcessedBy
	}

	result, err := r.db.ExecContext(ctx, query,
		string(app.Status),
		processedDate,
		processedBy,
		app.AdminNotes,
		app.GeneratedCardNumber,
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card application: %w", err)
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
