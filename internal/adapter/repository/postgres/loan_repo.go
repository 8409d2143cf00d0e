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

// loanApplicationRepository implements domain.LoanApplicationRepository
type loanApplicationRepository struct {
	db *DB
}

// NewLoanApplicationRepository creates a new loan application repository
func NewLoanApplicationRepository(db *DB) domain.LoanApplicationRepository {
	return &loanApplicationRepository{db: db}
}

const loanApplicationColumns = `id, user_id, requested_amount, loan_term_months, loan_purpose,
	monthly_income, existing_debt, credit_score, approved_amount, monthly_payment, interest_rate,
	status, application_date, processed_date, processed_by, admin_notes`

func scanLoanApplication(row interface{ Scan(...any) error }) (*domain.LoanApplication, error) {
	var app domain.LoanApplication
	var requestedStr, incomeStr, debtStr, scoreStr string
	var approved, payment, rate sql.NullString
	var processedDate sql.NullTime
	var processedBy sql.NullString

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&requestedStr,
		&app.LoanTermMonths,
		&app.LoanPurpose,
		&incomeStr,
		&debtStr,
		&scoreStr,
		&approved,
		&payment,
		&rate,
		&app.Status,
		&app.ApplicationDate,
		&processedDate,
		&processedBy,
		&app.AdminNotes,
	)
	if err != nil {
		return nil, err
	}

	if app.RequestedAmount, err = decimal.NewFromString(requestedStr); err != nil {
		return nil, fmt.Errorf("failed to parse requested_amount: %w", err)
	}
	if app.MonthlyIncome, err = decimal.NewFromString(incomeStr); err != nil {
		return nil, fmt.Errorf("failed to parse monthly_income: %w", err)
	}
	if app.ExistingDebt, err = decimal.NewFromString(debtStr); err != nil {
		return nil, fmt.Errorf("failed to parse existing_debt: %w", err)
	}
	if app.CreditScore, err = decimal.NewFromString(scoreStr); err != nil {
		return nil, fmt.Errorf("failed to parse credit_score: %w", err)
	}

	if approved.Valid {
		d, err := decimal.NewFromString(approved.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse approved_amount: %w", err)
		}
		app.ApprovedAmount = &d
	}
	if payment.Valid {
		d, err := decimal.NewFromString(payment.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse monthly_payment: %w", err)
		}
		app.MonthlyPayment = &d
	}
	if rate.Valid {
		d, err := decimal.NewFromString(rate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse interest_rate: %w", err)
		}
		app.InterestRate = &d
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

// Create creates a new loan application
func (r *loanApplicationRepository) Create(ctx context.Context, app *domain.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (id, user_id, requested_amount, loan_term_months, loan_purpose,
			monthly_income, existing_debt, credit_score, status, application_date, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.RequestedAmount.String(),
		app.LoanTermMonths,
		app.LoanPurpose,
		app.MonthlyIncome.String(),
		app.ExistingDebt.String(),
		app.CreditScore.String(),
		string(app.Status),
		app.ApplicationDate,
		app.AdminNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to create loan application: %w", err)
	}

	return nil
}

// GetByID retrieves a loan application by its ID
func (r *loanApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications WHERE id = $1`

	app, err := scanLoanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan application by ID: %w", err)
	}
	return app, nil
}

func (r *loanApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]*domain.LoanApplication, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan applications: %w", err)
	}
	defer rows.Close()

	var apps []*domain.LoanApplication
	for rows.Next() {
		app, err := scanLoanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan applications: %w", err)
	}

	return apps, nil
}

// ListByUserID retrieves a user's loan applications, newest first
func (r *loanApplicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications WHERE user_id = $1 ORDER BY application_date DESC`
	return r.queryApplications(ctx, query, userID)
}

// List retrieves every loan application, newest first
func (r *loanApplicationRepository) List(ctx context.Context) ([]*domain.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications ORDER BY application_date DESC`
	return r.queryApplications(ctx, query)
}

// ListByStatus retrieves loan applications in a given review state,
// newest first
func (r *loanApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications WHERE status = $1 ORDER BY application_date DESC`
	return r.queryApplications(ctx, query, string(status))
}

// Update persists the review outcome of a loan application
func (r *loanApplicationRepository) Update(ctx context.Context, app *domain.LoanApplication) error {
	query := `
		UPDATE loan_applications
		SET status = $1, approved_amount = $2, monthly_payment = $3, interest_rate = $4,
			processed_date = $5, processed_by = $6, admin_notes = $7
		WHERE id = $8
	`

	var approved, payment, rate, processedDate, processedBy interface{}
	if app.ApprovedAmount != nil {
		approved = app.ApprovedAmount.String()
	}
	if app.MonthlyPayment != nil {
		payment = app.MonthlyPayment.String()
	}
	if app.InterestRate != nil {
		rate = app.InterestRate.String()
	}
	if app.ProcessedDate != nil {
		processedDate = *app.ProcessedDate
	}
	if app.ProcessedBy != nil {
		processedBy = *app.ProcessedBy
	}

	result, err := r.db.ExecContext(ctx, query,
		string(app.Status),
		approved,
		payment,
		rate,
		processedDate,
		processedBy,
		app.AdminNotes,
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan application: %w", err)
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

// loanRepository implements domain.LoanRepository
type loanRepository struct {
	db *DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *DB) domain.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, loan_application_id, principal_amount, outstanding_balance,
	monthly_payment, interest_rate, total_term_months, remaining_terms, next_payment_date,
	last_payment_date, is_active, created_date`

func scanLoan(row interface{ Scan(...any) error }) (*domain.Loan, error) {
	var loan domain.Loan
	var principalStr, outstandingStr, paymentStr, rateStr string
	var nextPayment, lastPayment sql.NullTime

	err := row.Scan(
		&loan.ID,
		&loan.UserID,
		&loan.LoanApplicationID,
		&principalStr,
		&outstandingStr,
		&paymentStr,
		&rateStr,
		&loan.TotalTermMonths,
		&loan.RemainingTerms,
		&nextPayment,
		&lastPayment,
		&loan.IsActive,
		&loan.CreatedDate,
	)
	if err != nil {
		return nil, err
	}

	if loan.PrincipalAmount, err = decimal.NewFromString(principalStr); err != nil {
		return nil, fmt.Errorf("failed to parse principal_amount: %w", err)
	}
	if loan.OutstandingBalance, err = decimal.NewFromString(outstandingStr); err != nil {
		return nil, fmt.Errorf("failed to parse outstanding_balance: %w", err)
	}
	if loan.MonthlyPayment, err = decimal.NewFromString(paymentStr); err != nil {
		return nil, fmt.Errorf("failed to parse monthly_payment: %w", err)
	}
	if loan.InterestRate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("failed to parse interest_rate: %w", err)
	}
	if nextPayment.Valid {
		t := nextPayment.Time
		loan.NextPaymentDate = &t
	}
	if lastPayment.Valid {
		t := lastPayment.Time
		loan.LastPaymentDate = &t
	}

	return &loan, nil
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, user_id, loan_application_id, principal_amount, outstanding_balance,
			monthly_payment, interest_rate, total_term_months, remaining_terms, next_payment_date,
			last_payment_date, is_active, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var nextPayment, lastPayment interface{}
	if loan.NextPaymentDate != nil {
		nextPayment = *loan.NextPaymentDate
	}
	if loan.LastPaymentDate != nil {
		lastPayment = *loan.LastPaymentDate
	}

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.UserID,
		loan.LoanApplicationID,
		loan.PrincipalAmount.String(),
		loan.OutstandingBalance.String(),
		loan.MonthlyPayment.String(),
		loan.InterestRate.String(),
		loan.TotalTermMonths,
		loan.RemainingTerms,
		nextPayment,
		lastPayment,
		loan.IsActive,
		loan.CreatedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}

	return nil
}

// GetByID retrieves a loan by its ID
func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan by ID: %w", err)
	}
	return loan, nil
}

// ListActiveByUserID retrieves a user's loans that still carry a balance
func (r *loanRepository) ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 AND is_active ORDER BY created_date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}

	return loans, nil
}

// Update persists repayment progress on a loan
func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET outstanding_balance = $1, remaining_terms = $2, next_payment_date = $3,
			last_payment_date = $4, is_active = $5
		WHERE id = $6
	`

	var nextPayment, lastPayment interface{}
	if loan.NextPaymentDate != nil {
		nextPayment = *loan.NextPaymentDate
	}
	if loan.LastPaymentDate != nil {
		lastPayment = *loan.LastPaymentDate
	}

	result, err := r.db.ExecContext(ctx, query,
		loan.OutstandingBalance.String(),
		loan.RemainingTerms,
		nextPayment,
		lastPayment,
		loan.IsActive,
		loan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
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
