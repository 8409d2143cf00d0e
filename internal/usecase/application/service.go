package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// DefaultCreditLimit applies when a credit-card application does not
// name a requested limit.
var DefaultCreditLimit = decimal.NewFromInt(10000)

// SubmitInput represents the input for submitting a card application
type SubmitInput struct {
	PreferredPassword    string
	CardType             domain.CardType
	RequestedCreditLimit *decimal.Decimal
	ApplicationReason    string
}

// ProcessInput represents an admin decision on a pending application
type ProcessInput struct {
	Status     domain.ApplicationStatus
	AdminNotes string
}

// CardApplicationService handles the card application lifecycle:
// submission by users, review by admins, and account creation on
// approval.
type CardApplicationService struct {
	ApplicationRepo domain.CardApplicationRepository
	AccountRepo     domain.AccountRepository
}

// NewCardApplicationService creates a new CardApplicationService instance
func NewCardApplicationService(applicationRepo domain.CardApplicationRepository, accountRepo domain.AccountRepository) *CardApplicationService {
	return &CardApplicationService{
		ApplicationRepo: applicationRepo,
		AccountRepo:     accountRepo,
	}
}

// Submit files a PENDING application for the user.
func (s *CardApplicationService) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*domain.CardApplication, error) {
	cardType := input.CardType
	if cardType == "" {
		cardType = domain.CardTypeDebit
	}

	app := &domain.CardApplication{
		ID:                   uuid.New(),
		UserID:               userID,
		PreferredPassword:    input.PreferredPassword,
		CardType:             cardType,
		RequestedCreditLimit: input.RequestedCreditLimit,
		ApplicationReason:    input.ApplicationReason,
		Status:               domain.ApplicationStatusPending,
		ApplicationDate:      time.Now(),
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}

	if err := s.ApplicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListMine returns the user's applications, newest first.
func (s *CardApplicationService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.CardApplication, error) {
	return s.ApplicationRepo.ListByUserID(ctx, userID)
}

// ListAll returns every application, newest first.
func (s *CardApplicationService) ListAll(ctx context.Context) ([]*domain.CardApplication, error) {
	return s.ApplicationRepo.List(ctx)
}

// ListPending returns applications still awaiting review.
func (s *CardApplicationService) ListPending(ctx context.Context) ([]*domain.CardApplication, error) {
	return s.ApplicationRepo.ListByStatus(ctx, domain.ApplicationStatusPending)
}

// Process records an admin decision. Approval opens the account: a
// fresh 19-digit card number with the applicant's preferred PIN, and
// for credit cards a generated CVV plus the requested (or default)
// credit limit.
func (s *CardApplicationService) Process(ctx context.Context, adminID, applicationID uuid.UUID, input ProcessInput) (*domain.CardApplication, error) {
	if input.Status != domain.ApplicationStatusApproved && input.Status != domain.ApplicationStatusRejected {
		return nil, errors.New("status must be APPROVED or REJECTED")
	}

	app, err := s.ApplicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return nil, errors.New("application has already been processed")
	}

	now := time.Now()
	app.Status = input.Status
	app.ProcessedDate = &now
	app.ProcessedBy = &adminID
	app.AdminNotes = input.AdminNotes

	if input.Status == domain.ApplicationStatusApproved {
		account := &domain.Account{
			ID:         uuid.New(),
			UserID:     app.UserID,
			CardNumber: domain.GenerateCardNumber(),
			Password:   app.PreferredPassword,
			Balance:    decimal.Zero,
			IsActive:   true,
			CardType:   app.CardType,
		}
		if app.CardType == domain.CardTypeCredit {
			limit := DefaultCreditLimit
			if app.RequestedCreditLimit != nil {
				limit = *app.RequestedCreditLimit
			}
			account.CVV = domain.GenerateCVV()
			account.CreditLimit = limit
			account.AvailableCredit = limit
			account.OutstandingBalance = decimal.Zero
		}
		if err := account.Validate(); err != nil {
			return nil, err
		}
		if err := s.AccountRepo.Create(ctx, account); err != nil {
			return nil, err
		}
		app.GeneratedCardNumber = account.CardNumber
	}

	if err := s.ApplicationRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}
