package loan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// ApplyInput represents the input for submitting a loan application
type ApplyInput struct {
	RequestedAmount decimal.Decimal
	LoanTermMonths  int
	LoanPurpose     string
	MonthlyIncome   decimal.Decimal
	ExistingDebt    decimal.Decimal
}

// ProcessInput represents an admin decision on a pending loan application
type ProcessInput struct {
	Status         domain.ApplicationStatus
	ApprovedAmount *decimal.Decimal
	InterestRate   *decimal.Decimal
	AdminNotes     string
}

// PaymentReceipt summarizes an applied loan repayment
type PaymentReceipt struct {
	LoanID             uuid.UUID
	AmountApplied      decimal.Decimal
	OutstandingBalance decimal.Decimal
	RemainingTerms     int
	PaidOff            bool
	PaidAt             time.Time
}

// LoanService handles loan applications, admin review and repayments.
type LoanService struct {
	ApplicationRepo domain.LoanApplicationRepository
	LoanRepo        domain.LoanRepository
}

// NewLoanService creates a new LoanService instance
func NewLoanService(applicationRepo domain.LoanApplicationRepository, loanRepo domain.LoanRepository) *LoanService {
	return &LoanService{
		ApplicationRepo: applicationRepo,
		LoanRepo:        loanRepo,
	}
}

// Apply files a PENDING loan application, scoring it on submission.
func (s *LoanService) Apply(ctx context.Context, userID uuid.UUID, input ApplyInput) (*domain.LoanApplication, error) {
	app := &domain.LoanApplication{
		ID:              uuid.New(),
		UserID:          userID,
		RequestedAmount: input.RequestedAmount,
		LoanTermMonths:  input.LoanTermMonths,
		LoanPurpose:     input.LoanPurpose,
		MonthlyIncome:   input.MonthlyIncome,
		ExistingDebt:    input.ExistingDebt,
		Status:          domain.ApplicationStatusPending,
		ApplicationDate: time.Now(),
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	app.CreditScore = domain.CreditScore(input.MonthlyIncome, input.ExistingDebt, input.RequestedAmount)

	if err := s.ApplicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListMine returns the user's loan applications, newest first.
func (s *LoanService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.LoanApplication, error) {
	return s.ApplicationRepo.ListByUserID(ctx, userID)
}

// ListAll returns every loan application, newest first.
func (s *LoanService) ListAll(ctx context.Context) ([]*domain.LoanApplication, error) {
	return s.ApplicationRepo.List(ctx)
}

// ListPending returns loan applications still awaiting review.
func (s *LoanService) ListPending(ctx context.Context) ([]*domain.LoanApplication, error) {
	return s.ApplicationRepo.ListByStatus(ctx, domain.ApplicationStatusPending)
}

// ActiveLoans returns the user's loans that still carry a balance.
func (s *LoanService) ActiveLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	return s.LoanRepo.ListActiveByUserID(ctx, userID)
}

// Process records an admin decision. Approval disburses the loan: the
// approved amount defaults to the requested one, the rate to the
// standard annual rate, and the installment follows the amortization
// formula. The first payment falls due one month out.
func (s *LoanService) Process(ctx context.Context, adminID, applicationID uuid.UUID, input ProcessInput) (*domain.LoanApplication, error) {
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
		amount := app.RequestedAmount
		if input.ApprovedAmount != nil {
			amount = *input.ApprovedAmount
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, errors.New("approved amount must be positive")
		}

		rate := domain.DefaultLoanInterestRate
		if input.InterestRate != nil {
			rate = *input.InterestRate
		}
		if rate.IsNegative() {
			return nil, errors.New("interest rate cannot be negative")
		}

		payment := domain.MonthlyPayment(amount, rate, app.LoanTermMonths)
		app.ApprovedAmount = &amount
		app.InterestRate = &rate
		app.MonthlyPayment = &payment

		nextPayment := now.AddDate(0, 1, 0)
		loan := &domain.Loan{
			ID:                 uuid.New(),
			UserID:             app.UserID,
			LoanApplicationID:  app.ID,
			PrincipalAmount:    amount,
			OutstandingBalance: amount,
			MonthlyPayment:     payment,
			InterestRate:       rate,
			TotalTermMonths:    app.LoanTermMonths,
			RemainingTerms:     app.LoanTermMonths,
			NextPaymentDate:    &nextPayment,
			IsActive:           true,
			CreatedDate:        now,
		}
		if err := s.LoanRepo.Create(ctx, loan); err != nil {
			return nil, err
		}
	}

	if err := s.ApplicationRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// MakePayment applies a repayment to one of the caller's loans. The
// amount is capped at the outstanding balance; paying it off marks the
// loan inactive.
func (s *LoanService) MakePayment(ctx context.Context, userID, loanID uuid.UUID, amount decimal.Decimal) (*PaymentReceipt, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, domain.ErrNotAllowed
	}
	if !loan.IsActive {
		return nil, errors.New("loan is already paid off")
	}

	if amount.GreaterThan(loan.OutstandingBalance) {
		amount = loan.OutstandingBalance
	}

	now := time.Now()
	loan.OutstandingBalance = loan.OutstandingBalance.Sub(amount)
	loan.LastPaymentDate = &now
	loan.RemainingTerms = domain.RemainingTermsFor(loan.OutstandingBalance, loan.MonthlyPayment)

	paidOff := loan.OutstandingBalance.IsZero()
	if paidOff {
		loan.IsActive = false
		loan.NextPaymentDate = nil
	} else {
		nextPayment := now.AddDate(0, 1, 0)
		loan.NextPaymentDate = &nextPayment
	}

	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	return &PaymentReceipt{
		LoanID:             loan.ID,
		AmountApplied:      amount,
		OutstandingBalance: loan.OutstandingBalance,
		RemainingTerms:     loan.RemainingTerms,
		PaidOff:            paidOff,
		PaidAt:             now,
	}, nil
}
