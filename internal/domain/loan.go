package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLoanInterestRate is the annual rate applied when the reviewing
// admin does not set one.
var DefaultLoanInterestRate = decimal.NewFromFloat(0.12)

// LoanApplication is a user request for a loan, scored on submission and
// subject to admin approval.
type LoanApplication struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	RequestedAmount decimal.Decimal
	LoanTermMonths  int
	LoanPurpose     string
	MonthlyIncome   decimal.Decimal
	ExistingDebt    decimal.Decimal
	CreditScore     decimal.Decimal
	ApprovedAmount  *decimal.Decimal
	MonthlyPayment  *decimal.Decimal
	InterestRate    *decimal.Decimal
	Status          ApplicationStatus
	ApplicationDate time.Time
	ProcessedDate   *time.Time
	ProcessedBy     *uuid.UUID
	AdminNotes      string
}

// Validate ensures the loan application adheres to domain rules
func (a *LoanApplication) Validate() error {
	if a.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("requested amount must be positive")
	}
	if a.LoanTermMonths <= 0 {
		return errors.New("loan term must be at least one month")
	}
	if a.MonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return errors.New("monthly income must be positive")
	}
	if a.ExistingDebt.IsNegative() {
		return errors.New("existing debt cannot be negative")
	}
	if len(a.LoanPurpose) > MaxApplicationReasonLen {
		return errors.New("loan purpose cannot exceed 500 characters")
	}
	return nil
}

// Loan is an active, amortized loan created when an application is
// approved.
type Loan struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	LoanApplicationID  uuid.UUID
	PrincipalAmount    decimal.Decimal
	OutstandingBalance decimal.Decimal
	MonthlyPayment     decimal.Decimal
	InterestRate       decimal.Decimal
	TotalTermMonths    int
	RemainingTerms     int
	NextPaymentDate    *time.Time
	LastPaymentDate    *time.Time
	IsActive           bool
	CreatedDate        time.Time
}

// CreditScore is the scoring rule applied to every loan application:
// a 700-point base, up to 100 points each for income level, low
// debt-to-income ratio and a reasonable requested-amount-to-income
// ratio, capped at 850.
func CreditScore(monthlyIncome, existingDebt, requestedAmount decimal.Decimal) decimal.Decimal {
	income := monthlyIncome.InexactFloat64()
	if income <= 0 {
		return decimal.NewFromInt(700)
	}
	debt := existingDebt.InexactFloat64()
	requested := requestedAmount.InexactFloat64()

	incomeScore := math.Min(100, income/1000*10)
	debtScore := math.Max(0, 100-debt/income*200)
	requestScore := math.Max(0, 100-math.Max(0, requested/income-10)*10)

	score := math.Min(850, 700+incomeScore+debtScore+requestScore)
	return decimal.NewFromFloat(score).Round(2)
}

// MonthlyPayment computes the standard amortization installment for a
// principal at an annual rate over the given number of months.
func MonthlyPayment(principal, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	r := annualRate.InexactFloat64() / 12
	p := principal.InexactFloat64()
	if r == 0 {
		return decimal.NewFromFloat(p / float64(months)).Round(2)
	}
	factor := math.Pow(1+r, float64(months))
	payment := p * (r * factor) / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}

// RemainingTermsFor estimates how many monthly payments are left to
// clear outstanding at the given installment.
func RemainingTermsFor(outstanding, monthlyPayment decimal.Decimal) int {
	if monthlyPayment.LessThanOrEqual(decimal.Zero) || outstanding.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	terms := outstanding.Div(monthlyPayment).InexactFloat64()
	return int(math.Ceil(terms))
}
