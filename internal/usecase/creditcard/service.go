package creditcard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// PaymentMethod selects how a credit-card repayment is funded
type PaymentMethod string

const (
	PaymentMethodDebitCard PaymentMethod = "DEBIT_CARD"
	PaymentMethodCash      PaymentMethod = "CASH"
)

// Overdue and interest policy for credit cards.
var (
	monthlyInterestRate = decimal.NewFromFloat(0.015)
	overdueAfter        = 30 * 24 * time.Hour
)

// PaymentInput represents the input for a credit-card repayment
type PaymentInput struct {
	CreditCardNumber      string
	PaymentAmount         decimal.Decimal
	PaymentMethod         PaymentMethod
	SourceDebitCardNumber string
}

// PaymentReceipt summarizes an applied repayment
type PaymentReceipt struct {
	CreditCardNumber   string
	AmountApplied      decimal.Decimal
	OutstandingBalance decimal.Decimal
	AvailableCredit    decimal.Decimal
	PaidAt             time.Time
}

// SpendReceipt summarizes a credit-card purchase
type SpendReceipt struct {
	CardNumber         string
	Amount             decimal.Decimal
	AvailableCredit    decimal.Decimal
	OutstandingBalance decimal.Decimal
	SpentAt            time.Time
}

// CreditCardService handles credit-card repayments, purchases and the
// periodic overdue/interest maintenance.
type CreditCardService struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
}

// NewCreditCardService creates a new CreditCardService instance
func NewCreditCardService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *CreditCardService {
	return &CreditCardService{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}

// MakePayment applies a repayment to a credit card owned by the caller.
// The amount is capped at the outstanding balance; the DEBIT_CARD
// method additionally debits the named debit card.
func (s *CreditCardService) MakePayment(ctx context.Context, userID uuid.UUID, input PaymentInput) (*PaymentReceipt, error) {
	if !input.PaymentAmount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	creditCard, err := s.AccountRepo.GetByCardNumber(ctx, input.CreditCardNumber)
	if err != nil {
		return nil, err
	}
	if creditCard.CardType != domain.CardTypeCredit {
		return nil, errors.New("card is not a credit card")
	}
	if creditCard.UserID != userID {
		return nil, domain.ErrNotAllowed
	}

	amount := input.PaymentAmount
	if amount.GreaterThan(creditCard.OutstandingBalance) {
		amount = creditCard.OutstandingBalance
	}

	paymentSource := "cash payment"
	if input.PaymentMethod == PaymentMethodDebitCard && input.SourceDebitCardNumber != "" {
		debitCard, err := s.AccountRepo.GetByCardNumber(ctx, input.SourceDebitCardNumber)
		if err != nil {
			return nil, err
		}
		if debitCard.CardType != domain.CardTypeDebit {
			return nil, errors.New("source card is not a debit card")
		}
		if debitCard.UserID != userID {
			return nil, domain.ErrNotAllowed
		}
		if debitCard.Balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: debit card balance %s cannot cover %s",
				domain.ErrLowBalance, debitCard.Balance, amount)
		}

		notes := fmt.Sprintf("Credit card payment - card %s", domain.MaskCardNumber(creditCard.CardNumber))
		if _, err := s.TransactionRepo.RecordWithdrawal(ctx, debitCard.ID, amount, notes); err != nil {
			return nil, err
		}
		paymentSource = fmt.Sprintf("from debit card %s", domain.MaskCardNumber(debitCard.CardNumber))
	}

	now := time.Now()
	creditCard.OutstandingBalance = creditCard.OutstandingBalance.Sub(amount)
	creditCard.AvailableCredit = creditCard.AvailableCredit.Add(amount)
	creditCard.LastPaymentDate = &now
	if err := s.AccountRepo.UpdateCredit(ctx, creditCard); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    creditCard.ID,
		Type:         domain.TransactionTypeDeposit,
		Amount:       amount,
		Notes:        "Credit card payment " + paymentSource,
		Timestamp:    now,
		BalanceAfter: creditCard.OutstandingBalance,
	}
	if err := s.TransactionRepo.Record(ctx, record); err != nil {
		return nil, err
	}

	return &PaymentReceipt{
		CreditCardNumber:   domain.MaskCardNumber(creditCard.CardNumber),
		AmountApplied:      amount,
		OutstandingBalance: creditCard.OutstandingBalance,
		AvailableCredit:    creditCard.AvailableCredit,
		PaidAt:             now,
	}, nil
}

// Spend charges a purchase against a credit card after CVV
// verification. No session is required; the CVV is the credential,
// matching how card-present spending works.
func (s *CreditCardService) Spend(ctx context.Context, cardNumber, cvv string, amount decimal.Decimal, notes string) (*SpendReceipt, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	card, err := s.AccountRepo.GetByCardNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if card.CardType != domain.CardTypeCredit {
		return nil, errors.New("card is not a credit card")
	}
	if card.CVV != cvv {
		return nil, domain.ErrBadCredentials
	}
	if !card.IsActive {
		return nil, domain.ErrFrozen
	}
	if amount.GreaterThan(card.AvailableCredit) {
		return nil, fmt.Errorf("%w: available credit %s cannot cover %s",
			domain.ErrLowBalance, card.AvailableCredit, amount)
	}

	now := time.Now()
	card.AvailableCredit = card.AvailableCredit.Sub(amount)
	card.OutstandingBalance = card.OutstandingBalance.Add(amount)
	if err := s.AccountRepo.UpdateCredit(ctx, card); err != nil {
		return nil, err
	}

	if notes == "" {
		notes = "Credit card purchase"
	}
	record := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    card.ID,
		Type:         domain.TransactionTypeWithdraw,
		Amount:       amount,
		Notes:        notes,
		Timestamp:    now,
		BalanceAfter: card.OutstandingBalance,
	}
	if err := s.TransactionRepo.Record(ctx, record); err != nil {
		return nil, err
	}

	return &SpendReceipt{
		CardNumber:         domain.MaskCardNumber(card.CardNumber),
		Amount:             amount,
		AvailableCredit:    card.AvailableCredit,
		OutstandingBalance: card.OutstandingBalance,
		SpentAt:            now,
	}, nil
}

// FreezeOverdueCards deactivates credit cards whose outstanding balance
// has gone unpaid past the overdue window. Run by the maintenance loop.
func (s *CreditCardService) FreezeOverdueCards(ctx context.Context) (int, error) {
	cards, err := s.AccountRepo.ListByCardType(ctx, domain.CardTypeCredit)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-overdueAfter)
	frozen := 0
	for _, card := range cards {
		if !card.IsActive || !card.OutstandingBalance.IsPositive() {
			continue
		}
		if card.LastPaymentDate == nil || !card.LastPaymentDate.Before(cutoff) {
			continue
		}
		if err := s.AccountRepo.SetActive(ctx, card.ID, false); err != nil {
			return frozen, err
		}
		record := &domain.Transaction{
			ID:        uuid.New(),
			AccountID: card.ID,
			Type:      domain.TransactionTypeWithdraw,
			Amount:    decimal.Zero,
			Notes:     "Card frozen: payment overdue by more than 30 days",
			Timestamp: time.Now(),
		}
		if err := s.TransactionRepo.Record(ctx, record); err != nil {
			return frozen, err
		}
		frozen++
	}
	return frozen, nil
}

// ApplyMonthlyInterest accrues 1.5% monthly interest on every carried
// balance and recomputes available credit against the limit. Run by the
// maintenance loop.
func (s *CreditCardService) ApplyMonthlyInterest(ctx context.Context) error {
	cards, err := s.AccountRepo.ListByCardType(ctx, domain.CardTypeCredit)
	if err != nil {
		return err
	}

	for _, card := range cards {
		if !card.OutstandingBalance.IsPositive() {
			continue
		}
		interest := card.OutstandingBalance.Mul(monthlyInterestRate).Round(2)
		card.OutstandingBalance = card.OutstandingBalance.Add(interest)
		card.AvailableCredit = decimal.Max(decimal.Zero, card.CreditLimit.Sub(card.OutstandingBalance))
		if err := s.AccountRepo.UpdateCredit(ctx, card); err != nil {
			return err
		}

		record := &domain.Transaction{
			ID:           uuid.New(),
			AccountID:    card.ID,
			Type:         domain.TransactionTypeWithdraw,
			Amount:       interest,
			Notes:        "Credit card interest - 1.5% monthly",
			Timestamp:    time.Now(),
			BalanceAfter: card.OutstandingBalance,
		}
		if err := s.TransactionRepo.Record(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
