package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardType distinguishes debit cards (balance-backed) from credit cards
// (credit-limit-backed, repaid via payments)
type CardType string

const (
	CardTypeDebit  CardType = "DEBIT"
	CardTypeCredit CardType = "CREDIT"
)

// Account represents a single card account.
// For DEBIT cards Balance directly bounds withdrawals and transfers.
// For CREDIT cards the CreditLimit/AvailableCredit/OutstandingBalance
// triple governs spending; Balance stays zero.
type Account struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CardNumber string
	Password   string // 6-digit card PIN
	Balance    decimal.Decimal
	IsActive   bool
	CardType   CardType

	// Credit card fields. Zero-valued on debit cards.
	CVV                string
	CreditLimit        decimal.Decimal
	AvailableCredit    decimal.Decimal
	OutstandingBalance decimal.Decimal
	LastPaymentDate    *time.Time
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if !ValidCardNumber(a.CardNumber) {
		return ErrInvalidCardNumber
	}
	if !ValidCardPassword(a.Password) {
		return ErrInvalidPassword
	}
	if a.CardType != CardTypeDebit && a.CardType != CardTypeCredit {
		return errors.New("card type must be DEBIT or CREDIT")
	}
	if a.CardType == CardTypeDebit && a.Balance.IsNegative() {
		return errors.New("debit account balance cannot be negative")
	}
	if a.CardType == CardTypeCredit {
		if !ValidCVV(a.CVV) {
			return errors.New("credit card must have a 3-digit CVV")
		}
		if a.CreditLimit.LessThanOrEqual(decimal.Zero) {
			return errors.New("credit card must have a positive credit limit")
		}
		if a.OutstandingBalance.GreaterThan(a.CreditLimit) {
			return errors.New("outstanding balance cannot exceed credit limit")
		}
	}
	return nil
}

// MaskCardNumber hides all but the last four digits for display and
// transaction notes.
func MaskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}

// MaskPhone hides the middle of a phone number, keeping the first three
// and last four digits.
func MaskPhone(phone string) string {
	if len(phone) < 8 {
		return phone
	}
	return phone[:3] + "****" + phone[len(phone)-4:]
}
