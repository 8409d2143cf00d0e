package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationStatus tracks the review state of a card or loan application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// MaxApplicationReasonLen bounds the free-text reason on an application.
const MaxApplicationReasonLen = 500

// CardApplication is a user request for a new card, subject to admin
// approval. On approval the generated card number is recorded so the
// applicant can find their new account.
type CardApplication struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	PreferredPassword    string // PIN the new card will be issued with
	CardType             CardType
	RequestedCreditLimit *decimal.Decimal // credit cards only
	ApplicationReason    string
	Status               ApplicationStatus
	ApplicationDate      time.Time
	ProcessedDate        *time.Time
	ProcessedBy          *uuid.UUID
	AdminNotes           string
	GeneratedCardNumber  string
}

// Validate ensures the application adheres to domain rules
func (a *CardApplication) Validate() error {
	if !ValidCardPassword(a.PreferredPassword) {
		return ErrInvalidPassword
	}
	if a.CardType != CardTypeDebit && a.CardType != CardTypeCredit {
		return errors.New("card type must be DEBIT or CREDIT")
	}
	if len(a.ApplicationReason) > MaxApplicationReasonLen {
		return errors.New("application reason cannot exceed 500 characters")
	}
	if a.RequestedCreditLimit != nil && a.RequestedCreditLimit.LessThanOrEqual(decimal.Zero) {
		return errors.New("requested credit limit must be positive")
	}
	return nil
}
