package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetTTL is how long a verification code stays valid.
const PasswordResetTTL = 10 * time.Minute

// PasswordResetRequest records a forgot-password flow in progress: the
// desired new PIN is captured up front and only applied once the
// matching verification code is presented before expiry.
type PasswordResetRequest struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	VerificationCode string
	NewPassword      string
	RequestTime      time.Time
	ExpiryTime       time.Time
	IsUsed           bool
}

// Usable reports whether the request can still redeem a reset at time now.
func (r *PasswordResetRequest) Usable(now time.Time) bool {
	return !r.IsUsed && now.Before(r.ExpiryTime)
}
