package domain

import "errors"

// Local validation errors. These are resolved before any persistence or
// network work happens and map to 400 responses at the HTTP boundary.
var (
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrInsufficientReserve = errors.New("balance cannot cover amount plus transfer fee")
	ErrInvalidCardNumber   = errors.New("card number must be exactly 19 digits")
	ErrInvalidPassword     = errors.New("password must be exactly 6 digits")
	ErrSameAccount         = errors.New("cannot transfer to the same account")
	ErrNotesTooLong        = errors.New("notes cannot exceed 50 characters")
)

// Business errors surfaced by the services.
var (
	ErrNotFound       = errors.New("not found")
	ErrBadCredentials = errors.New("bad credentials")
	ErrLowBalance     = errors.New("insufficient balance")
	ErrNotAllowed     = errors.New("operation not allowed for this user")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrFrozen         = errors.New("account is frozen")
	ErrCodeInvalid    = errors.New("verification code is invalid or expired")
)
