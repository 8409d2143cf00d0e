package password

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alienbank/bank-backend/internal/domain"
)

// ChangeInput represents the input for an authenticated PIN change
type ChangeInput struct {
	CardNumber  string
	OldPassword string
	NewPassword string
}

// ResetRequestInput starts a forgot-password flow for a card
type ResetRequestInput struct {
	CardNumber  string
	NewPassword string
}

// ResetChallenge is handed back when a verification code is issued. The
// code itself is delivered out of band; only the masked destination is
// exposed to the caller.
type ResetChallenge struct {
	RequestID   uuid.UUID
	MaskedPhone string
	ExpiresAt   time.Time
}

// PasswordService handles card PIN changes and the code-verified
// forgot-password flow.
type PasswordService struct {
	AccountRepo domain.AccountRepository
	UserRepo    domain.UserRepository
	ResetRepo   domain.PasswordResetRepository

	// DeliverCode sends a verification code to the user, by SMS in
	// production. Tests swap it out.
	DeliverCode func(phone, code string)
}

// NewPasswordService creates a new PasswordService instance
func NewPasswordService(accountRepo domain.AccountRepository, userRepo domain.UserRepository, resetRepo domain.PasswordResetRepository) *PasswordService {
	return &PasswordService{
		AccountRepo: accountRepo,
		UserRepo:    userRepo,
		ResetRepo:   resetRepo,
	}
}

// Change replaces the PIN on a card the caller owns, after verifying
// the current one.
func (s *PasswordService) Change(ctx context.Context, userID uuid.UUID, input ChangeInput) error {
	if !domain.ValidCardPassword(input.NewPassword) {
		return domain.ErrInvalidPassword
	}

	account, err := s.AccountRepo.GetByCardNumber(ctx, input.CardNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrBadCredentials
		}
		return err
	}
	if account.UserID != userID {
		return domain.ErrNotAllowed
	}
	if account.Password != input.OldPassword {
		return domain.ErrBadCredentials
	}

	return s.AccountRepo.UpdatePassword(ctx, account.ID, input.NewPassword)
}

// SendVerificationCode starts a reset on a card the caller owns: it
// records the desired new PIN alongside a fresh 6-digit code and
// delivers the code to the account holder's phone. The caller only
// learns the masked number.
func (s *PasswordService) SendVerificationCode(ctx context.Context, userID uuid.UUID, input ResetRequestInput) (*ResetChallenge, error) {
	if !domain.ValidCardNumber(input.CardNumber) {
		return nil, domain.ErrInvalidCardNumber
	}
	if !domain.ValidCardPassword(input.NewPassword) {
		return nil, domain.ErrInvalidPassword
	}

	account, err := s.AccountRepo.GetByCardNumber(ctx, input.CardNumber)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrNotAllowed
	}
	owner, err := s.UserRepo.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req := &domain.PasswordResetRequest{
		ID:               uuid.New(),
		AccountID:        account.ID,
		VerificationCode: domain.GenerateVerificationCode(),
		NewPassword:      input.NewPassword,
		RequestTime:      now,
		ExpiryTime:       now.Add(domain.PasswordResetTTL),
	}
	if err := s.ResetRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if s.DeliverCode != nil {
		s.DeliverCode(owner.Phone, req.VerificationCode)
	}

	return &ResetChallenge{
		RequestID:   req.ID,
		MaskedPhone: domain.MaskPhone(owner.Phone),
		ExpiresAt:   req.ExpiryTime,
	}, nil
}

// VerifyAndReset redeems a verification code for a card the caller
// owns: the matching unexpired request is consumed and its stored new
// PIN applied to the card.
func (s *PasswordService) VerifyAndReset(ctx context.Context, userID uuid.UUID, cardNumber, code string) error {
	if !domain.ValidVerificationCode(code) {
		return domain.ErrCodeInvalid
	}

	account, err := s.AccountRepo.GetByCardNumber(ctx, cardNumber)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return domain.ErrNotAllowed
	}

	req, err := s.ResetRepo.FindValid(ctx, account.ID, code, time.Now())
	if err != nil {
		return err
	}

	if err := s.AccountRepo.UpdatePassword(ctx, account.ID, req.NewPassword); err != nil {
		return err
	}
	return s.ResetRepo.MarkUsed(ctx, req.ID)
}

// CleanExpired drops reset requests past their expiry. Run by the
// maintenance loop.
func (s *PasswordService) CleanExpired(ctx context.Context) error {
	return s.ResetRepo.DeleteExpired(ctx, time.Now())
}
