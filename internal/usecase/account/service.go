package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/alienbank/bank-backend/internal/domain"
)

// AccountService exposes a user's own accounts. Accounts are only ever
// created through the card-application flow, so there is no create
// operation here.
type AccountService struct {
	AccountRepo domain.AccountRepository
}

// NewAccountService creates a new AccountService instance
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{AccountRepo: accountRepo}
}

// ListMine returns every account owned by the user.
func (s *AccountService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	return s.AccountRepo.ListByUserID(ctx, userID)
}
