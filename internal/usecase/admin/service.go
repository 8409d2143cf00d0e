package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// UserSummary is a user row in the admin console, with account totals
type UserSummary struct {
	*domain.User
	AccountCount int
	TotalBalance decimal.Decimal
}

// AccountSummary is an account row in the admin console, with its owner
// and activity count
type AccountSummary struct {
	*domain.Account
	OwnerName        string
	OwnerEmail       string
	TransactionCount int
}

// Statistics is the admin dashboard snapshot
type Statistics struct {
	TotalUsers          int64
	ActiveUsers         int64
	TotalAccounts       int64
	ActiveAccounts      int64
	TotalTransactions   int64
	TotalBalance        decimal.Decimal
	TodayTransactions   int64
	TodayVolume         decimal.Decimal
	TodayTransferVolume decimal.Decimal
	TodayFeeRevenue     decimal.Decimal
}

// AdminService backs the admin console: user and account oversight,
// freezing, and the statistics dashboard.
type AdminService struct {
	UserRepo        domain.UserRepository
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
}

// NewAdminService creates a new AdminService instance
func NewAdminService(userRepo domain.UserRepository, accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *AdminService {
	return &AdminService{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}

// ListUsers returns every user with their account count and combined
// debit balance.
func (s *AdminService) ListUsers(ctx context.Context) ([]*UserSummary, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*UserSummary, 0, len(users))
	for _, user := range users {
		accounts, err := s.AccountRepo.ListByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, account := range accounts {
			total = total.Add(account.Balance)
		}
		summaries = append(summaries, &UserSummary{
			User:         user,
			AccountCount: len(accounts),
			TotalBalance: total,
		})
	}
	return summaries, nil
}

// ListAccounts returns every account with its owner and transaction
// count.
func (s *AdminService) ListAccounts(ctx context.Context) ([]*AccountSummary, error) {
	accounts, err := s.AccountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[uuid.UUID]*domain.User)
	summaries := make([]*AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		owner, ok := owners[account.UserID]
		if !ok {
			owner, err = s.UserRepo.GetByID(ctx, account.UserID)
			if err != nil {
				return nil, err
			}
			owners[account.UserID] = owner
		}
		history, err := s.TransactionRepo.ListByAccountID(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &AccountSummary{
			Account:          account,
			OwnerName:        owner.Name,
			OwnerEmail:       owner.Email,
			TransactionCount: len(history),
		})
	}
	return summaries, nil
}

// ListTransactions returns the full ledger, newest first.
func (s *AdminService) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return s.TransactionRepo.List(ctx)
}

// SetUserActive freezes or unfreezes a user. A frozen user cannot log
// in; their accounts are untouched.
func (s *AdminService) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if _, err := s.UserRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.UserRepo.SetActive(ctx, userID, active)
}

// SetAccountActive freezes or unfreezes a single account. Frozen
// accounts reject withdrawals, transfers and credit spending.
func (s *AdminService) SetAccountActive(ctx context.Context, accountID uuid.UUID, active bool) error {
	if _, err := s.AccountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}
	return s.AccountRepo.SetActive(ctx, accountID, active)
}

// GetStatistics assembles the dashboard snapshot. Today's activity is
// measured from local midnight.
func (s *AdminService) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	var err error

	if stats.TotalUsers, err = s.UserRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.UserRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAccounts, err = s.AccountRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveAccounts, err = s.AccountRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalTransactions, err = s.TransactionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBalance, err = s.AccountRepo.TotalBalance(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	activity, err := s.TransactionRepo.ActivitySince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	stats.TodayTransactions = activity.Count
	stats.TodayVolume = activity.Amount
	stats.TodayTransferVolume = activity.TransferAmount
	stats.TodayFeeRevenue = domain.EstimatedFeeRevenue(activity.TransferAmount)

	return stats, nil
}
