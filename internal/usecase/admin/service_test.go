package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/alienbank/bank-backend/internal/domain"
)

func TestListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	accountRepo := new(MockAccountRepository)
	txRepo := new(MockTransactionRepository)
	service := NewAdminService(userRepo, accountRepo, txRepo)

	alice := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", IsActive: true}
	bob := &domain.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", IsActive: true}

	userRepo.On("List", mock.Anything).Return([]*domain.User{alice, bob}, nil)
	accountRepo.On("ListByUserID", mock.Anything, alice.ID).Return([]*domain.Account{
		{ID: uuid.New(), UserID: alice.ID, Balance: decimal.NewFromInt(1000)},
		{ID: uuid.New(), UserID: alice.ID, Balance: decimal.NewFromInt(250)},
	}, nil)
	accountRepo.On("ListByUserID", mock.Anything, bob.ID).Return([]*domain.Account{}, nil)

	summaries, err := service.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].AccountCount)
	assert.True(t, summaries[0].TotalBalance.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, 0, summaries[1].AccountCount)
	assert.True(t, summaries[1].TotalBalance.IsZero())
}

func TestListAccounts(t *testing.T) {
	userRepo := new(MockUserRepository)
	accountRepo := new(MockAccountRepository)
	txRepo := new(MockTransactionRepository)
	service := NewAdminService(userRepo, accountRepo, txRepo)

	owner := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	first := &domain.Account{ID: uuid.New(), UserID: owner.ID}
	second := &domain.Account{ID: uuid.New(), UserID: owner.ID}

	accountRepo.On("List", mock.Anything).Return([]*domain.Account{first, second}, nil)
	userRepo.On("GetByID", mock.Anything, owner.ID).Return(owner, nil).Once()
	txRepo.On("ListByAccountID", mock.Anything, first.ID).Return([]*domain.Transaction{{}, {}, {}}, nil)
	txRepo.On("ListByAccountID", mock.Anything, second.ID).Return([]*domain.Transaction{}, nil)

	summaries, err := service.ListAccounts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, "Alice", summaries[0].OwnerName)
	assert.Equal(t, 3, summaries[0].TransactionCount)
	assert.Equal(t, 0, summaries[1].TransactionCount)
	// owner fetched once despite two accounts
	userRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestSetUserActive_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	accountRepo := new(MockAccountRepository)
	txRepo := new(MockTransactionRepository)
	service := NewAdminService(userRepo, accountRepo, txRepo)

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	err := service.SetUserActive(context.Background(), userID, false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	userRepo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStatistics(t *testing.T) {
	userRepo := new(MockUserRepository)
	accountRepo := new(MockAccountRepository)
	txRepo := new(MockTransactionRepository)
	service := NewAdminService(userRepo, accountRepo, txRepo)

	userRepo.On("Count", mock.Anything).Return(int64(10), nil)
	userRepo.On("CountActive", mock.Anything).Return(int64(9), nil)
	accountRepo.On("Count", mock.Anything).Return(int64(15), nil)
	accountRepo.On("CountActive", mock.Anything).Return(int64(14), nil)
	txRepo.On("Count", mock.Anything).Return(int64(200), nil)
	accountRepo.On("TotalBalance", mock.Anything).Return(decimal.NewFromInt(500000), nil)
	txRepo.On("ActivitySince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		now := time.Now()
		return since.Hour() == 0 && since.Minute() == 0 && since.Day() == now.Day()
	})).Return(&domain.TransactionActivity{
		Count:          12,
		Amount:         decimal.NewFromInt(30000),
		TransferAmount: decimal.NewFromInt(20000),
	}, nil)

	stats, err := service.GetStatistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(14), stats.ActiveAccounts)
	assert.Equal(t, int64(12), stats.TodayTransactions)
	assert.True(t, stats.TodayTransferVolume.Equal(decimal.NewFromInt(20000)))
	// 0.5% of 20000
	assert.True(t, stats.TodayFeeRevenue.Equal(decimal.NewFromInt(100)))
}
