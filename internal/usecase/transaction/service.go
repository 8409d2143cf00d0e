package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
)

// DepositInput represents the input for a cash deposit
type DepositInput struct {
	CardNumber string
	Amount     decimal.Decimal
	Notes      string
}

// WithdrawInput represents the input for a cash withdrawal
type WithdrawInput struct {
	CardNumber string
	Password   string
	Amount     decimal.Decimal
	Notes      string
}

// HistoryEntry is a transaction row joined with the card it belongs to,
// shaped for the history views.
type HistoryEntry struct {
	*domain.Transaction
	CardNumber string
}

// TransactionService handles deposits, withdrawals, transfers and
// history queries.
type TransactionService struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService instance
func NewTransactionService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}

// Deposit credits an account identified by card number. No PIN is
// required to pay money in.
func (s *TransactionService) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	account, err := s.AccountRepo.GetByCardNumber(ctx, input.CardNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	return s.TransactionRepo.RecordDeposit(ctx, account.ID, input.Amount, input.Notes)
}

// Withdraw debits an account after verifying its PIN.
func (s *TransactionService) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	account, err := s.AccountRepo.GetByCardNumber(ctx, input.CardNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if account.Password != input.Password {
		return nil, domain.ErrBadCredentials
	}
	if !account.IsActive {
		return nil, domain.ErrFrozen
	}
	if account.Balance.LessThan(input.Amount) {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s",
			domain.ErrLowBalance, account.Balance, input.Amount)
	}

	return s.TransactionRepo.RecordWithdrawal(ctx, account.ID, input.Amount, input.Notes)
}

// Transfer moves money between two accounts. The debit of the source
// (amount plus fee), the credit of the destination and both history
// rows commit as one database transaction; the client-side preview rule
// is re-run here against the live balance, so nothing the client
// computed is trusted.
func (s *TransactionService) Transfer(ctx context.Context, userID uuid.UUID, intent domain.TransferIntent) (*domain.TransferOutcome, error) {
	fromAccount, err := s.AccountRepo.GetByCardNumber(ctx, intent.FromCardNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if fromAccount.Password != intent.Password {
		return nil, domain.ErrBadCredentials
	}
	if fromAccount.UserID != userID {
		return nil, domain.ErrNotAllowed
	}

	toAccount, err := s.AccountRepo.GetByCardNumber(ctx, intent.ToCardNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("destination account: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	if !fromAccount.IsActive || !toAccount.IsActive {
		return nil, domain.ErrFrozen
	}

	if err := intent.Validate(fromAccount.Balance); err != nil {
		return nil, err
	}

	fee := domain.TransferFee(intent.Amount)
	fromNotes := fmt.Sprintf("Transfer to %s", domain.MaskCardNumber(toAccount.CardNumber))
	toNotes := fmt.Sprintf("Received from %s", domain.MaskCardNumber(fromAccount.CardNumber))
	if intent.Notes != "" {
		fromNotes += " - " + intent.Notes
		toNotes += " - " + intent.Notes
	}
	fromNotes += fmt.Sprintf(" (fee %s)", fee)

	tx, err := s.TransactionRepo.RecordTransfer(ctx,
		fromAccount.ID, toAccount.ID, intent.Amount, fee, fromNotes, toNotes)
	if err != nil {
		return nil, err
	}

	return &domain.TransferOutcome{
		TransferID:       tx.ID,
		FromCardNumber:   domain.MaskCardNumber(fromAccount.CardNumber),
		ToCardNumber:     domain.MaskCardNumber(toAccount.CardNumber),
		Amount:           intent.Amount,
		Fee:              fee,
		FromBalanceAfter: tx.BalanceAfter,
		Notes:            intent.Notes,
		Timestamp:        tx.Timestamp,
	}, nil
}

// UserHistory returns every transaction across the user's accounts,
// newest first.
func (s *TransactionService) UserHistory(ctx context.Context, userID uuid.UUID) ([]HistoryEntry, error) {
	accounts, err := s.AccountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cardsByID := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		cardsByID[a.ID] = a.CardNumber
	}

	transactions, err := s.TransactionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(transactions))
	for _, tx := range transactions {
		entries = append(entries, HistoryEntry{
			Transaction: tx,
			CardNumber:  cardsByID[tx.AccountID],
		})
	}
	return entries, nil
}

// AccountHistory returns the transactions of one account after checking
// it belongs to the caller.
func (s *TransactionService) AccountHistory(ctx context.Context, userID, accountID uuid.UUID) ([]HistoryEntry, error) {
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrNotAllowed
	}

	transactions, err := s.TransactionRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(transactions))
	for _, tx := range transactions {
		entries = append(entries, HistoryEntry{Transaction: tx, CardNumber: account.CardNumber})
	}
	return entries, nil
}
