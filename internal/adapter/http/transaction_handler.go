package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
	"github.com/alienbank/bank-backend/internal/usecase/transaction"
)

// TransactionHandler serves the /transaction routes
type TransactionHandler struct {
	Transactions *transaction.TransactionService
}

type depositRequest struct {
	CardNumber string  `json:"card_number" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Notes      string  `json:"notes"`
}

type withdrawRequest struct {
	CardNumber string  `json:"card_number" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Notes      string  `json:"notes"`
}

type transferRequest struct {
	FromCardNumber string  `json:"from_card_number" binding:"required"`
	ToCardNumber   string  `json:"to_card_number" binding:"required"`
	Password       string  `json:"password" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Notes          string  `json:"notes"`
}

// Deposit handles POST /transaction/deposit
func (h *TransactionHandler) Deposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	tx, err := h.Transactions.Deposit(c.Request.Context(), transaction.DepositInput{
		CardNumber: req.CardNumber,
		Amount:     decimal.NewFromFloat(req.Amount),
		Notes:      req.Notes,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, transactionView(tx))
}

// Withdraw handles POST /transaction/withdraw
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	tx, err := h.Transactions.Withdraw(c.Request.Context(), transaction.WithdrawInput{
		CardNumber: req.CardNumber,
		Password:   req.Password,
		Amount:     decimal.NewFromFloat(req.Amount),
		Notes:      req.Notes,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, transactionView(tx))
}

// Transfer handles POST /transaction/transfer
func (h *TransactionHandler) Transfer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	outcome, err := h.Transactions.Transfer(c.Request.Context(), userID, domain.TransferIntent{
		FromCardNumber: req.FromCardNumber,
		ToCardNumber:   req.ToCardNumber,
		Password:       req.Password,
		Amount:         decimal.NewFromFloat(req.Amount),
		Notes:          req.Notes,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, transferView(outcome))
}

// History handles GET /transaction/history
func (h *TransactionHandler) History(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	entries, err := h.Transactions.UserHistory(c.Request.Context(), userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, historyViews(entries))
}

// AccountHistory handles GET /transaction/history/:accountId
func (h *TransactionHandler) AccountHistory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		Fail(c, domain.ErrNotFound)
		return
	}

	entries, err := h.Transactions.AccountHistory(c.Request.Context(), userID, accountID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, historyViews(entries))
}
