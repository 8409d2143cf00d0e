package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alienbank/bank-backend/internal/domain"
	adminusecase "github.com/alienbank/bank-backend/internal/usecase/admin"
)

// AdminHandler serves the /admin routes
type AdminHandler struct {
	Admin *adminusecase.AdminService
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	summaries, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, userSummaryViews(summaries))
}

// ListAccounts handles GET /admin/accounts
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	summaries, err := h.Admin.ListAccounts(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, accountSummaryViews(summaries))
}

// ListTransactions handles GET /admin/transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	txs, err := h.Admin.ListTransactions(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, transactionView(tx))
	}
	OK(c, views)
}

// SetUserActive handles PUT /admin/users/:id/freeze and /unfreeze
func (h *AdminHandler) SetUserActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			Fail(c, domain.ErrNotFound)
			return
		}

		if err := h.Admin.SetUserActive(c.Request.Context(), userID, active); err != nil {
			Fail(c, err)
			return
		}

		OK(c, gin.H{"is_active": active})
	}
}

// SetAccountActive handles PUT /admin/accounts/:id/freeze and /unfreeze
func (h *AdminHandler) SetAccountActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			Fail(c, domain.ErrNotFound)
			return
		}

		if err := h.Admin.SetAccountActive(c.Request.Context(), accountID, active); err != nil {
			Fail(c, err)
			return
		}

		OK(c, gin.H{"is_active": active})
	}
}

// Statistics handles GET /admin/statistics
func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.Admin.GetStatistics(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, statisticsView(stats))
}
