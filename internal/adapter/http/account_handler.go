package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountusecase "github.com/alienbank/bank-backend/internal/usecase/account"
)

// AccountHandler serves the /account routes
type AccountHandler struct {
	Accounts *accountusecase.AccountService
}

// List handles GET /account
func (h *AccountHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	accounts, err := h.Accounts.ListMine(c.Request.Context(), userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, accountViews(accounts))
}

// callerID extracts the authenticated user's id, writing the error
// response itself when the claims are unusable
func callerID(c *gin.Context) (uuid.UUID, bool) {
	claims := ClaimsFrom(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
			Status:  http.StatusUnauthorized,
			Success: false,
			Errors:  "authentication required",
		})
		return uuid.Nil, false
	}
	userID, err := claims.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
			Status:  http.StatusUnauthorized,
			Success: false,
			Errors:  "invalid token subject",
		})
		return uuid.Nil, false
	}
	return userID, true
}
