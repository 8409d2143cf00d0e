package http

import (
	"github.com/gin-gonic/gin"

	passwordusecase "github.com/alienbank/bank-backend/internal/usecase/password"
)

// PasswordHandler serves the /password routes
type PasswordHandler struct {
	Passwords *passwordusecase.PasswordService
}

type changePasswordRequest struct {
	CardNumber  string `json:"cardNumber" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type sendCodeRequest struct {
	CardNumber  string `json:"cardNumber" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type verifyResetRequest struct {
	CardNumber       string `json:"cardNumber" binding:"required"`
	VerificationCode string `json:"verificationCode" binding:"required"`
}

// Change handles POST /password/change
func (h *PasswordHandler) Change(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	err := h.Passwords.Change(c.Request.Context(), userID, passwordusecase.ChangeInput{
		CardNumber:  req.CardNumber,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"message": "password changed"})
}

// SendCode handles POST /password/forgot/send-code
func (h *PasswordHandler) SendCode(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	challenge, err := h.Passwords.SendVerificationCode(c.Request.Context(), userID, passwordusecase.ResetRequestInput{
		CardNumber:  req.CardNumber,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{
		"message":    "verification code sent to " + challenge.MaskedPhone,
		"expires_at": challenge.ExpiresAt,
	})
}

// Verify handles POST /password/forgot/verify
func (h *PasswordHandler) Verify(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req verifyResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	err := h.Passwords.VerifyAndReset(c.Request.Context(), userID, req.CardNumber, req.VerificationCode)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"message": "password reset"})
}
