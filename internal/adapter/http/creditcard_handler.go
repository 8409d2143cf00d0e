package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
	"github.com/alienbank/bank-backend/internal/usecase/creditcard"
)

// CreditCardHandler serves the /credit-card routes
type CreditCardHandler struct {
	CreditCards *creditcard.CreditCardService
}

type creditPaymentRequest struct {
	CreditCardNumber      string  `json:"creditCardNumber" binding:"required"`
	PaymentAmount         float64 `json:"paymentAmount" binding:"required,gt=0"`
	PaymentMethod         string  `json:"paymentMethod" binding:"required"`
	SourceDebitCardNumber string  `json:"sourceDebitCardNumber"`
}

type creditPaymentView struct {
	CreditCardNumber   string    `json:"credit_card_number"`
	AmountApplied      float64   `json:"amount_applied"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	AvailableCredit    float64   `json:"available_credit"`
	PaidAt             time.Time `json:"paid_at"`
}

type spendView struct {
	CardNumber         string    `json:"card_number"`
	Amount             float64   `json:"amount"`
	AvailableCredit    float64   `json:"available_credit"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	SpentAt            time.Time `json:"spent_at"`
}

// Payment handles POST /credit-card/payment
func (h *CreditCardHandler) Payment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req creditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	receipt, err := h.CreditCards.MakePayment(c.Request.Context(), userID, creditcard.PaymentInput{
		CreditCardNumber:      req.CreditCardNumber,
		PaymentAmount:         decimal.NewFromFloat(req.PaymentAmount),
		PaymentMethod:         creditcard.PaymentMethod(req.PaymentMethod),
		SourceDebitCardNumber: req.SourceDebitCardNumber,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, creditPaymentView{
		CreditCardNumber:   receipt.CreditCardNumber,
		AmountApplied:      receipt.AmountApplied.InexactFloat64(),
		OutstandingBalance: receipt.OutstandingBalance.InexactFloat64(),
		AvailableCredit:    receipt.AvailableCredit.InexactFloat64(),
		PaidAt:             receipt.PaidAt,
	})
}

// Spend handles POST /credit-card/spend. The legacy client sends the
// parameters in the query string rather than a JSON body.
func (h *CreditCardHandler) Spend(c *gin.Context) {
	cardNumber := c.Query("cardNumber")
	cvv := c.Query("cvv")
	notes := c.Query("notes")

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		Fail(c, domain.ErrAmountNotPositive)
		return
	}

	receipt, err := h.CreditCards.Spend(c.Request.Context(), cardNumber, cvv,
		decimal.NewFromFloat(amount), notes)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, spendView{
		CardNumber:         receipt.CardNumber,
		Amount:             receipt.Amount.InexactFloat64(),
		AvailableCredit:    receipt.AvailableCredit.InexactFloat64(),
		OutstandingBalance: receipt.OutstandingBalance.InexactFloat64(),
		SpentAt:            receipt.SpentAt,
	})
}
