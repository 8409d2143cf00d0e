package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
	loanusecase "github.com/alienbank/bank-backend/internal/usecase/loan"
)

// LoanHandler serves the /loan routes
type LoanHandler struct {
	Loans *loanusecase.LoanService
}

type loanApplyRequest struct {
	RequestedAmount float64 `json:"requestedAmount" binding:"required,gt=0"`
	LoanTermMonths  int     `json:"loanTermMonths" binding:"required,gt=0"`
	LoanPurpose     string  `json:"loanPurpose"`
	MonthlyIncome   float64 `json:"monthlyIncome" binding:"required,gt=0"`
	ExistingDebt    float64 `json:"existingDebt"`
}

type loanProcessRequest struct {
	Status         string   `json:"status" binding:"required"`
	ApprovedAmount *float64 `json:"approvedAmount"`
	InterestRate   *float64 `json:"interestRate"`
	AdminNotes     string   `json:"adminNotes"`
}

type loanPaymentView struct {
	LoanID             uuid.UUID `json:"loan_id"`
	AmountApplied      float64   `json:"amount_applied"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	RemainingTerms     int       `json:"remaining_terms"`
	PaidOff            bool      `json:"paid_off"`
	PaidAt             time.Time `json:"paid_at"`
}

// Apply handles POST /loan/apply
func (h *LoanHandler) Apply(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req loanApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	app, err := h.Loans.Apply(c.Request.Context(), userID, loanusecase.ApplyInput{
		RequestedAmount: decimal.NewFromFloat(req.RequestedAmount),
		LoanTermMonths:  req.LoanTermMonths,
		LoanPurpose:     req.LoanPurpose,
		MonthlyIncome:   decimal.NewFromFloat(req.MonthlyIncome),
		ExistingDebt:    decimal.NewFromFloat(req.ExistingDebt),
	})
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, loanApplicationView(app))
}

// ListMine handles GET /loan/my
func (h *LoanHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	apps, err := h.Loans.ListMine(c.Request.Context(), userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, loanApplicationViews(apps))
}

// ActiveLoans handles GET /loan/active
func (h *LoanHandler) ActiveLoans(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	loans, err := h.Loans.ActiveLoans(c.Request.Context(), userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, loanViews(loans))
}

// ListAll handles GET /loan (admin)
func (h *LoanHandler) ListAll(c *gin.Context) {
	apps, err := h.Loans.ListAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, loanApplicationViews(apps))
}

// ListPending handles GET /loan/pending (admin)
func (h *LoanHandler) ListPending(c *gin.Context) {
	apps, err := h.Loans.ListPending(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, loanApplicationViews(apps))
}

// Process handles POST /loan/:id/process (admin)
func (h *LoanHandler) Process(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Fail(c, domain.ErrNotFound)
		return
	}

	var req loanProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	input := loanusecase.ProcessInput{
		Status:     domain.ApplicationStatus(req.Status),
		AdminNotes: req.AdminNotes,
	}
	if req.ApprovedAmount != nil {
		d := decimal.NewFromFloat(*req.ApprovedAmount)
		input.ApprovedAmount = &d
	}
	if req.InterestRate != nil {
		d := decimal.NewFromFloat(*req.InterestRate)
		input.InterestRate = &d
	}

	app, err := h.Loans.Process(c.Request.Context(), adminID, applicationID, input)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, loanApplicationView(app))
}

// Payment handles POST /loan/:id/payment. The legacy client sends the
// amount as a query parameter.
func (h *LoanHandler) Payment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Fail(c, domain.ErrNotFound)
		return
	}

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		Fail(c, domain.ErrAmountNotPositive)
		return
	}

	receipt, err := h.Loans.MakePayment(c.Request.Context(), userID, loanID, decimal.NewFromFloat(amount))
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, loanPaymentView{
		LoanID:             receipt.LoanID,
		AmountApplied:      receipt.AmountApplied.InexactFloat64(),
		OutstandingBalance: receipt.OutstandingBalance.InexactFloat64(),
		RemainingTerms:     receipt.RemainingTerms,
		PaidOff:            receipt.PaidOff,
		PaidAt:             receipt.PaidAt,
	})
}
