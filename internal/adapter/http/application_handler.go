package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alienbank/bank-backend/internal/domain"
	"github.com/alienbank/bank-backend/internal/usecase/application"
)

// ApplicationHandler serves the /application routes
type ApplicationHandler struct {
	Applications *application.CardApplicationService
}

type submitApplicationRequest struct {
	PreferredPassword    string   `json:"preferredPassword" binding:"required"`
	CardType             string   `json:"cardType"`
	RequestedCreditLimit *float64 `json:"requestedCreditLimit"`
	ApplicationReason    string   `json:"applicationReason"`
}

type processApplicationRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

// Submit handles POST /application/submit
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	input := application.SubmitInput{
		PreferredPassword: req.PreferredPassword,
		CardType:          domain.CardType(req.CardType),
		ApplicationReason: req.ApplicationReason,
	}
	if req.RequestedCreditLimit != nil {
		limit := decimal.NewFromFloat(*req.RequestedCreditLimit)
		input.RequestedCreditLimit = &limit
	}

	app, err := h.Applications.Submit(c.Request.Context(), userID, input)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, cardApplicationView(app))
}

// ListMine handles GET /application/my
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	apps, err := h.Applications.ListMine(c.Request.Context(), userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, cardApplicationViews(apps))
}

// ListAll handles GET /application (admin)
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	apps, err := h.Applications.ListAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, cardApplicationViews(apps))
}

// ListPending handles GET /application/pending (admin)
func (h *ApplicationHandler) ListPending(c *gin.Context) {
	apps, err := h.Applications.ListPending(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, cardApplicationViews(apps))
}

// Process handles POST /application/:id/process (admin)
func (h *ApplicationHandler) Process(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Fail(c, domain.ErrNotFound)
		return
	}

	var req processApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	app, err := h.Applications.Process(c.Request.Context(), adminID, applicationID, application.ProcessInput{
		Status:     domain.ApplicationStatus(req.Status),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, cardApplicationView(app))
}
