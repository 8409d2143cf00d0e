package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/alienbank/bank-backend/internal/domain"
)

// Envelope is the wire shape of every response. Data carries the
// payload on success; Errors carries either a message string or a
// field→message map on failure.
type Envelope struct {
	Status  int  `json:"status"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Errors  any  `json:"errors,omitempty"`
}

// OK writes a success envelope
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{
		Status:  http.StatusOK,
		Success: true,
		Data:    data,
	})
}

// Created writes a success envelope with a 201 status
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Status:  http.StatusCreated,
		Success: true,
		Data:    data,
	})
}

// Fail maps a service error onto the envelope. Validation problems
// surface as 400, credential and freeze problems as 401, missing
// entities as 404, duplicate registration as 409; anything
// unrecognized is a 500 with a generic message so internals never
// leak to the client.
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrAmountNotPositive),
		errors.Is(err, domain.ErrInsufficientReserve),
		errors.Is(err, domain.ErrInvalidCardNumber),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrNotesTooLong),
		errors.Is(err, domain.ErrLowBalance),
		errors.Is(err, domain.ErrCodeInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrBadCredentials),
		errors.Is(err, domain.ErrFrozen),
		errors.Is(err, domain.ErrNotAllowed):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	default:
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, Envelope{
		Status:  status,
		Success: false,
		Errors:  message,
	})
}

// BadRequest writes a 400 envelope. Binding errors from gin's
// validator are flattened into a field→message map; anything else is
// passed through as a plain string.
func BadRequest(c *gin.Context, err error) {
	var payload any = err.Error()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[strings.ToLower(fe.Field())] = bindingMessage(fe)
		}
		payload = fields
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Status:  http.StatusBadRequest,
		Success: false,
		Errors:  payload,
	})
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed on '" + fe.Tag() + "' validation"
	}
}
