package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with 503 responses caused by lock contention.
const retryAfterSeconds = "1"

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrAlreadyProcessed):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInsufficientCredit):
		return http.StatusUnprocessableEntity
	case apperrors.IsRetryable(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a dto.ErrorResponse. Internal failures are logged
// and their details hidden from the client.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	body := dto.ErrorResponse{Error: err.Error(), Code: apperrors.Kind(err)}
	switch {
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		logger.Error(msg, slog.String("error", err.Error()))
		body.Error = "Internal server error"
	case status == http.StatusServiceUnavailable:
		logger.Warn(msg, slog.String("error", err.Error()))
		c.Header("Retry-After", retryAfterSeconds)
	default:
		logger.Debug(msg, slog.String("error", err.Error()), slog.String("code", body.Code))
	}
	c.JSON(status, body)
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request: " + err.Error(),
		Code:  apperrors.Kind(apperrors.ErrValidation),
	})
}

// callerOrAbort returns the authenticated caller or writes a 401.
func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: apperrors.Kind(apperrors.ErrUnauthorized)})
		return domain.Caller{}, false
	}
	return caller, true
}

// toDomainListParams converts pagination query parameters.
func toDomainListParams(p dto.ListParams) domain.ListParams {
	params := domain.ListParams{AccountID: p.AccountID, Limit: p.Limit}
	if p.NextToken != "" {
		token := p.NextToken
		params.NextToken = &token
	}
	return params
}
