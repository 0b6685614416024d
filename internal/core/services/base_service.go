package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// ServiceOption is a functional option shared by the services in this package
type ServiceOption func(*BaseService)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{now: func() time.Time { return time.Now().UTC() }}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a rejected or retryable outcome
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()), slog.String("kind", apperrors.Kind(err)))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogOutcome logs err at a level matching its kind: caller mistakes and
// transient faults are warnings, everything else is an error.
func (s *BaseService) LogOutcome(ctx context.Context, err error, msg string, keyvals ...any) {
	switch apperrors.Kind(err) {
	case "invariant_violation", "internal":
		s.LogError(ctx, err, msg, keyvals...)
	default:
		s.LogWarn(ctx, err, msg, keyvals...)
	}
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireOwner checks that the caller owns accountID.
func (s *BaseService) RequireOwner(caller domain.Caller, accountID string) error {
	if !caller.Owns(accountID) {
		return fmt.Errorf("%w: caller %s does not own account %s", apperrors.ErrForbidden, caller.UserID, accountID)
	}
	return nil
}

// RequireReader checks that the caller may read data of accountID.
func (s *BaseService) RequireReader(caller domain.Caller, accountID string) error {
	if !caller.CanRead(accountID) {
		return fmt.Errorf("%w: caller %s may not read account %s", apperrors.ErrForbidden, caller.UserID, accountID)
	}
	return nil
}

// RequireAdministrator checks that the caller is an administrator.
func (s *BaseService) RequireAdministrator(caller domain.Caller) error {
	if !caller.IsAdministrator() {
		return fmt.Errorf("%w: caller %s is not an administrator", apperrors.ErrForbidden, caller.UserID)
	}
	return nil
}

// scopeListParams restricts non-administrators to their own account.
func (s *BaseService) scopeListParams(caller domain.Caller, params domain.ListParams) (domain.ListParams, error) {
	if caller.IsAdministrator() {
		return params, nil
	}
	if params.AccountID == "" {
		params.AccountID = caller.AccountID
	}
	if err := s.RequireOwner(caller, params.AccountID); err != nil {
		return params, err
	}
	return params, nil
}
