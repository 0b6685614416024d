package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
)

// MaxExternalIDLength bounds the phone number length.
const MaxExternalIDLength = 20

// Target is a recipient of charge sales, e.g. a phone number. Its balance
// only ever grows and is changed exclusively by charge sales.
type Target struct {
	TargetID      string     `json:"targetID"`
	ExternalID    string     `json:"externalID"` // digits only
	Balance       int64      `json:"balance"`
	LastChargedAt *time.Time `json:"lastChargedAt,omitempty"`
	AuditFields
}

// IsDigits reports whether s is a non-empty string of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateExternalID checks a target's external identifier.
func ValidateExternalID(externalID string) error {
	if !IsDigits(externalID) {
		return fmt.Errorf("%w: external id must contain only digits", apperrors.ErrValidation)
	}
	if len(externalID) > MaxExternalIDLength {
		return fmt.Errorf("%w: external id must be at most %d digits", apperrors.ErrValidation, MaxExternalIDLength)
	}
	return nil
}
