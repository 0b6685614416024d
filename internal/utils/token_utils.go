package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// CallerClaims is the bearer token issued by the identity collaborator.
// Subject is the user id; AccountID names the seller account the user owns.
type CallerClaims struct {
	jwt.RegisteredClaims
	AccountID    string   `json:"account_id,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Caller converts the claims into a domain.Caller, dropping unknown capabilities.
func (c *CallerClaims) Caller() domain.Caller {
	caller := domain.Caller{UserID: c.Subject, AccountID: c.AccountID}
	for _, raw := range c.Capabilities {
		switch capability := domain.Capability(raw); capability {
		case domain.CapabilityAccountOwner, domain.CapabilityAdministrator:
			caller.Capabilities = append(caller.Capabilities, capability)
		}
	}
	return caller
}

// GenerateJWT generates a new JWT token for caller.
func GenerateJWT(caller domain.Caller, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   caller.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		AccountID: caller.AccountID,
	}
	for _, capability := range caller.Capabilities {
		claims.Capabilities = append(claims.Capabilities, string(capability))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the CallerClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*CallerClaims, error) {
	claims := &CallerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
