package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the backend puts in its access tokens.
type Claims struct {
	UserID    int64
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"id"`
}

// ParseClaims reads the claims of token without verifying its signature:
// the client does not hold the signing key and uses the claims for display
// and expiry hints only. The backend stays the authority on validity.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	c := Claims{UserID: tc.UserID}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether the claims carry an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
