package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerhub/frontdesk/types"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields of a session token the client cares about.
type Claims struct {
	Subject   string
	Role      types.Role
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// TokenClaims decodes a session token WITHOUT verifying its signature. The
// result is a display hint only; the server remains the authority.
func TokenClaims(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, errors.New("empty token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	var out Claims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if out.Subject == "" {
		if id, ok := claims["id"].(string); ok {
			out.Subject = id
		}
	}
	if raw, ok := claims["role"].(string); ok {
		if role, ok := types.ParseRole(raw); ok {
			out.Role = role
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
