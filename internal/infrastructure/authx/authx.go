package authx

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// NewVerifier returns the HS256 verifier used by the HTTP middleware.
func NewVerifier(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// Subject returns the user ID carried by the verified token in ctx.
func Subject(ctx context.Context) (string, bool) {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return "", false
	}
	sub := token.Subject()
	return sub, sub != ""
}

// Minter signs development tokens with the same secret the API verifies.
type Minter struct {
	secret []byte
	now    func() time.Time
}

func NewMinter(secret string) *Minter {
	return &Minter{secret: []byte(secret), now: time.Now}
}

func (m *Minter) Mint(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("authx: empty subject")
	}
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("authx: sign: %w", err)
	}
	return signed, nil
}
