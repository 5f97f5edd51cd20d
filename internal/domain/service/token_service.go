package service

import (
	"folks/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a bearer token.
type Claims struct {
	User entity.Principal `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// Issue signs a token for the principal with the configured expiry.
	Issue(principal entity.Principal) (string, error)

	// Verify parses a raw token and returns its claims only when the
	// signature, algorithm and expiry all check out.
	Verify(token string) (*Claims, error)
}
