package auth

import (
	"time"

	"folks/config"
	"folks/internal/domain/entity"
	"folks/internal/domain/service"
	"folks/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidClaims is returned for a well-signed token whose payload does not
// carry a usable principal.
var ErrInvalidClaims = errors.New("token claims do not carry a principal")

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are always HS256; nothing else is issued or accepted.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// A missing secret is a startup error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.JWT.Expiry
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &jwtService{
		secret: []byte(cfg.JWT.Secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Issue creates a signed token carrying the principal, with sub set to the username.
func (s *jwtService) Issue(principal entity.Principal) (string, error) {
	if principal.Username == "" {
		return "", errors.New("cannot issue a token without a username")
	}

	now := time.Now()
	claims := service.Claims{
		User: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the validity of a token string and returns its claims.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// WithValidMethods already pins HS256; this keeps the key from ever
		// being handed to a non-HMAC verifier.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.WithStack(jwt.ErrTokenSignatureInvalid)
	}

	if claims.User.Username == "" || claims.Subject != claims.User.Username {
		return nil, errors.WithStack(ErrInvalidClaims)
	}

	return claims, nil
}
