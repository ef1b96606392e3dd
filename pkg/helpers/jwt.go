package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
)

// TokenService issues and verifies HS256 bearer tokens. The subject claim
// carries the user's email. The secret is fixed for the life of the process;
// rotating it invalidates every token issued before.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock swaps the time source. Meant for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL is the default lifetime used when Issue gets a non-positive ttl.
func (s *TokenService) TTL() time.Duration { return s.ttl }

type Claims struct {
	jwt.RegisteredClaims
}

// Issue signs a token for subject valid for ttl.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	exp := now.Add(ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	return signed, exp, err
}

// Verify checks tokenStr and returns its subject. Expiry is evaluated before
// the signature, so an expired token reports ErrExpiredToken even when it was
// also tampered with.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	parser := s.parser()

	unverified := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenStr, unverified); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if unverified.ExpiresAt == nil {
		return "", fmt.Errorf("%w: missing exp", ErrMalformedToken)
	}
	if !s.now().Before(unverified.ExpiresAt.Time) {
		return "", ErrExpiredToken
	}

	claims := &Claims{}
	tkn, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", classify(err)
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}

func (s *TokenService) parser() *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	return jwt.NewParser(opts...)
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
