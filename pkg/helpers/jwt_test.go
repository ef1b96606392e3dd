package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", "fitness-tracker", 30*time.Minute)

	tok, exp, err := svc.Issue("a@x.com", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	sub, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", sub)
}

func TestTokenServiceExpired(t *testing.T) {
	issuedAt := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", "", time.Minute).WithClock(fixedClock(issuedAt))

	tok, _, err := svc.Issue("a@x.com", time.Minute)
	require.NoError(t, err)

	svc.WithClock(fixedClock(issuedAt.Add(2 * time.Minute)))
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenServiceExpiresAtExactInstant(t *testing.T) {
	issuedAt := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", "", time.Minute).WithClock(fixedClock(issuedAt))

	tok, exp, err := svc.Issue("a@x.com", time.Minute)
	require.NoError(t, err)

	svc.WithClock(fixedClock(exp.Add(-time.Second)))
	_, err = svc.Verify(tok)
	require.NoError(t, err)

	svc.WithClock(fixedClock(exp))
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenServiceExpiredWinsOverBadSignature(t *testing.T) {
	issuedAt := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService("other-secret", "", time.Minute).WithClock(fixedClock(issuedAt))
	tok, _, err := issuer.Issue("a@x.com", time.Minute)
	require.NoError(t, err)

	verifier := NewTokenService("test-secret", "", time.Minute).WithClock(fixedClock(issuedAt.Add(time.Hour)))
	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenServiceWrongSecret(t *testing.T) {
	tok, _, err := NewTokenService("other-secret", "", time.Hour).Issue("a@x.com", 0)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", "", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenServiceTamperedPayload(t *testing.T) {
	svc := NewTokenService("test-secret", "", time.Hour)
	tok, _, err := svc.Issue("a@x.com", 0)
	require.NoError(t, err)

	forged, _, err := NewTokenService("test-secret", "", time.Hour).Issue("b@x.com", 0)
	require.NoError(t, err)

	// header and payload of the forged token, signature of the original
	parts := strings.Split(tok, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := forgedParts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = svc.Verify(spliced)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenServiceRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", "", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenServiceMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", "", time.Hour)

	for _, tok := range []string{"", "abc", "a.b.c", "not.a.jwt.at.all"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", tok)
	}
}

func TestTokenServiceMissingExpiry(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", "", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenServiceIssuerMismatch(t *testing.T) {
	tok, _, err := NewTokenService("test-secret", "someone-else", time.Hour).Issue("a@x.com", 0)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", "fitness-tracker", time.Hour).Verify(tok)
	assert.Error(t, err)
}
