package auth

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-that-is-at-least-64-characters-long-for-hs512-algorithm")

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30d", 30 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"45m", 45 * time.Minute},
		{"90s", 90 * time.Second},
		{"1y", 365 * 24 * time.Hour},
		{"365d", 365 * 24 * time.Hour},
		{"0s", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "30", "d", "1w", "1d2h", "-1d", " 1d", "1.5h"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDuration(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Invalid duration format: "+in)
			assert.Contains(t, err.Error(), "30d, 12h, 1y, 365d")
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Now()
	token, err := Issue(testSecret, "user@example.com", 24*time.Hour, now)
	require.NoError(t, err)

	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email())
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())
}

func TestIssue_Errors(t *testing.T) {
	_, err := Issue(nil, "user@example.com", time.Hour, time.Now())
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = Issue(testSecret, "", time.Hour, time.Now())
	assert.Error(t, err)

	_, err = NewVerifier(nil)
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Equal(t, "JWT_SECRET is required when authentication is enabled", ErrMissingSecret.Error())
}

func TestVerify_Rejects(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, secret []byte, claims jwt.RegisteredClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
		require.NoError(t, err)
		return s
	}
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Subject:   "user@example.com",
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	expired := valid
	expired.IssuedAt = jwt.NewNumericDate(now.Add(-48 * time.Hour))
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-24 * time.Hour))

	wrongIssuer := valid
	wrongIssuer.Issuer = "wrong-issuer"

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", sign(jwt.SigningMethodHS512, testSecret, expired)},
		{"wrong issuer", sign(jwt.SigningMethodHS512, testSecret, wrongIssuer)},
		{"wrong secret", sign(jwt.SigningMethodHS512, []byte("another-secret-entirely"), valid)},
		{"wrong algorithm", sign(jwt.SigningMethodHS256, testSecret, valid)},
		{"no expiry", sign(jwt.SigningMethodHS512, testSecret, noExpiry)},
		{"no subject", sign(jwt.SigningMethodHS512, testSecret, noSubject)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestVerify_InjectedClock(t *testing.T) {
	issuedAt := time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	token, err := Issue(testSecret, "user@example.com", time.Hour, issuedAt)
	require.NoError(t, err)

	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	v.now = func() time.Time { return issuedAt.Add(30 * time.Minute) }
	_, err = v.Verify(token)
	require.NoError(t, err)

	v.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = v.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
