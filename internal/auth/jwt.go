package auth

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wasilibs/go-re2"
)

const (
	// Issuer is the iss claim of every token this server issues and accepts.
	Issuer = "cronty-mcp"

	// DefaultExpiresIn is the token lifetime used by `cronty token issue`.
	DefaultExpiresIn = "365d"
)

var (
	ErrMissingSecret = errors.New("JWT_SECRET is required when authentication is enabled")
	ErrInvalidToken  = errors.New("invalid token")

	signingMethod   = jwt.SigningMethodHS512
	durationPattern = re2.MustCompile(`^(\d+)(d|h|m|s|y)$`)
)

// Claims are the registered claims carried by a cronty token. The subject is
// the user's email address.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the token subject.
func (c *Claims) Email() string {
	return c.Subject
}

// ParseDuration parses a token lifetime such as "30d", "12h" or "1y".
// A year is 365 days.
func ParseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Newf("Invalid duration format: %s. Valid examples: 30d, 12h, 1y, 365d", s)
	}

	value, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, errors.Newf("Invalid duration format: %s. Valid examples: 30d, 12h, 1y, 365d", s)
	}
	n := time.Duration(value)

	switch m[2] {
	case "d":
		return n * 24 * time.Hour, nil
	case "h":
		return n * time.Hour, nil
	case "m":
		return n * time.Minute, nil
	case "s":
		return n * time.Second, nil
	default:
		return n * 365 * 24 * time.Hour, nil
	}
}

// Issue signs a token for email valid for ttl starting at now.
func Issue(secret []byte, email string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	if email == "" {
		return "", errors.New("email is required")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verifier validates bearer tokens against a shared HMAC secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier. An empty secret is rejected.
func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return &Verifier{secret: secret, now: time.Now}, nil
}

// Verify parses the token and checks signature, algorithm, issuer, expiry and
// subject.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "token validation failed"), ErrInvalidToken)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, errors.Mark(errors.New("token has no subject"), ErrInvalidToken)
	}

	return claims, nil
}
