package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/auth"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 5 * time.Hour

// Verification failures. All of them wrap ErrTokenInvalid; the distinct kinds
// exist for server-side logging only.
var (
	ErrTokenInvalid          = errors.New("token invalid")
	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrTokenInvalid)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: signature invalid", ErrTokenInvalid)
	ErrTokenExpired          = fmt.Errorf("%w: expired", ErrTokenInvalid)
)

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// UserClaim keeps the {"user":{"id":...}} payload shape existing clients decode.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims carries the registered claims plus the user block.
type Claims struct {
	jwt.RegisteredClaims
	User UserClaim `json:"user"`
}

// Generate issues a signed HS256 token for user, expiring after the configured TTL.
func (g *Generator) Generate(_ context.Context, user auth.User) (string, error) {
	now := g.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		User: UserClaim{ID: user.ID.String()},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify checks the signature, then expiry, and returns the subject user id.
func (g *Generator) Verify(tokenStr string) (uuid.UUID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(g.now),
		jwt.WithExpirationRequired(),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, classify(err)
	}
	if !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	sub := claims.Subject
	if sub == "" {
		sub = claims.User.ID
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject: %v", ErrTokenMalformed, err)
	}
	return id, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}

// Kind names the failure for logs: malformed, signature_invalid, expired or invalid.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
