// Package auth verifies RS256 bearer tokens against an issuer's key set and
// enforces per-route permissions.
package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/metrics"
)

// KeySource resolves a key id to a public key.
type KeySource interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Claims are the token claims the apps rely on.
type Claims struct {
	jwt.RegisteredClaims
	Permissions []string `json:"permissions"`
}

func (c *Claims) HasPermission(perm string) bool {
	return slices.Contains(c.Permissions, perm)
}

type Verifier struct {
	keys     KeySource
	audience string
	issuer   string
	clock    clockwork.Clock
}

func NewVerifier(keys KeySource, audience, issuer string, clock clockwork.Clock) *Verifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Verifier{keys: keys, audience: audience, issuer: issuer, clock: clock}
}

// Verify checks the token's key id, signature, expiry, audience and issuer
// and returns its claims. Failures are *Error values.
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := v.verify(ctx, token)
	outcome := "ok"
	if err != nil {
		var authErr *Error
		if errors.As(err, &authErr) {
			outcome = authErr.Code
		}
	}
	metrics.TokenVerificationsTotal.WithLabelValues(outcome).Inc()
	return claims, err
}

func (v *Verifier) verify(ctx context.Context, token string) (*Claims, error) {
	unverified, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	if err != nil {
		return nil, errUnparsable(err)
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, errNoKid
	}

	key, err := v.keys.Key(ctx, kid)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{constants.SigningAlgorithm}),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errExpired(err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return nil, errInvalidClaims(err)
	default:
		return nil, errUnparsable(err)
	}
}
