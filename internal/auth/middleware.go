package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/cesargomez89/fullstack/internal/constants"
)

type claimsKey struct{}

// WithClaims stores verified claims in the context.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom returns the claims stored by RequirePermission.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// ExtractBearer returns the token of a "Bearer <token>" Authorization header.
func ExtractBearer(r *http.Request) (string, error) {
	header := r.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", errHeaderMissing
	}

	parts := strings.Fields(header)
	switch {
	case len(parts) == 0:
		return "", errHeaderMissing
	case !strings.EqualFold(parts[0], "bearer"):
		return "", errNotBearer
	case len(parts) == 1:
		return "", errTokenMissing
	case len(parts) > 2:
		return "", errExtraParts
	}
	return parts[1], nil
}

// TokenVerifier is satisfied by *Verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type Authorizer struct {
	verifier TokenVerifier
	onError  ErrorWriter
}

func NewAuthorizer(v TokenVerifier, onError ErrorWriter) *Authorizer {
	return &Authorizer{verifier: v, onError: onError}
}

// RequirePermission rejects requests without a valid token carrying perm.
func (a *Authorizer) RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearer(r)
			if err != nil {
				a.onError(w, r, err)
				return
			}

			claims, err := a.verifier.Verify(r.Context(), token)
			if err != nil {
				a.onError(w, r, err)
				return
			}

			if !claims.HasPermission(perm) {
				a.onError(w, r, errNoPermission)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
