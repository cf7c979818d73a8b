package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/fullstack/internal/auth/authtest"
)

func newTestVerifier(t *testing.T) (*Verifier, *authtest.Issuer) {
	t.Helper()
	iss := authtest.NewIssuer(t, "barista")
	return NewVerifier(NewJWKS(iss.JWKSURL()), iss.Audience, iss.URL(), nil), iss
}

func TestVerifier_Valid(t *testing.T) {
	v, iss := newTestVerifier(t)

	claims, err := v.Verify(context.Background(), iss.Token(t, "get:drinks-detail"))

	require.NoError(t, err)
	assert.True(t, claims.HasPermission("get:drinks-detail"))
	assert.False(t, claims.HasPermission("delete:drinks"))
	assert.Equal(t, "auth0|tester", claims.Subject)
}

func TestVerifier_Failures(t *testing.T) {
	v, iss := newTestVerifier(t)

	wrongAud := iss.Claims()
	wrongAud["aud"] = "someone-else"
	wrongIss := iss.Claims()
	wrongIss["iss"] = "https://evil.example.com/"

	tests := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"garbage", "not.a.token", http.StatusBadRequest, CodeInvalidHeader},
		{"no kid", iss.SignWithKid(t, iss.Claims(), ""), http.StatusUnauthorized, CodeInvalidHeader},
		{"unknown kid", iss.SignWithKid(t, iss.Claims(), "rotated"), http.StatusBadRequest, CodeInvalidHeader},
		{"expired", iss.ExpiredToken(t), http.StatusUnauthorized, CodeTokenExpired},
		{"wrong audience", iss.Sign(t, wrongAud), http.StatusUnauthorized, CodeInvalidClaims},
		{"wrong issuer", iss.Sign(t, wrongIss), http.StatusUnauthorized, CodeInvalidClaims},
		{"bad signature", tamper(iss.Token(t)), http.StatusBadRequest, CodeInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)

			var authErr *Error
			require.True(t, errors.As(err, &authErr), "got %v", err)
			assert.Equal(t, tt.status, authErr.Status)
			assert.Equal(t, tt.code, authErr.Code)
		})
	}
}

func TestVerifier_RejectsHS256(t *testing.T) {
	v, iss := newTestVerifier(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, iss.Claims())
	token.Header["kid"] = authtest.KeyID
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), signed)

	var authErr *Error
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusBadRequest, authErr.Status)
}

func TestVerifier_SkipsEmptyAudience(t *testing.T) {
	iss := authtest.NewIssuer(t, "")
	v := NewVerifier(NewJWKS(iss.JWKSURL()), "", "", nil)

	claims := iss.Claims("get:bookmarks")
	claims["exp"] = time.Now().Add(time.Minute).Unix()
	_, err := v.Verify(context.Background(), iss.Sign(t, claims))
	assert.NoError(t, err)
}

// tamper flips a character in the signature segment.
func tamper(token string) string {
	b := []byte(token)
	last := len(b) - 2
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}
	return string(b)
}
