// Package authtest runs an in-process token issuer for tests: an RSA key
// pair, a JWKS endpoint served by httptest and helpers to mint tokens.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cesargomez89/fullstack/internal/constants"
)

const KeyID = "test-key"

// Issuer is a fake identity provider.
type Issuer struct {
	Server   *httptest.Server
	Audience string

	privateKey *rsa.PrivateKey
	fetches    atomic.Int64
	failing    atomic.Bool
}

// NewIssuer starts the issuer and stops it when the test ends.
func NewIssuer(t testing.TB, audience string) *Issuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate RSA key: %v", err)
	}

	iss := &Issuer{Audience: audience, privateKey: key}

	mux := http.NewServeMux()
	mux.HandleFunc(constants.JWKSPath, iss.handleJWKS)
	iss.Server = httptest.NewServer(mux)
	t.Cleanup(iss.Server.Close)
	return iss
}

// URL is the issuer claim value, with a trailing slash.
func (i *Issuer) URL() string {
	return i.Server.URL + "/"
}

func (i *Issuer) JWKSURL() string {
	return i.Server.URL + constants.JWKSPath
}

// Fetches reports how many times the key set was served.
func (i *Issuer) Fetches() int {
	return int(i.fetches.Load())
}

// SetFailing makes the JWKS endpoint answer 500.
func (i *Issuer) SetFailing(failing bool) {
	i.failing.Store(failing)
}

func (i *Issuer) handleJWKS(w http.ResponseWriter, r *http.Request) {
	if i.failing.Load() {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	i.fetches.Add(1)

	pub := i.privateKey.PublicKey
	jwks := map[string]interface{}{
		"keys": []map[string]interface{}{
			{
				"kty": "RSA",
				"kid": KeyID,
				"use": "sig",
				"alg": constants.SigningAlgorithm,
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			},
		},
	}

	w.Header().Set("Content-Type", constants.MimeTypeJSON)
	if err := json.NewEncoder(w).Encode(jwks); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Claims builds the default claims for a token carrying permissions.
func (i *Issuer) Claims(permissions ...string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":         i.URL(),
		"sub":         "auth0|tester",
		"aud":         i.Audience,
		"iat":         now.Unix(),
		"exp":         now.Add(time.Hour).Unix(),
		"permissions": permissions,
	}
}

// Token mints a valid token with the given permissions.
func (i *Issuer) Token(t testing.TB, permissions ...string) string {
	t.Helper()
	return i.Sign(t, i.Claims(permissions...))
}

// ExpiredToken mints a token that expired an hour ago.
func (i *Issuer) ExpiredToken(t testing.TB, permissions ...string) string {
	t.Helper()
	claims := i.Claims(permissions...)
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	return i.Sign(t, claims)
}

// Sign signs arbitrary claims with the issuer key and KeyID.
func (i *Issuer) Sign(t testing.TB, claims jwt.Claims) string {
	t.Helper()
	return i.SignWithKid(t, claims, KeyID)
}

// SignWithKid signs claims using kid as the key id header; an empty kid
// omits the header.
func (i *Issuer) SignWithKid(t testing.TB, claims jwt.Claims, kid string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(i.privateKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
