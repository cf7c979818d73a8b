package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/httpclient"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/metrics"
)

type keySet map[string]*rsa.PublicKey

// JWKS caches the issuer's RSA signing keys for a bounded time.
// Concurrent refreshes are collapsed into one fetch and fetches go
// through a circuit breaker.
type JWKS struct {
	url        string
	httpClient *http.Client
	client     *httpclient.Client
	ttl    time.Duration
	clock  clockwork.Clock
	logger *logger.Logger

	mu      sync.RWMutex
	keys    keySet
	fetched time.Time

	group   singleflight.Group
	breaker *gobreaker.CircuitBreaker[keySet]
}

type JWKSOption func(*JWKS)

// WithHTTPClient fetches through c. Fetches are still spaced and retried.
func WithHTTPClient(c *http.Client) JWKSOption {
	return func(j *JWKS) { j.httpClient = c }
}

func WithTTL(ttl time.Duration) JWKSOption {
	return func(j *JWKS) {
		if ttl > 0 {
			j.ttl = ttl
		}
	}
}

func WithClock(c clockwork.Clock) JWKSOption {
	return func(j *JWKS) { j.clock = c }
}

func WithLogger(l *logger.Logger) JWKSOption {
	return func(j *JWKS) { j.logger = l }
}

func NewJWKS(url string, opts ...JWKSOption) *JWKS {
	j := &JWKS{
		url:    url,
		ttl:    constants.DefaultJWKSTTL,
		clock:  clockwork.NewRealClock(),
		logger: logger.Discard(),
		keys:   keySet{},
	}
	for _, opt := range opts {
		opt(j)
	}
	j.client = httpclient.New(j.httpClient, constants.DefaultJWKSTimeout,
		httpclient.WithMinInterval(constants.DefaultJWKSInterval))

	j.breaker = gobreaker.NewCircuitBreaker[keySet](gobreaker.Settings{
		Name:        "jwks",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// A cancelled fetch says nothing about the issuer.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			j.logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return j
}

// Key returns the public key with the given id. Keys are refetched once
// the cached set is older than the TTL; a stale key is still served when
// the refresh fails.
func (j *JWKS) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	key, ok := j.keys[kid]
	fresh := !j.fetched.IsZero() && j.clock.Since(j.fetched) < j.ttl
	j.mu.RUnlock()

	if fresh {
		if !ok {
			return nil, errKeyNotFound(kid)
		}
		return key, nil
	}

	keys, err := j.refresh(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if ok {
			j.logger.Warn("serving stale signing key", "kid", kid, "error", err)
			return key, nil
		}
		return nil, errUnavailable(err)
	}

	key, ok = keys[kid]
	if !ok {
		return nil, errKeyNotFound(kid)
	}
	return key, nil
}

// refresh fetches the key set once for all concurrent callers. The fetch
// is detached from ctx so one caller hanging up neither aborts it for the
// others nor counts against the issuer; ctx only bounds the caller's wait.
func (j *JWKS) refresh(ctx context.Context) (keySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := j.group.DoChan("jwks", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultJWKSDeadline)
		defer cancel()

		keys, err := j.breaker.Execute(func() (keySet, error) {
			return j.fetch(fetchCtx)
		})
		if err != nil {
			result := "error"
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				result = "rejected"
			}
			metrics.JWKSFetchesTotal.WithLabelValues(result).Inc()
			return nil, err
		}
		metrics.JWKSFetchesTotal.WithLabelValues("ok").Inc()

		j.mu.Lock()
		j.keys = keys
		j.fetched = j.clock.Now()
		j.mu.Unlock()
		return keys, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(keySet), nil
	}
}

type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (j *JWKS) fetch(ctx context.Context) (keySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := j.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS fetch failed with status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []jsonWebKey `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := keySet{}
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			j.logger.Warn("skipping malformed key", "kid", k.Kid, "error", err)
			continue
		}
		keys[k.Kid] = pub
	}
	return keys, nil
}

func (k jsonWebKey) publicKey() (*rsa.PublicKey, error) {
	nBytes, err := decodeSegment(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eBytes, err := decodeSegment(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}
	if len(nBytes) == 0 || len(eBytes) == 0 {
		return nil, fmt.Errorf("empty key component")
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}

// decodeSegment decodes base64url with or without padding.
func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
