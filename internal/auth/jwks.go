package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// minRefreshInterval bounds how often an unknown kid can trigger a fetch.
const minRefreshInterval = 10 * time.Second

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// KeySet resolves RSA signing keys by kid from a JWKS endpoint. Keys are
// cached for ttl and the document is fetched again when an unknown kid shows
// up.
type KeySet struct {
	url    string
	client *http.Client
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	keys        map[string]*rsa.PublicKey
	fetchedAt   time.Time
	lastAttempt time.Time
}

// NewKeySet creates a KeySet for url. A nil client uses a client with a 10s
// timeout.
func NewKeySet(url string, client *http.Client, ttl time.Duration, logger *slog.Logger) *KeySet {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KeySet{
		url:    url,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "jwks")),
		now:    time.Now,
		keys:   map[string]*rsa.PublicKey{},
	}
}

// Key returns the public key for kid.
func (k *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	key, cached := k.keys[kid]
	fresh := !k.fetchedAt.IsZero() && now.Sub(k.fetchedAt) < k.ttl
	if cached && fresh {
		return key, nil
	}
	if fresh && now.Sub(k.lastAttempt) < minRefreshInterval {
		return nil, errNoKey
	}

	if err := k.refresh(ctx, now); err != nil {
		if cached {
			k.logger.Warn("jwks refresh failed, using cached key",
				slog.String("error", err.Error()),
				slog.String("kid", kid))
			return key, nil
		}
		k.logger.Error("jwks refresh failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", errNoKey, err)
	}

	if key, ok := k.keys[kid]; ok {
		return key, nil
	}
	return nil, errNoKey
}

func (k *KeySet) refresh(ctx context.Context, now time.Time) error {
	k.lastAttempt = now

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build jwks request: %w", err)
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, j := range doc.Keys {
		if j.Kty != "RSA" || (j.Use != "" && j.Use != "sig") {
			continue
		}
		pub, err := j.rsaPublicKey()
		if err != nil {
			k.logger.Warn("skipping unusable jwk", slog.String("kid", j.Kid), slog.String("error", err.Error()))
			continue
		}
		keys[j.Kid] = pub
	}

	k.keys = keys
	k.fetchedAt = now
	k.logger.Debug("jwks refreshed", slog.Int("keys", len(keys)))
	return nil
}

func (j jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}
	if len(n) == 0 || len(e) == 0 {
		return nil, errors.New("empty modulus or exponent")
	}

	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() > 1<<31-1 {
		return nil, errors.New("exponent too large")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}
