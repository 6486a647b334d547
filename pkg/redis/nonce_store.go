package redis

import (
	"context"
	"errors"
	"time"
)

// ErrNonceNotFound is returned when a login challenge has expired or was
// never issued for the address.
var ErrNonceNotFound = errors.New("nonce not found")

const noncePrefix = "login_nonce:"

var (
	setNonceValue = Set
	getNonceValue = Get
	delNonceValue = Del
)

// NonceStore holds one-shot login challenge nonces keyed by wallet address.
// A nonce is consumed on successful login so a captured signature cannot be
// replayed.
type NonceStore struct {
	ttl time.Duration
}

// NewNonceStore creates a nonce store with the given challenge TTL
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{ttl: ttl}
}

// Save stores the nonce for an address, replacing any outstanding challenge
func (s *NonceStore) Save(ctx context.Context, address, nonce string) error {
	return setNonceValue(ctx, noncePrefix+address, nonce, s.ttl)
}

// Get returns the outstanding nonce for an address
func (s *NonceStore) Get(ctx context.Context, address string) (string, error) {
	val, err := getNonceValue(ctx, noncePrefix+address)
	if err != nil {
		return "", ErrNonceNotFound
	}
	return val, nil
}

// Consume removes the nonce after a successful login
func (s *NonceStore) Consume(ctx context.Context, address string) error {
	return delNonceValue(ctx, noncePrefix+address)
}
