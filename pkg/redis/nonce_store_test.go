package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceStore_SaveGetConsume(t *testing.T) {
	mr := newTestRedis(t)
	store := NewNonceStore(5 * time.Minute)
	ctx := context.Background()

	addr := "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"

	require.NoError(t, store.Save(ctx, addr, "abc123"))

	nonce, err := store.Get(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, "abc123", nonce)

	require.NoError(t, store.Consume(ctx, addr))
	_, err = store.Get(ctx, addr)
	assert.ErrorIs(t, err, ErrNonceNotFound)

	// expiry behaves like consumption
	require.NoError(t, store.Save(ctx, addr, "later"))
	mr.FastForward(6 * time.Minute)
	_, err = store.Get(ctx, addr)
	assert.ErrorIs(t, err, ErrNonceNotFound)
}

func TestNonceStore_SaveOverwrites(t *testing.T) {
	newTestRedis(t)
	store := NewNonceStore(time.Minute)
	ctx := context.Background()

	addr := "0xabc"
	require.NoError(t, store.Save(ctx, addr, "first"))
	require.NoError(t, store.Save(ctx, addr, "second"))

	nonce, err := store.Get(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, "second", nonce)
}
