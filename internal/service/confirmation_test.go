package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis backs the code store with a plain map so the single-use
// semantics can be exercised without a server.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestCodeStore() (ConfirmationCodeStore, *fakeRedis) {
	fake := newFakeRedis()
	return NewConfirmationCodeStore(fake, "test-secret", time.Hour), fake
}

func TestConfirmationCode_VerifyConsumes(t *testing.T) {
	store, fake := newTestCodeStore()
	ctx := context.Background()

	code, err := store.Issue(ctx, "user@example.com", "user-id")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	ok, err := store.Verify(ctx, "user@example.com", "user-id", code)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.data)

	// single use: the same code must not verify twice
	ok, err = store.Verify(ctx, "user@example.com", "user-id", code)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmationCode_FailedAttemptLeavesCode(t *testing.T) {
	store, _ := newTestCodeStore()
	ctx := context.Background()

	code, err := store.Issue(ctx, "user@example.com", "user-id")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "user@example.com", "user-id", "deadbeef.0000")
	assert.NoError(t, err)
	assert.False(t, ok)

	// a typo must not burn the real code
	ok, err = store.Verify(ctx, "user@example.com", "user-id", code)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationCode_BoundToUser(t *testing.T) {
	store, _ := newTestCodeStore()
	ctx := context.Background()

	code, err := store.Issue(ctx, "user@example.com", "user-id")
	require.NoError(t, err)

	// the signature ties the code to the account it was issued for
	ok, err := store.Verify(ctx, "user@example.com", "other-user", code)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Verify(ctx, "user@example.com", "user-id", code)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationCode_ReissueReplaces(t *testing.T) {
	store, _ := newTestCodeStore()
	ctx := context.Background()

	first, err := store.Issue(ctx, "user@example.com", "user-id")
	require.NoError(t, err)
	second, err := store.Issue(ctx, "user@example.com", "user-id")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// only the latest issued code is live
	ok, err := store.Verify(ctx, "user@example.com", "user-id", first)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Verify(ctx, "user@example.com", "user-id", second)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationCode_UnknownEmail(t *testing.T) {
	store, _ := newTestCodeStore()

	ok, err := store.Verify(context.Background(), "ghost@example.com", "user-id", "anything.at-all")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmationCode_MalformedCode(t *testing.T) {
	store, _ := newTestCodeStore()
	ctx := context.Background()

	_, err := store.Issue(ctx, "user@example.com", "user-id")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "user@example.com", "user-id", "no-separator")
	assert.NoError(t, err)
	assert.False(t, ok)
}
