package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfirmationCodeStore issues and verifies the single-use codes of the
// email signup flow.
type ConfirmationCodeStore interface {
	Issue(ctx context.Context, email, userID string) (string, error)
	Verify(ctx context.Context, email, userID, code string) (bool, error)
}

// confirmationRedis is the slice of the redis client the store needs.
// *redis.Client satisfies it.
type confirmationRedis interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisCodeStore keeps one live code per email with a TTL. Issuing again
// replaces the previous code, so only the latest one is ever valid.
type redisCodeStore struct {
	client confirmationRedis
	secret []byte
	ttl    time.Duration
}

func NewConfirmationCodeStore(client confirmationRedis, secret string, ttl time.Duration) ConfirmationCodeStore {
	return &redisCodeStore{
		client: client,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func confirmationKey(email string) string {
	return "confirm:" + email
}

// Issue generates a fresh code for the user. The code is nonce.signature
// where the signature binds the nonce to the user id, so a code issued for
// one account never validates for another.
func (s *redisCodeStore) Issue(ctx context.Context, email, userID string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate confirmation nonce: %w", err)
	}

	n := hex.EncodeToString(nonce)
	code := n + "." + s.sign(n, userID)

	if err := s.client.Set(ctx, confirmationKey(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store confirmation code: %w", err)
	}
	return code, nil
}

// Verify checks the presented code against the stored one and consumes it
// on success. A failed attempt leaves the stored code in place so a typo
// does not burn it.
func (s *redisCodeStore) Verify(ctx context.Context, email, userID, code string) (bool, error) {
	stored, err := s.client.Get(ctx, confirmationKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load confirmation code: %w", err)
	}

	parts := strings.SplitN(code, ".", 2)
	if len(parts) != 2 {
		return false, nil
	}
	if !hmac.Equal([]byte(parts[1]), []byte(s.sign(parts[0], userID))) {
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	// single use: delete on successful verification
	if err := s.client.Del(ctx, confirmationKey(email)).Err(); err != nil {
		return false, fmt.Errorf("consume confirmation code: %w", err)
	}
	return true, nil
}

func (s *redisCodeStore) sign(nonce, userID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(nonce + "|" + userID))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}
