// Package cooldown limits contact submissions to one per client per window.
package cooldown

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:contact:cooldown:"

// Limiter stores one short-lived key per client in redis.
type Limiter struct {
	client *redis.Client
	window time.Duration
}

func NewLimiter(client *redis.Client, window time.Duration) *Limiter {
	return &Limiter{client: client, window: window}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Allow reports whether key may submit now, and starts its window if so.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, keyPrefix+key, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown check: %w", err)
	}
	return ok, nil
}

// Release drops key's window, used when the submission it guarded never
// reached the backend.
func (l *Limiter) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cooldown release: %w", err)
	}
	return nil
}

// Hasher turns client IPs into salted, truncated hashes so raw addresses
// never reach redis or the logs. The salt lives only in memory.
type Hasher struct {
	salt string
}

func NewHasher() (*Hasher, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return &Hasher{salt: hex.EncodeToString(b)}, nil
}

// Key is consistent per IP for the lifetime of the hasher.
func (h *Hasher) Key(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}
