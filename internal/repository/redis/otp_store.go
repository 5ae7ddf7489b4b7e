// Package redis provides Redis-backed storage for short-lived state.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elandref93/WiseBond-sub004/internal/config"
	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// opTimeout bounds a single Redis round trip.
const opTimeout = 5 * time.Second

// OTPStore implements domain.OTPStore on Redis. Codes expire via key TTL,
// so a restart never resurrects a stale code.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTP store from configuration.
func NewOTPStore(cfg config.RedisConfig) *OTPStore {
	return &OTPStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewOTPStoreWithClient wraps an existing client.
func NewOTPStoreWithClient(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Ping verifies connectivity at startup.
func (s *OTPStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *OTPStore) Close() error {
	return s.client.Close()
}

func key(email string) string {
	return "otp:" + email
}

// Set stores a code for the email, replacing any outstanding one.
func (s *OTPStore) Set(email, code string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// Get returns the outstanding code, or ErrOTPNotFound when absent or expired.
func (s *OTPStore) Get(email string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	code, err := s.client.Get(ctx, key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrOTPNotFound
		}
		return "", fmt.Errorf("failed to read verification code: %w", err)
	}
	return code, nil
}

// Delete removes the outstanding code after successful verification.
func (s *OTPStore) Delete(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}
