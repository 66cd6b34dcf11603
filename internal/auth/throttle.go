package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// LoginThrottle counts failed logins per email in Redis. Redis outages never
// block a login: every operation fails open.
type LoginThrottle struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client disables throttling.
func NewLoginThrottle(client redis.Cmdable, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginThrottle{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
		logger:      logger,
	}
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login:fail:%s", email)
}

// Check returns TooManyRequests once the failure budget for email is spent.
func (t *LoginThrottle) Check(ctx context.Context, email string) error {
	if t == nil || t.client == nil || t.maxAttempts <= 0 {
		return nil
	}
	raw, err := t.client.Get(ctx, t.key(email)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	if n >= t.maxAttempts {
		return apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}
	return nil
}

// RecordFailure increments the failure counter and refreshes its window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	if t == nil || t.client == nil || t.maxAttempts <= 0 {
		return
	}
	pipe := t.client.Pipeline()
	pipe.Incr(ctx, t.key(email))
	pipe.Expire(ctx, t.key(email), t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		t.logger.Warn("failed to record login failure", zap.Error(err))
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		t.logger.Warn("failed to reset login throttle", zap.Error(err))
	}
}
