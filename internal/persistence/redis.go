package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

const redisProbeTimeout = 2 * time.Second

// Redis is the optional key-value connection behind login throttling.
// Ticket reads never go through it.
type Redis struct {
	client *redis.Client
}

// NewRedis builds the client when Redis is enabled. An unreachable server is
// logged and tolerated; callers fail open.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if !cfg.Enabled {
		logger.Info("redis disabled; login throttling off")
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisProbeTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	probeCtx, cancel := context.WithTimeout(ctx, redisProbeTimeout)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		logger.Warn("redis unreachable; login throttling fails open", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return &Redis{client: client}
}

// Enabled reports whether a client was configured.
func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

// Cmdable exposes the client for throttling, or nil when disabled.
func (r *Redis) Cmdable() redis.Cmdable {
	if !r.Enabled() {
		return nil
	}
	return r.client
}

// Ping is the readiness probe. A disabled Redis is never probed.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() {
	if r.Enabled() {
		_ = r.client.Close()
	}
}
