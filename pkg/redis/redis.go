package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/recipe-box/config"
	"github.com/ikkim/recipe-box/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// ErrNotInitialized is returned when a helper runs before Init
var ErrNotInitialized = errors.New("redis client is not initialized")

const flashKeyPrefix = "flash:"

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		_ = c.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established successfully", nil)
	return nil
}

// SetClient replaces the package client, used by tests
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// SetFlash stores a one-shot message for a session
func SetFlash(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}

	if err := client.Set(ctx, flashKeyPrefix+sessionID, payload, ttl).Err(); err != nil {
		logger.Error("Failed to store flash message", err, nil)
		return err
	}
	return nil
}

// PopFlash reads and deletes the session's flash message. A missing
// message returns nil, nil.
func PopFlash(ctx context.Context, sessionID string) ([]byte, error) {
	if client == nil {
		return nil, ErrNotInitialized
	}

	val, err := client.GetDel(ctx, flashKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read flash message", err, nil)
		return nil, err
	}
	return val, nil
}
