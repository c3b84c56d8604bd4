package redis

import (
	"BankAccounts/internal/core/ports"
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ViewCache is a JSON-backed Redis cache for one value type. Payloads are
// sealed with the SecurityPort when one is given. A ttl of 0 keeps keys
// until they are invalidated.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	sealer ports.SecurityPort
	log    zerolog.Logger
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration, sealer ports.SecurityPort, baseLogger *zerolog.Logger) *ViewCache[T] {
	return &ViewCache[T]{
		client: client,
		ttl:    ttl,
		sealer: sealer,
		log:    baseLogger.With().Str("component", "view_cache").Logger(),
	}
}

// Get returns (nil, false) on any miss or decode error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return nil, false
	}
	v, err := c.decode(data)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache entry undecodable")
		return nil, false
	}
	return v, true
}

// SetUnlessGuarded stores value under key unless guard exists or is
// written while the fill is in flight. Write errors are logged, not returned.
func (c *ViewCache[T]) SetUnlessGuarded(ctx context.Context, key, guard string, value *T) {
	data, err := c.encode(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}

	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, guard).Result()
		if err != nil || n > 0 {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, guard)

	switch {
	case errors.Is(err, goredis.TxFailedErr):
		c.log.Debug().Str("key", key).Msg("Cache fill skipped: entry invalidated meanwhile")
	case err != nil:
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate drops key and holds guard for guardTTL so fills that read the
// old value before the write cannot store it again.
func (c *ViewCache[T]) Invalidate(ctx context.Context, key, guard string, guardTTL time.Duration) {
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, guard, 1, guardTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache invalidate failed")
	}
}

func (c *ViewCache[T]) encode(value *T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil || c.sealer == nil {
		return data, err
	}
	return c.sealer.Encrypt(data)
}

func (c *ViewCache[T]) decode(data []byte) (*T, error) {
	if c.sealer != nil {
		plain, err := c.sealer.Decrypt(data)
		if err != nil {
			return nil, err
		}
		data = plain
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
