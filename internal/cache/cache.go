package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// DefaultTTL is how long a cached entry stays fresh unless the owning
// Expiring cache was configured otherwise.
const DefaultTTL = 30 * time.Minute

// envelope is the serialized form of a cache entry. The timestamp is
// epoch milliseconds so entries written by other clients of the same
// store stay readable.
type envelope struct {
	Data json.RawMessage `json:"data"`
	TS   int64           `json:"_ts"`
}

// Expiring is a typed, TTL-checked view over a raw Store. Reads of an
// expired entry delete it and report a miss; expiry is never checked on
// write. Any fault in the underlying store or in payload decoding is
// absorbed: Get degrades to a miss and Put to a no-op.
type Expiring[T any] struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger

	// timeFunc is injectable for tests.
	timeFunc func() time.Time
}

// NewExpiring creates an Expiring cache over store with the given TTL.
// A non-positive ttl falls back to DefaultTTL. If logger is nil the
// default slog logger is used.
func NewExpiring[T any](store Store, ttl time.Duration, logger *slog.Logger) *Expiring[T] {
	if store == nil {
		panic("store cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Expiring[T]{
		store:    store,
		ttl:      ttl,
		logger:   logger.With(slog.String("component", "expiring_cache")),
		timeFunc: time.Now,
	}
}

// Get returns the fresh value stored under key, if any. A missing key,
// an expired entry, a corrupt payload, or a failing store all report a
// miss; expired and corrupt entries are removed on the way out.
func (c *Expiring[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.DebugContext(ctx, "cache read failed, treating as miss",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.logger.DebugContext(ctx, "corrupt cache payload, discarding entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		c.remove(ctx, key)
		return zero, false
	}

	storedAt := time.UnixMilli(env.TS)
	if c.timeFunc().Sub(storedAt) > c.ttl {
		c.remove(ctx, key)
		return zero, false
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		c.logger.DebugContext(ctx, "corrupt cache data, discarding entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		c.remove(ctx, key)
		return zero, false
	}

	return value, true
}

// Put stores value under key with the current timestamp, overwriting any
// previous entry. Serialization or storage failures are logged and
// otherwise ignored.
func (c *Expiring[T]) Put(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.DebugContext(ctx, "failed to serialize cache value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	raw, err := json.Marshal(envelope{
		Data: data,
		TS:   c.timeFunc().UnixMilli(),
	})
	if err != nil {
		c.logger.DebugContext(ctx, "failed to serialize cache envelope",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	if err := c.store.Set(ctx, key, string(raw)); err != nil {
		c.logger.DebugContext(ctx, "cache write failed, continuing without cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// TTL reports the configured time-to-live.
func (c *Expiring[T]) TTL() time.Duration {
	return c.ttl
}

func (c *Expiring[T]) remove(ctx context.Context, key string) {
	if err := c.store.Remove(ctx, key); err != nil {
		c.logger.DebugContext(ctx, "cache remove failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
