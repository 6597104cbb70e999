// Package cache provides a session-scoped, TTL-based key-value cache used
// by the reference data loaders. Values are serialized as a JSON envelope
// carrying the payload and its storage timestamp; expiry is checked lazily
// on every read and expired entries are removed at that point. Storage
// faults are never surfaced to callers: a failed read is a miss and a
// failed write is a no-op.
package cache
