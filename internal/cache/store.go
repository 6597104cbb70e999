package cache

import "context"

// Store defines the raw key-value storage contract backing an Expiring
// cache. Implementations hold opaque serialized strings; freshness is the
// responsibility of the Expiring layer, not the store.
// Version: 1.0
type Store interface {
	// Get retrieves the raw value for key. The second return value is
	// false when the key is absent. Storage failures are returned as
	// errors and treated as misses by callers.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the raw value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value under key. Removing an absent key is not
	// an error.
	Remove(ctx context.Context, key string) error
}
