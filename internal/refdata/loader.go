package refdata

import (
	"context"
	"log/slog"
	"time"

	"github.com/notewell/notewell-api/internal/cache"
)

// Countries loads the country reference list, preferring a fresh cache
// entry and falling back to exactly one remote call on a miss.
type Countries struct {
	remote Collaborator
	cache  *cache.Expiring[[]Country]
	logger *slog.Logger
}

// NewCountries creates a Countries loader over the given collaborator and
// cache store. A non-positive ttl falls back to cache.DefaultTTL.
func NewCountries(remote Collaborator, store cache.Store, ttl time.Duration, logger *slog.Logger) *Countries {
	if remote == nil {
		panic("remote cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Countries{
		remote: remote,
		cache:  cache.NewExpiring[[]Country](store, ttl, logger),
		logger: logger.With(slog.String("component", "countries_loader")),
	}
}

// Get returns the country list. On any failure it returns an empty list
// together with a user-facing message wrapped in the error; failures are
// never cached.
func (l *Countries) Get(ctx context.Context) ([]Country, error) {
	if countries, ok := l.cache.Get(ctx, countriesCacheKey); ok {
		l.logger.DebugContext(ctx, "countries served from cache",
			slog.Int("count", len(countries)))
		return countries, nil
	}

	countries, err := l.remote.ListCountries(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "failed to fetch countries",
			slog.String("error", err.Error()))
		return []Country{}, &RemoteError{Message: userMessage(err, genericCountriesErrMsg)}
	}

	l.cache.Put(ctx, countriesCacheKey, countries)
	l.logger.InfoContext(ctx, "countries fetched from backend",
		slog.Int("count", len(countries)))
	return countries, nil
}

// Frameworks loads education frameworks by country code with the same
// cache-first policy as Countries. It is the synchronous building block
// underneath FrameworkWatcher and the HTTP handler.
type Frameworks struct {
	remote Collaborator
	cache  *cache.Expiring[*EducationFramework]
	logger *slog.Logger
}

// NewFrameworks creates a Frameworks loader over the given collaborator
// and cache store. A non-positive ttl falls back to cache.DefaultTTL.
func NewFrameworks(remote Collaborator, store cache.Store, ttl time.Duration, logger *slog.Logger) *Frameworks {
	if remote == nil {
		panic("remote cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Frameworks{
		remote: remote,
		cache:  cache.NewExpiring[*EducationFramework](store, ttl, logger),
		logger: logger.With(slog.String("component", "frameworks_loader")),
	}
}

// Cached returns the fresh cached framework for countryCode, if any.
func (l *Frameworks) Cached(ctx context.Context, countryCode string) (*EducationFramework, bool) {
	fw, ok := l.cache.Get(ctx, frameworkCacheKey(countryCode))
	if !ok || fw == nil {
		return nil, false
	}
	return fw, true
}

// Get returns the framework for countryCode, from cache when fresh,
// otherwise via exactly one remote call. Non-empty results are cached;
// empty-but-valid results are returned without caching so a later
// selection retries the backend. Errors carry a user-facing message and
// leave the cache untouched.
func (l *Frameworks) Get(ctx context.Context, countryCode string) (*EducationFramework, error) {
	if fw, ok := l.Cached(ctx, countryCode); ok {
		l.logger.DebugContext(ctx, "framework served from cache",
			slog.String("country_code", countryCode))
		return fw, nil
	}

	fw, err := l.remote.EducationFramework(ctx, countryCode)
	if err != nil {
		l.logger.WarnContext(ctx, "failed to fetch framework",
			slog.String("country_code", countryCode),
			slog.String("error", err.Error()))
		return nil, &RemoteError{Message: userMessage(err, genericFrameworkErrMsg)}
	}

	if !fw.IsEmpty() {
		l.cache.Put(ctx, frameworkCacheKey(countryCode), fw)
	}

	l.logger.InfoContext(ctx, "framework fetched from backend",
		slog.String("country_code", countryCode),
		slog.Bool("empty", fw.IsEmpty()))
	return fw, nil
}
