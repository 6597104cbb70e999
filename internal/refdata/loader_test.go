package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell-api/internal/cache"
)

// fakeCollaborator is a controllable Collaborator for loader and watcher
// tests. Per-code blocking lets tests hold a response open while newer
// selections happen.
type fakeCollaborator struct {
	mu sync.Mutex

	countries    []Country
	countriesErr error
	listCalls    int

	frameworks   map[string]*EducationFramework
	frameworkErr map[string]error
	fwCalls      map[string]int

	block map[string]chan struct{}
}

func newFakeCollaborator() *fakeCollaborator {
	return &fakeCollaborator{
		frameworks:   make(map[string]*EducationFramework),
		frameworkErr: make(map[string]error),
		fwCalls:      make(map[string]int),
		block:        make(map[string]chan struct{}),
	}
}

func (f *fakeCollaborator) ListCountries(_ context.Context) ([]Country, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.countriesErr != nil {
		return nil, f.countriesErr
	}
	return f.countries, nil
}

func (f *fakeCollaborator) EducationFramework(_ context.Context, code string) (*EducationFramework, error) {
	f.mu.Lock()
	f.fwCalls[code]++
	gate := f.block[code]
	err := f.frameworkErr[code]
	fw := f.frameworks[code]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if fw == nil {
		fw = &EducationFramework{CountryCode: code}
	}
	return fw, nil
}

func (f *fakeCollaborator) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeCollaborator) frameworkCallCount(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fwCalls[code]
}

func TestCountriesGetFetchesOnceThenServesFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := newFakeCollaborator()
	remote.countries = []Country{{Code: "de", Name: "Germany"}, {Code: "jp", Name: "Japan"}}

	loader := NewCountries(remote, cache.NewMemoryStore(), time.Minute, nil)

	first, err := loader.Get(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := loader.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, remote.listCallCount(), "second read must be served from cache")
}

func TestCountriesGetFailureReturnsEmptyListAndMessage(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.countriesErr = errors.New("connection refused")

	store := cache.NewMemoryStore()
	loader := NewCountries(remote, store, time.Minute, nil)

	countries, err := loader.Get(context.Background())
	require.Error(t, err)
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
	assert.Equal(t, genericCountriesErrMsg, err.Error(), "transport faults map to a generic message")
	assert.Equal(t, 0, store.Len(), "failures must not be cached")
}

func TestCountriesGetRemoteErrorMessagePassesThrough(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.countriesErr = &RemoteError{Message: "table not available"}

	loader := NewCountries(remote, cache.NewMemoryStore(), time.Minute, nil)

	_, err := loader.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, "table not available", err.Error())
}

func TestFrameworksGetFetchesOnceThenServesFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{
		CountryCode: "fi",
		Name:        "Finnish National Curriculum",
		Levels:      json.RawMessage(`["basic","upper secondary"]`),
	}

	loader := NewFrameworks(remote, cache.NewMemoryStore(), time.Minute, nil)

	first, err := loader.Get(ctx, "fi")
	require.NoError(t, err)
	assert.Equal(t, "Finnish National Curriculum", first.Name)

	second, err := loader.Get(ctx, "fi")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)

	assert.Equal(t, 1, remote.frameworkCallCount("fi"))
}

func TestFrameworksGetDifferentCodesUseSeparateKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}
	remote.frameworks["de"] = &EducationFramework{CountryCode: "de", Name: "German"}

	loader := NewFrameworks(remote, cache.NewMemoryStore(), time.Minute, nil)

	fi, err := loader.Get(ctx, "fi")
	require.NoError(t, err)
	de, err := loader.Get(ctx, "de")
	require.NoError(t, err)

	assert.Equal(t, "Finnish", fi.Name)
	assert.Equal(t, "German", de.Name)
	assert.Equal(t, 1, remote.frameworkCallCount("fi"))
	assert.Equal(t, 1, remote.frameworkCallCount("de"))
}

func TestFrameworksGetRemoteErrorLeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworkErr["xx"] = &RemoteError{Message: "X"}

	store := cache.NewMemoryStore()
	loader := NewFrameworks(remote, store, time.Minute, nil)

	fw, err := loader.Get(context.Background(), "xx")
	require.Error(t, err)
	assert.Nil(t, fw)
	assert.Equal(t, "X", err.Error())
	assert.Equal(t, 0, store.Len())
}

func TestFrameworksGetEmptyResultIsReturnedButNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := newFakeCollaborator()
	remote.frameworks["aq"] = &EducationFramework{CountryCode: "aq"}

	store := cache.NewMemoryStore()
	loader := NewFrameworks(remote, store, time.Minute, nil)

	fw, err := loader.Get(ctx, "aq")
	require.NoError(t, err)
	assert.True(t, fw.IsEmpty())
	assert.Equal(t, 0, store.Len())

	// A repeated selection retries the backend instead of trusting a
	// cached empty record.
	_, err = loader.Get(ctx, "aq")
	require.NoError(t, err)
	assert.Equal(t, 2, remote.frameworkCallCount("aq"))
}

func TestFrameworksGetExpiredEntryTriggersRefetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}

	store := cache.NewMemoryStore()
	loader := NewFrameworks(remote, store, time.Minute, nil)

	_, err := loader.Get(ctx, "fi")
	require.NoError(t, err)
	require.Equal(t, 1, remote.frameworkCallCount("fi"))

	// Force the stored entry past its TTL by rewriting its timestamp.
	raw, ok, err := store.Get(ctx, frameworkCacheKey("fi"))
	require.NoError(t, err)
	require.True(t, ok)
	var env struct {
		Data json.RawMessage `json:"data"`
		TS   int64           `json:"_ts"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	env.TS = time.Now().Add(-2 * time.Minute).UnixMilli()
	stale, err := json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, frameworkCacheKey("fi"), string(stale)))

	_, err = loader.Get(ctx, "fi")
	require.NoError(t, err)
	assert.Equal(t, 2, remote.frameworkCallCount("fi"), "expired entry must trigger exactly one refetch")
}
