package refdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell-api/internal/cache"
)

func newTestWatcher(remote Collaborator, store cache.Store) *FrameworkWatcher {
	return NewFrameworkWatcher(NewFrameworks(remote, store, time.Minute, nil), nil)
}

func waitForState(t *testing.T, w *FrameworkWatcher, cond func(FrameworkState) bool) FrameworkState {
	t.Helper()
	var last FrameworkState
	require.Eventually(t, func() bool {
		last = w.State()
		return cond(last)
	}, 2*time.Second, 5*time.Millisecond)
	return last
}

func TestWatcherSelectLoadsFramework(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}

	w := newTestWatcher(remote, cache.NewMemoryStore())
	defer w.Close()

	w.Select("fi")

	state := waitForState(t, w, func(s FrameworkState) bool { return !s.Loading })
	require.NotNil(t, state.Framework)
	assert.Equal(t, "Finnish", state.Framework.Name)
	assert.Empty(t, state.Err)
}

func TestWatcherEmptySelectionClearsSynchronously(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}

	w := newTestWatcher(remote, cache.NewMemoryStore())
	defer w.Close()

	w.Select("fi")
	waitForState(t, w, func(s FrameworkState) bool { return s.Framework != nil })

	// Clearing must be synchronous: no waiting allowed here.
	w.Select("")

	state := w.State()
	assert.Nil(t, state.Framework)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
}

func TestWatcherCacheHitAppliesSynchronouslyWithoutRemoteCall(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}

	store := cache.NewMemoryStore()

	// Warm the cache through the loader.
	loader := NewFrameworks(remote, store, time.Minute, nil)
	_, err := loader.Get(context.Background(), "fi")
	require.NoError(t, err)
	require.Equal(t, 1, remote.frameworkCallCount("fi"))

	w := NewFrameworkWatcher(loader, nil)
	defer w.Close()

	w.Select("fi")

	// The hit is applied before Select returns.
	state := w.State()
	require.NotNil(t, state.Framework)
	assert.Equal(t, "Finnish", state.Framework.Name)
	assert.False(t, state.Loading)
	assert.Equal(t, 1, remote.frameworkCallCount("fi"), "cache hit must skip the remote call")
}

func TestWatcherStaleResponseIsDiscarded(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworks["c1"] = &EducationFramework{CountryCode: "c1", Name: "First"}
	remote.frameworks["c2"] = &EducationFramework{CountryCode: "c2", Name: "Second"}

	gate := make(chan struct{})
	remote.block["c1"] = gate

	w := newTestWatcher(remote, cache.NewMemoryStore())
	defer w.Close()

	w.Select("c1")
	w.Select("c2")

	// c2 resolves while c1 is still held open.
	state := waitForState(t, w, func(s FrameworkState) bool { return s.Framework != nil })
	assert.Equal(t, "Second", state.Framework.Name)

	// Now let c1 finish; its result must be dropped.
	close(gate)
	require.Eventually(t, func() bool { return w.Discarded() == 1 }, 2*time.Second, 5*time.Millisecond)

	state = w.State()
	require.NotNil(t, state.Framework)
	assert.Equal(t, "Second", state.Framework.Name, "state must never reflect a superseded response")
	assert.Empty(t, state.Err)
}

func TestWatcherStaleFailureIsDiscardedSilently(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworkErr["c1"] = &RemoteError{Message: "boom"}
	remote.frameworks["c2"] = &EducationFramework{CountryCode: "c2", Name: "Second"}

	gate := make(chan struct{})
	remote.block["c1"] = gate

	w := newTestWatcher(remote, cache.NewMemoryStore())
	defer w.Close()

	w.Select("c1")
	w.Select("c2")

	waitForState(t, w, func(s FrameworkState) bool { return s.Framework != nil })

	close(gate)
	require.Eventually(t, func() bool { return w.Discarded() == 1 }, 2*time.Second, 5*time.Millisecond)

	assert.Empty(t, w.State().Err, "superseded failures must not surface an error")
}

func TestWatcherRemoteErrorSurfacesMessage(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworkErr["xx"] = &RemoteError{Message: "X"}

	store := cache.NewMemoryStore()
	w := newTestWatcher(remote, store)
	defer w.Close()

	w.Select("xx")

	state := waitForState(t, w, func(s FrameworkState) bool { return s.Err != "" })
	assert.Equal(t, "X", state.Err)
	assert.Nil(t, state.Framework)
	assert.False(t, state.Loading)
	assert.Equal(t, 0, store.Len(), "errors must not write to the cache")
}

func TestWatcherReselectingAfterErrorRetries(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworkErr["fi"] = &RemoteError{Message: "temporarily unavailable"}

	w := newTestWatcher(remote, cache.NewMemoryStore())
	defer w.Close()

	w.Select("fi")
	waitForState(t, w, func(s FrameworkState) bool { return s.Err != "" })

	// No automatic retry: a second attempt only happens on reselection.
	remote.mu.Lock()
	delete(remote.frameworkErr, "fi")
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}
	remote.mu.Unlock()

	w.Select("fi")
	state := waitForState(t, w, func(s FrameworkState) bool { return s.Framework != nil })
	assert.Equal(t, "Finnish", state.Framework.Name)
	assert.Empty(t, state.Err)
	assert.Equal(t, 2, remote.frameworkCallCount("fi"))
}

func TestWatcherCloseDropsLateResponses(t *testing.T) {
	t.Parallel()

	remote := newFakeCollaborator()
	remote.frameworks["fi"] = &EducationFramework{CountryCode: "fi", Name: "Finnish"}

	gate := make(chan struct{})
	remote.block["fi"] = gate

	w := newTestWatcher(remote, cache.NewMemoryStore())

	w.Select("fi")
	w.Close()
	close(gate)

	require.Eventually(t, func() bool { return w.Discarded() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Nil(t, w.State().Framework)

	// Selections after Close are no-ops.
	w.Select("fi")
	assert.Nil(t, w.State().Framework)
}
