package refdata

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// FrameworkState is the observable state of a FrameworkWatcher: the
// framework for the currently selected country (nil when none), whether a
// fetch is in flight, and the last user-facing error message.
type FrameworkState struct {
	CountryCode string
	Framework   *EducationFramework
	Loading     bool
	Err         string
}

// FrameworkWatcher tracks a changing country selection and keeps its
// state in sync with the backend. Every selection change supersedes the
// previous one: the in-flight request is canceled (advisory, the remote
// work may still finish) and its eventual result, success or failure, is
// discarded without touching state. Completions are applied strictly in
// last-request-wins order via a generation counter checked under the
// state lock before any mutation.
type FrameworkWatcher struct {
	loader *Frameworks
	logger *slog.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	state   FrameworkState
	baseCtx context.Context
	closed  bool

	discarded atomic.Uint64
}

// NewFrameworkWatcher creates a watcher over the given loader. The
// watcher owns no goroutines until the first selection.
func NewFrameworkWatcher(loader *Frameworks, logger *slog.Logger) *FrameworkWatcher {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FrameworkWatcher{
		loader:  loader,
		logger:  logger.With(slog.String("component", "framework_watcher")),
		baseCtx: context.Background(),
	}
}

// Select changes the watched country code and triggers the fetch for it.
// An empty code synchronously clears the framework with no error. A cache
// hit is also applied synchronously with no remote call; otherwise the
// state switches to loading and the fetch proceeds in the background.
func (w *FrameworkWatcher) Select(countryCode string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	// Any previous in-flight request is superseded from this point on.
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}

	if countryCode == "" {
		w.state = FrameworkState{}
		return
	}

	if fw, ok := w.loader.Cached(w.baseCtx, countryCode); ok {
		w.state = FrameworkState{CountryCode: countryCode, Framework: fw}
		return
	}

	w.state = FrameworkState{CountryCode: countryCode, Loading: true}

	ctx, cancel := context.WithCancel(w.baseCtx)
	w.cancel = cancel
	go w.fetch(ctx, w.gen, countryCode)
}

// fetch performs the remote lookup for one generation and applies the
// outcome only if that generation is still current.
func (w *FrameworkWatcher) fetch(ctx context.Context, gen uint64, countryCode string) {
	fw, err := w.loader.Get(ctx, countryCode)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen || w.closed {
		w.discarded.Add(1)
		w.logger.Debug("discarding superseded framework response",
			slog.String("country_code", countryCode))
		return
	}

	if err != nil {
		w.state = FrameworkState{
			CountryCode: countryCode,
			Err:         userMessage(err, genericFrameworkErrMsg),
		}
		return
	}

	w.state = FrameworkState{CountryCode: countryCode, Framework: fw}
}

// State returns a snapshot of the current watcher state.
func (w *FrameworkWatcher) State() FrameworkState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Discarded reports how many superseded responses were dropped. Useful
// for observability and tests.
func (w *FrameworkWatcher) Discarded() uint64 {
	return w.discarded.Load()
}

// Close cancels any in-flight request and makes further selections
// no-ops.
func (w *FrameworkWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state = FrameworkState{}
}
