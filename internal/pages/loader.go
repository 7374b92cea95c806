// Package pages holds one controller per screen. Controllers own their loading, error and
// data state through a Loader and know nothing about how they are rendered.
package pages

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/rs/zerolog/log"
)

// Status is where a Loader is in its lifecycle.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is an immutable view of a Loader's state. Data keeps the last successful value
// while a reload is in flight.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Err    error
	Kind   apiclient.ErrorKind
}

// FetchFunc loads a page's data. It must honor ctx.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Loader runs a page's fetch and tracks its result. Each load gets its own context and
// generation number; a result is committed only if its generation is still current.
type Loader[T any] struct {
	page  string
	fetch FetchFunc[T]

	mu     sync.Mutex
	snap   Snapshot[T]
	gen    uint64
	cancel context.CancelFunc
	subs   []func(Snapshot[T])
}

// NewLoader creates an idle Loader for page.
func NewLoader[T any](page string, fetch FetchFunc[T]) *Loader[T] {
	return &Loader[T]{page: page, fetch: fetch}
}

// Subscribe registers fn to be called after every state transition.
func (l *Loader[T]) Subscribe(fn func(Snapshot[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

// Snapshot returns the current state.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Mount starts the initial load. It does nothing unless the Loader is Idle, so mounting
// twice never fetches twice.
func (l *Loader[T]) Mount(ctx context.Context) Snapshot[T] {
	l.mu.Lock()
	if l.snap.Status != Idle {
		snap := l.snap
		l.mu.Unlock()
		return snap
	}
	return l.start(ctx)
}

// Reload fetches again, superseding any load in flight.
func (l *Loader[T]) Reload(ctx context.Context) Snapshot[T] {
	l.mu.Lock()
	return l.start(ctx)
}

// Retry is Reload, offered after a failure.
func (l *Loader[T]) Retry(ctx context.Context) Snapshot[T] {
	return l.Reload(ctx)
}

// Unmount cancels any load in flight. Its result, if it still arrives, is discarded.
func (l *Loader[T]) Unmount() {
	l.mu.Lock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.snap.Status == Loading {
		l.snap.Status = Idle
	}
	l.mu.Unlock()
}

// start must be called with l.mu held; it releases it.
func (l *Loader[T]) start(parent context.Context) Snapshot[T] {
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	l.cancel = cancel
	l.snap = Snapshot[T]{Status: Loading, Data: l.snap.Data}
	l.publishLocked()

	data, err := l.fetch(ctx)

	l.mu.Lock()
	if gen != l.gen {
		// Superseded or unmounted.
		snap := l.snap
		l.mu.Unlock()
		return snap
	}
	l.cancel = nil
	if err != nil {
		kind := apiclient.Kind(err)
		log.Error().Err(err).Str("page", l.page).Str("kind", string(kind)).Msg("Failed to load page data")
		l.snap = Snapshot[T]{Status: Failed, Data: l.snap.Data, Err: err, Kind: kind}
	} else {
		l.snap = Snapshot[T]{Status: Ready, Data: data}
	}
	snap := l.snap
	l.publishLocked()
	return snap
}

// publishLocked sends the current snapshot to subscribers. It is called with l.mu held
// and releases it before calling out.
func (l *Loader[T]) publishLocked() {
	snap := l.snap
	subs := slices.Clone(l.subs)
	l.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// ErrNotReady is returned by controller actions that need loaded data.
var ErrNotReady = errors.New("page data is not loaded")
