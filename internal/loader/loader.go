// Package loader applies fetch results only when no newer fetch has started,
// so a slow response cannot overwrite fresher data.
package loader

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by Load when a newer Load superseded it.
var ErrStale = errors.New("stale fetch result discarded")

// Snapshot is the state of a Loader.
type Snapshot[T any] struct {
	Value      T
	Err        error
	Loading    bool
	Generation uint64
}

// Loader holds the latest applied result of a fetch.
type Loader[T any] struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	value      T
	err        error
	loading    bool
}

// Load runs fetch under a new generation. The previous in-flight fetch, if
// any, is cancelled. The result is stored only if this is still the latest
// generation when fetch returns; otherwise ErrStale is returned.
func (l *Loader[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	gen := l.generation
	l.cancel = cancel
	l.loading = true
	l.mu.Unlock()

	value, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		var zero T
		return zero, ErrStale
	}
	l.cancel = nil
	l.loading = false
	if err != nil {
		l.err = err
		return value, err
	}
	l.value = value
	l.err = nil
	return value, nil
}

// Cancel aborts the in-flight fetch and invalidates its result.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
	l.loading = false
}

// Snapshot returns the current state.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{
		Value:      l.value,
		Err:        l.err,
		Loading:    l.loading,
		Generation: l.generation,
	}
}
