package course

import (
	"context"
	"sync"
)

// CompletionThreshold is the played fraction at which a lesson counts as
// watched.
const CompletionThreshold = 0.98

// CloseDecision tells the player what to do when the user closes it.
type CloseDecision int

const (
	// CloseOK means progress was saved and the player may close.
	CloseOK CloseDecision = iota
	// CloseConfirmRequired means the user must confirm that progress may
	// not be saved.
	CloseConfirmRequired
)

// CloseWarning is shown with CloseConfirmRequired.
const CloseWarning = "Your progress may not be saved. Close the video anyway?"

// ProgressWatcher triggers the lesson completion call once per player
// session.
type ProgressWatcher struct {
	complete func(ctx context.Context) error

	mu       sync.Mutex
	fired    bool
	inFlight bool
}

// NewProgressWatcher returns a watcher that calls complete when playback
// first reaches CompletionThreshold.
func NewProgressWatcher(complete func(ctx context.Context) error) *ProgressWatcher {
	return &ProgressWatcher{complete: complete}
}

// Observe records a progress event. It reports whether this event
// triggered the completion call. A failed call re-arms the watcher so a
// later event can retry.
func (w *ProgressWatcher) Observe(ctx context.Context, played float64) (bool, error) {
	if played < CompletionThreshold {
		return false, nil
	}

	w.mu.Lock()
	if w.fired || w.inFlight {
		w.mu.Unlock()
		return false, nil
	}
	w.inFlight = true
	w.mu.Unlock()

	err := w.complete(ctx)

	w.mu.Lock()
	w.inFlight = false
	w.fired = err == nil
	w.mu.Unlock()

	if err != nil {
		return false, err
	}
	return true, nil
}

// Completed reports whether the completion call succeeded.
func (w *ProgressWatcher) Completed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fired
}

// Close decides whether the player can close without confirmation.
func (w *ProgressWatcher) Close() CloseDecision {
	if w.Completed() {
		return CloseOK
	}
	return CloseConfirmRequired
}
