// Package watch mirrors one owner's records of a remote collection
// into local state. A watcher subscribes to the collection's change
// topic on the stream hub and replaces its snapshot with a fresh
// authoritative load whenever a change event arrives.
//
// Ordering of the mirrored list is whatever the loader returns; the
// gateways order by creation time, the watcher itself never sorts.
package watch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"backend-wandermap/internal/apperr"
	"backend-wandermap/internal/stream"
)

// Snapshot is the continuously updated view a watcher exposes.
// Err is a user-facing message; when set, Records still holds the last
// successfully loaded state rather than being cleared.
type Snapshot[T any] struct {
	Records   []T
	IsLoading bool
	Err       string
}

// Loader fetches the authoritative, owner-filtered state of the
// collection. Gateways' ListByOwner methods satisfy this shape.
type Loader[T any] func(ctx context.Context, userID string) ([]T, error)

type Watcher[T any] struct {
	collection string
	hub        *stream.Hub
	load       Loader[T]

	mu     sync.Mutex
	state  Snapshot[T]
	userID string
	client *stream.Client
	cancel context.CancelFunc
	done   chan struct{}
}

func New[T any](collection string, hub *stream.Hub, load Loader[T]) *Watcher[T] {
	return &Watcher[T]{collection: collection, hub: hub, load: load}
}

// Start subscribes the watcher to the given owner's records. A watcher
// that is already running is torn down first, so Start doubles as the
// re-subscription path when the user changes.
func (w *Watcher[T]) Start(ctx context.Context, userID string) {
	w.Stop()

	ctx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	w.userID = userID
	w.cancel = cancel
	w.client = w.hub.Register(stream.Topic(w.collection, userID))
	w.done = make(chan struct{})
	w.state.IsLoading = true
	w.state.Err = ""
	client := w.client
	done := w.done
	w.mu.Unlock()

	go func() {
		defer close(done)
		w.reload(ctx, userID)
		for range client.Send {
			w.reload(ctx, userID)
		}
	}()
}

// Stop releases the subscription and waits for the mirror goroutine to
// exit. Safe to call on a stopped watcher.
func (w *Watcher[T]) Stop() {
	w.mu.Lock()
	client := w.client
	cancel := w.cancel
	done := w.done
	w.client = nil
	w.cancel = nil
	w.done = nil
	w.userID = ""
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if client != nil {
		w.hub.Unregister(client)
	}
	if done != nil {
		<-done
	}
}

// Snapshot returns a copy of the current state.
func (w *Watcher[T]) Snapshot() Snapshot[T] {
	w.mu.Lock()
	defer w.mu.Unlock()

	records := make([]T, len(w.state.Records))
	copy(records, w.state.Records)
	return Snapshot[T]{
		Records:   records,
		IsLoading: w.state.IsLoading,
		Err:       w.state.Err,
	}
}

func (w *Watcher[T]) reload(ctx context.Context, userID string) {
	records, err := w.load(ctx, userID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID != userID {
		// a Stop or re-subscribe raced this load; its result is stale
		return
	}
	w.state.IsLoading = false
	if err != nil {
		log.Print(&apperr.SubscriptionError{Collection: w.collection, Err: err})
		w.state.Err = fmt.Sprintf("Unable to load your %s. Please try again.", w.collection)
		return
	}
	w.state.Err = ""
	w.state.Records = records
}
