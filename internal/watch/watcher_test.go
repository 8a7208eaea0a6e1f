package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"backend-wandermap/internal/stream"
)

type record struct {
	ID     string
	UserID string
	Name   string
}

// fakeStore is an in-memory owner-filtered collection with a failure
// switch, standing in for the mutation gateway's ListByOwner.
type fakeStore struct {
	mu      sync.Mutex
	records []record
	fail    bool
}

func (f *fakeStore) list(_ context.Context, userID string) ([]record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("backend outage")
	}
	var out []record
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) put(r record) {
	f.mu.Lock()
	f.records = append(f.records, r)
	f.mu.Unlock()
}

func (f *fakeStore) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached in time")
}

func TestWatcherInitialLoadAndLiveUpdate(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{}
	store.put(record{ID: "r1", UserID: "user-a", Name: "first"})

	w := New("trips", hub, store.list)
	w.Start(context.Background(), "user-a")
	defer w.Stop()

	waitFor(t, func() bool {
		snap := w.Snapshot()
		return !snap.IsLoading && len(snap.Records) == 1
	})

	store.put(record{ID: "r2", UserID: "user-a", Name: "second"})
	hub.Broadcast(stream.Topic("trips", "user-a"), []byte(`{"op":"create","id":"r2"}`))

	waitFor(t, func() bool {
		return len(w.Snapshot().Records) == 2
	})
}

func TestWatcherFiltersByOwner(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{}
	store.put(record{ID: "a1", UserID: "user-a"})
	store.put(record{ID: "b1", UserID: "user-b"})

	w := New("trips", hub, store.list)
	w.Start(context.Background(), "user-b")
	defer w.Stop()

	waitFor(t, func() bool { return !w.Snapshot().IsLoading })

	snap := w.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0].UserID != "user-b" {
		t.Fatalf("watcher leaked foreign records: %+v", snap.Records)
	}
}

func TestWatcherKeepsStaleRecordsOnFailure(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{}
	store.put(record{ID: "r1", UserID: "user-a"})

	w := New("trips", hub, store.list)
	w.Start(context.Background(), "user-a")
	defer w.Stop()

	waitFor(t, func() bool { return len(w.Snapshot().Records) == 1 })

	store.setFail(true)
	hub.Broadcast(stream.Topic("trips", "user-a"), []byte(`{}`))

	waitFor(t, func() bool { return w.Snapshot().Err != "" })

	snap := w.Snapshot()
	if len(snap.Records) != 1 {
		t.Fatalf("transient failure must not clear previously loaded records")
	}
	if snap.IsLoading {
		t.Fatalf("expected loading cleared after failure")
	}

	// recovery clears the error
	store.setFail(false)
	hub.Broadcast(stream.Topic("trips", "user-a"), []byte(`{}`))
	waitFor(t, func() bool { return w.Snapshot().Err == "" })
}

func TestWatcherErrorOnInitialLoad(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{fail: true}

	w := New("guides", hub, store.list)
	w.Start(context.Background(), "user-a")
	defer w.Stop()

	waitFor(t, func() bool {
		snap := w.Snapshot()
		return snap.Err != "" && !snap.IsLoading
	})
}

func TestWatcherResubscribeSwitchesUser(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{}
	store.put(record{ID: "a1", UserID: "user-a"})
	store.put(record{ID: "b1", UserID: "user-b"})

	w := New("trips", hub, store.list)
	w.Start(context.Background(), "user-a")
	defer w.Stop()

	waitFor(t, func() bool { return len(w.Snapshot().Records) == 1 })

	// changing the user tears down the old subscription and loads fresh
	w.Start(context.Background(), "user-b")

	waitFor(t, func() bool {
		snap := w.Snapshot()
		return len(snap.Records) == 1 && snap.Records[0].UserID == "user-b"
	})

	// events for the old user no longer affect the snapshot
	store.put(record{ID: "a2", UserID: "user-a"})
	hub.Broadcast(stream.Topic("trips", "user-a"), []byte(`{}`))
	time.Sleep(50 * time.Millisecond)
	if got := w.Snapshot().Records; len(got) != 1 || got[0].UserID != "user-b" {
		t.Fatalf("stale subscription survived re-subscribe: %+v", got)
	}
}

func TestWatcherStopReleasesSubscription(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{}
	store.put(record{ID: "r1", UserID: "user-a"})

	w := New("trips", hub, store.list)
	w.Start(context.Background(), "user-a")
	waitFor(t, func() bool { return len(w.Snapshot().Records) == 1 })

	w.Stop()
	w.Stop() // stopping twice must be safe

	store.put(record{ID: "r2", UserID: "user-a"})
	hub.Broadcast(stream.Topic("trips", "user-a"), []byte(`{}`))
	time.Sleep(50 * time.Millisecond)

	if len(w.Snapshot().Records) != 1 {
		t.Fatalf("stopped watcher must not process events")
	}
}

func TestWatcherSnapshotIsACopy(t *testing.T) {
	hub := stream.NewHub(nil)
	store := &fakeStore{}
	store.put(record{ID: "r1", UserID: "user-a", Name: "original"})

	w := New("trips", hub, store.list)
	w.Start(context.Background(), "user-a")
	defer w.Stop()

	waitFor(t, func() bool { return len(w.Snapshot().Records) == 1 })

	snap := w.Snapshot()
	snap.Records[0].Name = "mutated"

	if w.Snapshot().Records[0].Name != "original" {
		t.Fatalf("snapshot must not share backing storage with the watcher")
	}
}
