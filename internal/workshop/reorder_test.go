package workshop

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"
)

// blockingReorder records calls and blocks each one until released.
type blockingReorder struct {
	mu      sync.Mutex
	calls   [][]string
	release chan struct{}
}

func newBlockingReorder() *blockingReorder {
	return &blockingReorder{release: make(chan struct{})}
}

func (b *blockingReorder) fn(ctx context.Context, ids []string) error {
	b.mu.Lock()
	b.calls = append(b.calls, ids)
	b.mu.Unlock()
	<-b.release
	return nil
}

func (b *blockingReorder) recorded() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]string, len(b.calls))
	copy(out, b.calls)
	return out
}

func waitForCalls(t *testing.T, b *blockingReorder, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(b.recorded()) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d reorder calls, got %d", n, len(b.recorded()))
}

func TestReorderGateCoalescesWhileInFlight(t *testing.T) {
	store := newBlockingReorder()

	var mu sync.Mutex
	var results [][]string
	gate := NewReorderGate(store.fn, func(ids []string, err error) {
		mu.Lock()
		results = append(results, ids)
		mu.Unlock()
	}, testLogger())

	gate.Submit(context.Background(), []string{"a", "b", "c"})
	waitForCalls(t, store, 1)

	// Two more orders arrive while the first write is blocked; only the
	// newest may be written next.
	gate.Submit(context.Background(), []string{"b", "a", "c"})
	gate.Submit(context.Background(), []string{"c", "a", "b"})

	close(store.release) // unblock all writes
	gate.Wait()

	calls := store.recorded()
	if len(calls) != 2 {
		t.Fatalf("store saw %d writes, want 2 (intermediate order coalesced away)", len(calls))
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(calls[0], want) {
		t.Errorf("first write = %v, want %v", calls[0], want)
	}
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(calls[1], want) {
		t.Errorf("second write = %v, want %v (last writer wins)", calls[1], want)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 1 {
		t.Fatalf("onResult fired %d times, want 1 (superseded writes are silent)", len(results))
	}
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(results[0], want) {
		t.Errorf("reported order = %v, want %v", results[0], want)
	}
}

func TestReorderGateSequentialSubmitsAllPersist(t *testing.T) {
	var mu sync.Mutex
	var calls [][]string
	gate := NewReorderGate(func(ctx context.Context, ids []string) error {
		mu.Lock()
		calls = append(calls, ids)
		mu.Unlock()
		return nil
	}, nil, testLogger())

	gate.Submit(context.Background(), []string{"a", "b"})
	gate.Wait()
	gate.Submit(context.Background(), []string{"b", "a"})
	gate.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 {
		t.Fatalf("store saw %d writes, want 2", len(calls))
	}
}

func TestReorderGateCopiesSubmittedSlice(t *testing.T) {
	var mu sync.Mutex
	var got []string
	gate := NewReorderGate(func(ctx context.Context, ids []string) error {
		mu.Lock()
		got = ids
		mu.Unlock()
		return nil
	}, nil, testLogger())

	ids := []string{"a", "b"}
	gate.Submit(context.Background(), ids)
	ids[0] = "mutated"
	gate.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got[0] != "a" {
		t.Errorf("gate shared the caller's slice: %v", got)
	}
}
