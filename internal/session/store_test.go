package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-userdetails/pkg/controller"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStoreLifecycle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewStore(WithTTL(time.Minute), WithClock(clock.Now))

	id, state := store.Create()
	if state.Screen != controller.ScreenForm {
		t.Fatalf("new sessions start on the form")
	}

	state.Screen = controller.ScreenPreview
	store.Put(id, state)

	clock.Advance(45 * time.Second)
	got, ok := store.Get(id)
	if !ok || got.Screen != controller.ScreenPreview {
		t.Fatalf("expected stored state, got %+v %v", got, ok)
	}

	clock.Advance(45 * time.Second)
	if _, ok := store.Get(id); !ok {
		t.Fatalf("Get should refresh the idle timer")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := store.Get(id); ok {
		t.Fatalf("expected session to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expired session should be removed on access")
	}
}

func TestStoreSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := 0
	store := NewStore(WithTTL(time.Minute), WithClock(clock.Now), WithIDSource(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}))

	store.Create()
	clock.Advance(2 * time.Minute)
	store.Create()

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected one expired session, got %d", removed)
	}
	if _, ok := store.Get("s2"); !ok {
		t.Fatalf("fresh session should survive the sweep")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	id, _ := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, _ := store.Get(id)
			store.Put(id, state)
		}()
	}
	wg.Wait()
	if _, ok := store.Get(id); !ok {
		t.Fatalf("session lost under concurrent access")
	}
	store.Delete(id)
	if _, ok := store.Get(id); ok {
		t.Fatalf("expected deleted session to be gone")
	}
}
