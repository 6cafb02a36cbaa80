package recognition

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func recvOne(t *testing.T, sub *Subscription) Recognition {
	t.Helper()
	select {
	case rec, ok := <-sub.Events():
		if !ok {
			t.Fatal("events channel closed unexpectedly")
		}
		return rec
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Recognition{}
}

func TestHubDeliversInOrder(t *testing.T) {
	hub := NewHub(4)
	sub := hub.Subscribe()
	defer sub.Cancel()

	for i := 0; i < 10; i++ {
		hub.Publish(Recognition{ID: fmt.Sprintf("r%d", i)})
	}

	for i := 0; i < 10; i++ {
		rec := recvOne(t, sub)
		if rec.ID != fmt.Sprintf("r%d", i) {
			t.Fatalf("event %d out of order: %s", i, rec.ID)
		}
	}
}

func TestHubNoBackfill(t *testing.T) {
	hub := NewHub(4)
	hub.Publish(Recognition{ID: "early"})

	sub := hub.Subscribe()
	defer sub.Cancel()
	hub.Publish(Recognition{ID: "late"})

	if rec := recvOne(t, sub); rec.ID != "late" {
		t.Fatalf("expected only post-subscribe event, got %s", rec.ID)
	}
	select {
	case rec := <-sub.Events():
		t.Fatalf("unexpected extra event: %s", rec.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(2)
	slow := hub.Subscribe()
	defer slow.Cancel()
	fast := hub.Subscribe()
	defer fast.Cancel()

	// Publish far beyond the slow subscriber's channel buffer without ever
	// draining it. Publish must return promptly every time.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.Publish(Recognition{ID: fmt.Sprintf("r%d", i)})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The fast subscriber still receives everything, in order.
	for i := 0; i < 200; i++ {
		rec := recvOne(t, fast)
		if rec.ID != fmt.Sprintf("r%d", i) {
			t.Fatalf("event %d out of order: %s", i, rec.ID)
		}
	}

	// The slow subscriber loses nothing either; the excess was buffered.
	for i := 0; i < 200; i++ {
		rec := recvOne(t, slow)
		if rec.ID != fmt.Sprintf("r%d", i) {
			t.Fatalf("slow event %d out of order: %s", i, rec.ID)
		}
	}
}

func TestHubCancelConcurrentWithPublish(t *testing.T) {
	hub := NewHub(1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.Publish(Recognition{ID: fmt.Sprintf("r%d", i)})
		}
	}()

	for i := 0; i < 50; i++ {
		sub := hub.Subscribe()
		go func() {
			for range sub.Events() {
			}
		}()
		sub.Cancel()
		sub.Cancel() // repeated cancel must be safe
	}
	wg.Wait()

	if got := hub.Subscribers(); got != 0 {
		t.Fatalf("expected all subscriptions released, got %d", got)
	}
}

func TestHubCancelClosesEvents(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe()
	sub.Cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
}

func TestHubCloseEndsSubscriptions(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe()

	hub.Close()
	hub.Close() // idempotent

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("expected closed channel after hub close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after hub close")
	}

	late := hub.Subscribe()
	if _, ok := <-late.Events(); ok {
		t.Fatal("expected completed subscription from closed hub")
	}
}
