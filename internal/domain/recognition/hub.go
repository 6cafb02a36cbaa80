package recognition

import "sync"

// Hub multicasts newly created recognitions to live subscribers. One hub is
// created per process and shared by every creation. Publish never blocks the
// publisher: backpressure from a slow subscriber is absorbed into that
// subscriber's pending queue, never into the creation path, and never affects
// delivery to other subscribers.
//
// Subscribe establishes a strict happens-before cut against Publish: both take
// the hub mutex, so a subscriber sees exactly the events whose Publish
// acquired the mutex after its Subscribe completed. No history is replayed.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
	closed bool
}

// NewHub returns a hub whose subscriptions deliver through channels buffered
// to the given size. The buffer only smooths bursts; correctness does not
// depend on it.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: map[uint64]*Subscription{}, buffer: buffer}
}

// Publish enqueues the recognition for every current subscriber. Holding the
// hub mutex across the whole fan-out gives all subscribers a single total
// order of events. Enqueueing is append-and-signal, so the critical section
// never waits on a subscriber.
func (h *Hub) Publish(rec Recognition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		sub.enqueue(rec)
	}
}

// Subscribe registers a new listener and returns its subscription. Events
// published before the call are not delivered. On a closed hub the returned
// subscription is already complete.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		out:  make(chan Recognition, h.buffer),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.cancelOnce.Do(func() { close(sub.done) })
		close(sub.out)
		return sub
	}
	h.nextID++
	sub.id = h.nextID
	sub.hub = h
	h.subs[sub.id] = sub
	h.mu.Unlock()

	go sub.pump()
	return sub
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close cancels every subscription and rejects future ones. Safe to call
// concurrently with Publish and Subscribe, and more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.subs = map[uint64]*Subscription{}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

// Subscription is a live listener handle. Events() yields recognitions in
// publish order until Cancel is called or the hub closes, after which the
// channel is closed. A subscription cannot be restarted.
type Subscription struct {
	hub *Hub
	id  uint64

	mu      sync.Mutex
	pending []Recognition

	wake chan struct{}
	done chan struct{}
	out  chan Recognition

	cancelOnce sync.Once
}

func (s *Subscription) Events() <-chan Recognition {
	return s.out
}

// Cancel detaches the subscription from the hub and stops delivery. Safe to
// call concurrently with an in-flight Publish and safe to call repeatedly.
// The events channel is closed once the pump goroutine exits.
func (s *Subscription) Cancel() {
	s.cancelOnce.Do(func() {
		close(s.done)
		if s.hub != nil {
			s.hub.mu.Lock()
			delete(s.hub.subs, s.id)
			s.hub.mu.Unlock()
		}
	})
}

// enqueue is called with the hub mutex held. It must not block.
func (s *Subscription) enqueue(rec Recognition) {
	s.mu.Lock()
	s.pending = append(s.pending, rec)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// pump drains the pending queue into the events channel, preserving order.
func (s *Subscription) pump() {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			batch := s.pending
			s.pending = nil
			s.mu.Unlock()
			if len(batch) == 0 {
				break
			}

			for _, rec := range batch {
				select {
				case s.out <- rec:
				case <-s.done:
					return
				}
			}
		}
	}
}
