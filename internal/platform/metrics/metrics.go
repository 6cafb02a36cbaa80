package metrics

import (
	"sync/atomic"
	"time"
)

// Collector aggregates service counters with atomics; it is safe for
// concurrent use from every request goroutine.
type Collector struct {
	totalRequests       uint64
	errorRequests       uint64
	totalDurationMs     uint64
	recognitionsCreated uint64
	eventsDelivered     uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecognitionCreated() {
	atomic.AddUint64(&c.recognitionsCreated, 1)
}

func (c *Collector) EventDelivered() {
	atomic.AddUint64(&c.eventsDelivered, 1)
}

// Snapshot renders the counters plus the caller-supplied live subscriber
// gauge.
func (c *Collector) Snapshot(subscribers int) map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         errs,
		"avgDurationMs":       avg,
		"recognitionsCreated": atomic.LoadUint64(&c.recognitionsCreated),
		"eventsDelivered":     atomic.LoadUint64(&c.eventsDelivered),
		"liveSubscribers":     subscribers,
	}
}
