package metrics

import (
	"testing"
	"time"
)

func TestCollector(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.RecognitionCreated()
	c.EventDelivered()
	c.EventDelivered()

	snap := c.Snapshot(3)
	if snap["requestsTotal"].(uint64) != 2 {
		t.Fatalf("unexpected request count: %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"].(uint64) != 1 {
		t.Fatalf("unexpected error count: %v", snap["errorsTotal"])
	}
	if snap["avgDurationMs"].(float64) != 20 {
		t.Fatalf("unexpected average: %v", snap["avgDurationMs"])
	}
	if snap["recognitionsCreated"].(uint64) != 1 {
		t.Fatalf("unexpected created count: %v", snap["recognitionsCreated"])
	}
	if snap["eventsDelivered"].(uint64) != 2 {
		t.Fatalf("unexpected delivered count: %v", snap["eventsDelivered"])
	}
	if snap["liveSubscribers"].(int) != 3 {
		t.Fatalf("unexpected subscriber gauge: %v", snap["liveSubscribers"])
	}
}
