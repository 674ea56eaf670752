package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/NeatNerdPrime/milvus/internal/clock"
)

// PlacementEvent records a single routing decision: a task item moved (or
// failed to move) from one resource onto another.
type PlacementEvent struct {
	TaskID       string    `json:"taskId"`
	FromResource string    `json:"fromResource"`
	ToResource   string    `json:"toResource,omitempty"`
	Reason       string    `json:"reason"`
	Err          string    `json:"err,omitempty"`
	At           time.Time `json:"at"`
}

// Publisher publishes PlacementEvents onto a Queue. A nil *Publisher is a
// valid no-op receiver so callers that do not care about telemetry can pass
// one in freely.
type Publisher struct {
	queue Queue[PlacementEvent]
}

// NewPublisher wraps queue. Passing a nil queue yields a Publisher whose
// Publish calls are no-ops.
func NewPublisher(queue Queue[PlacementEvent]) *Publisher {
	return &Publisher{queue: queue}
}

// Publish records ev, stamping At if unset. Errors publishing telemetry are
// logged, never returned, so a broken telemetry bus never fails routing. A
// queue whose Publish blocks (a full MemQueue) holds the caller until space
// frees up or ctx is done.
func (p *Publisher) Publish(ctx context.Context, ev PlacementEvent) {
	if p == nil || p.queue == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = clock.Now()
	}
	if err := p.queue.Publish(ctx, &ev); err != nil {
		log.Printf("telemetry: failed to publish placement event for task %s: %v", ev.TaskID, err)
	}
}

// Listen drains the queue on a background goroutine, invoking handler for
// every PlacementEvent until ctx is done.
func Listen(ctx context.Context, queue Queue[PlacementEvent], handler func(PlacementEvent)) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			msg, err := queue.Consume(ctx)
			if err != nil {
				return
			}
			if err := msg.Ack(); err != nil {
				continue
			}
			handler(*msg.T())
		}
	}()
}
