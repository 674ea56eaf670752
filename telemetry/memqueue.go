package telemetry

import (
	"context"
	"sync"
)

// memMessage implements Message[T] for MemQueue.
type memMessage[T any] struct {
	payload   T
	mu        sync.Mutex
	processed bool
}

func (m *memMessage[T]) T() *T { return &m.payload }

func (m *memMessage[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed = true
	return nil
}

// MemQueue is an in-memory, channel-backed Queue. Publish does not block
// while the buffer has room, and nothing is dropped: on a full buffer
// Publish waits until a consumer takes a message or ctx is done.
type MemQueue[T any] struct {
	messages chan *memMessage[T]
}

// NewMemQueue creates an in-memory queue with the given buffer size. A
// non-positive size defaults to 64.
func NewMemQueue[T any](buffer int) *MemQueue[T] {
	if buffer <= 0 {
		buffer = 64
	}
	return &MemQueue[T]{messages: make(chan *memMessage[T], buffer)}
}

// Publish adds payload to the queue.
func (q *MemQueue[T]) Publish(ctx context.Context, t *T) error {
	msg := &memMessage[T]{payload: *t}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves the next message.
func (q *MemQueue[T]) Consume(ctx context.Context) (Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size reports the number of buffered, unconsumed messages.
func (q *MemQueue[T]) Size() int { return len(q.messages) }

var _ Queue[int] = (*MemQueue[int])(nil)
