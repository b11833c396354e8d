package events

import (
	"sync"
	"sync/atomic"
)

// Connection is one subscriber: a bounded outbound queue drained by a single
// stream handler goroutine. Publishers enqueue without blocking; when the
// queue is full the event is dropped for this connection only and the
// connection is marked degraded.
type Connection struct {
	id     string
	topics []string

	queue chan Event
	done  chan struct{}

	closed   atomic.Bool
	degraded atomic.Bool
	once     sync.Once
}

func newConnection(id string, topics []string, queueSize int) *Connection {
	return &Connection{
		id:     id,
		topics: topics,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
}

func (c *Connection) ID() string {
	return c.id
}

func (c *Connection) Topics() []string {
	return c.topics
}

// Events is the drain side of the queue, read by exactly one goroutine.
func (c *Connection) Events() <-chan Event {
	return c.queue
}

// Done is closed when the connection closes.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

func (c *Connection) Closed() bool {
	return c.closed.Load()
}

// Degraded reports whether at least one event was dropped because the queue
// was full.
func (c *Connection) Degraded() bool {
	return c.degraded.Load()
}

// Enqueue offers an event without blocking. It reports false when the
// connection is closed (a harmless no-op for in-flight publishes) or when
// the queue is full, in which case the connection is marked degraded.
func (c *Connection) Enqueue(event Event) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.queue <- event:
		return true
	default:
		c.degraded.Store(true)
		return false
	}
}

// Close is idempotent. The queue channel is never closed; concurrent
// publishers observe the closed flag instead.
func (c *Connection) Close() {
	c.once.Do(func() {
		c.closed.Store(true)
		close(c.done)
	})
}
