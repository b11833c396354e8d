package events

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus is the in-process publish side plus connection bookkeeping. Delivery
// is at-most-once: a full subscriber queue drops the event for that
// subscriber rather than blocking the publisher, and every payload is a full
// snapshot so the next event heals a missed one.
type Bus struct {
	registry  *Registry
	queueSize int

	mu     sync.Mutex
	conns  map[string]*Connection
	closed bool

	published atomic.Int64
	delivered atomic.Int64
	dropped   atomic.Int64
}

type Stats struct {
	Published   int64 `json:"published"`
	Delivered   int64 `json:"delivered"`
	Dropped     int64 `json:"dropped"`
	Connections int   `json:"connections"`
}

func NewBus(queueSize int) *Bus {
	return &Bus{
		registry:  NewRegistry(),
		queueSize: queueSize,
		conns:     make(map[string]*Connection),
	}
}

// Subscribe registers a new connection on the given topics. On a closed bus
// the returned connection is already closed, so stream handlers unwind
// immediately.
func (b *Bus) Subscribe(topics ...string) *Connection {
	conn := newConnection(uuid.NewString(), topics, b.queueSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		conn.Close()
		return conn
	}
	b.conns[conn.ID()] = conn
	b.mu.Unlock()

	for _, topic := range topics {
		b.registry.Add(topic, conn)
	}
	return conn
}

// Unsubscribe closes conn and removes it from every topic it was on.
func (b *Bus) Unsubscribe(conn *Connection) {
	conn.Close()
	for _, topic := range conn.Topics() {
		b.registry.Remove(topic, conn)
	}
	b.mu.Lock()
	delete(b.conns, conn.ID())
	b.mu.Unlock()
}

// Publish fans event out to every subscriber of topic. Enqueues to closed
// connections are no-ops and not counted as drops.
func (b *Bus) Publish(topic string, event Event) {
	b.published.Add(1)
	b.registry.ForEach(topic, func(conn *Connection) {
		if conn.Enqueue(event) {
			b.delivered.Add(1)
		} else if !conn.Closed() {
			b.dropped.Add(1)
		}
	})
}

// Close closes every connection; their handlers observe Done, deregister
// and return. Idempotent.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	conns := make([]*Connection, 0, len(b.conns))
	for _, conn := range b.conns {
		conns = append(conns, conn)
	}
	b.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

func (b *Bus) Stats() Stats {
	b.mu.Lock()
	connections := len(b.conns)
	b.mu.Unlock()
	return Stats{
		Published:   b.published.Load(),
		Delivered:   b.delivered.Load(),
		Dropped:     b.dropped.Load(),
		Connections: connections,
	}
}
