package events

import "sync"

// Registry maps topics to subscriber sets. Each topic has its own lock, so
// subscribing to one order's stream never contends with fan-out on another;
// fan-out holds the topic lock for the whole pass, which makes per-topic
// delivery order equal publish order.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]*subscriberSet
}

type subscriberSet struct {
	mu    sync.Mutex
	conns map[string]*Connection
}

func NewRegistry() *Registry {
	return &Registry{topics: make(map[string]*subscriberSet)}
}

func (r *Registry) Add(topic string, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.topics[topic]
	if !ok {
		set = &subscriberSet{conns: make(map[string]*Connection)}
		r.topics[topic] = set
	}
	set.mu.Lock()
	set.conns[conn.ID()] = conn
	set.mu.Unlock()
}

// Remove drops conn from topic; the last removal drops the topic itself.
func (r *Registry) Remove(topic string, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.topics[topic]
	if !ok {
		return
	}
	set.mu.Lock()
	delete(set.conns, conn.ID())
	empty := len(set.conns) == 0
	set.mu.Unlock()
	if empty {
		delete(r.topics, topic)
	}
}

// ForEach runs fn for every connection currently subscribed to topic, under
// the topic lock.
func (r *Registry) ForEach(topic string, fn func(*Connection)) {
	r.mu.RLock()
	set, ok := r.topics[topic]
	r.mu.RUnlock()
	if !ok {
		return
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	for _, conn := range set.conns {
		fn(conn)
	}
}

func (r *Registry) Subscribers(topic string) int {
	r.mu.RLock()
	set, ok := r.topics[topic]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.conns)
}

func (r *Registry) Topics() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics)
}
