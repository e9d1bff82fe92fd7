package service

import "sync"

// Connection is one live websocket session bound to a single user and group.
// Outbound traffic goes through a bounded send channel drained by the
// connection's writer goroutine; TrySend never blocks.
type Connection struct {
	ID       string
	Username string
	GroupID  int64

	send chan []byte
}

func NewConnection(id, username string, groupID int64, sendBuffer int) *Connection {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Connection{
		ID:       id,
		Username: username,
		GroupID:  groupID,
		send:     make(chan []byte, sendBuffer),
	}
}

// Outbound is the channel the writer goroutine drains. It is closed when
// the connection is unregistered.
func (c *Connection) Outbound() <-chan []byte {
	return c.send
}

// TrySend queues a payload without blocking. Returns false if the
// connection's buffer is full.
func (c *Connection) TrySend(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Registry tracks live connections. Mutation and broadcast iteration share
// one RWMutex so a send can never race the channel close in Unregister.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

// Register adds a live connection. Idempotent per connection id.
func (r *Registry) Register(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c.ID]; ok {
		return
	}
	r.conns[c.ID] = c
}

// Unregister removes a connection and closes its send channel. No-op for
// unknown ids.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	if !ok {
		return
	}
	delete(r.conns, id)
	close(c.send)
}

// InGroup returns the ids of connections currently in the given group.
// Computed lazily from the registry; there is no per-group index.
func (r *Registry) InGroup(groupID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, c := range r.conns {
		if c.GroupID == groupID {
			ids = append(ids, id)
		}
	}
	return ids
}

// each invokes fn for every live connection while holding the read lock.
// fn must not block.
func (r *Registry) each(fn func(*Connection)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.conns {
		fn(c)
	}
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
