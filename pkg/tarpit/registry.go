package tarpit

import "sync"

// Registry is the set of currently trapped connections. It exists for
// observability and cleanup bookkeeping only; nothing routes through it.
// All methods are safe for concurrent use by any number of handlers.
type Registry struct {
	lock  sync.Mutex
	conns map[*Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[*Conn]struct{}),
	}
}

// Add inserts conn. Adding a connection that is already present is a no-op.
func (r *Registry) Add(conn *Conn) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.conns[conn] = struct{}{}
}

// Remove deletes conn if present, so double cleanup is harmless.
func (r *Registry) Remove(conn *Conn) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.conns, conn)
}

func (r *Registry) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.conns)
}

// Snapshot returns a point-in-time copy of the live set. The returned
// slice is the caller's; handlers may add or remove connections the
// moment the lock is released.
func (r *Registry) Snapshot() []*Conn {
	r.lock.Lock()
	defer r.lock.Unlock()
	conns := make([]*Conn, 0, len(r.conns))
	for conn := range r.conns {
		conns = append(conns, conn)
	}
	return conns
}
