package core

import "time"

type liveness struct {
	lastSeen time.Time
	stale    bool
}

// Registry tracks live connections and their last observed activity.
// Staleness is a diagnostic signal only: a stale connection is logged
// by the hub but never evicted, because the transport's own close
// event is the authoritative removal trigger.
//
// Owned by the hub goroutine; not safe for concurrent use.
type Registry struct {
	entries map[string]*liveness
	now     func() time.Time
}

// NewRegistry constructs an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*liveness),
		now:     time.Now,
	}
}

// Admit starts liveness tracking for a connection id.
func (r *Registry) Admit(connID string) {
	r.entries[connID] = &liveness{lastSeen: r.now()}
}

// Heartbeat records activity for the connection and clears any stale
// flag. Unknown ids are a no-op (connection already gone).
func (r *Registry) Heartbeat(connID string) {
	entry, ok := r.entries[connID]
	if !ok {
		return
	}
	entry.lastSeen = r.now()
	entry.stale = false
}

// Release stops tracking the connection. Idempotent: returns false if
// the connection was already released.
func (r *Registry) Release(connID string) bool {
	if _, ok := r.entries[connID]; !ok {
		return false
	}
	delete(r.entries, connID)
	return true
}

// Len returns the number of tracked connections.
func (r *Registry) Len() int {
	return len(r.entries)
}

// MarkStale returns the ids of connections with no activity for at
// least threshold that were not already flagged. Each connection is
// reported once per silent stretch; any heartbeat re-arms it.
func (r *Registry) MarkStale(threshold time.Duration) []string {
	var out []string
	cutoff := r.now().Add(-threshold)
	for id, entry := range r.entries {
		if entry.stale || entry.lastSeen.After(cutoff) {
			continue
		}
		entry.stale = true
		out = append(out, id)
	}
	return out
}
