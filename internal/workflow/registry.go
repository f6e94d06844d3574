package workflow

import "sync"

// Registry shares Workflow instances between concurrent requests that
// act on the same subject for the same session.  A double-clicked
// confirm button lands as two HTTP requests; only when both resolve to
// the same Workflow does the Submitting state reject the second one.
// Entries are dropped once their submission reaches a terminal state,
// so the next request starts fresh and the remote service stays the
// source of truth between submissions.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Workflow
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Workflow)}
}

// Acquire returns the workflow shared by every caller presenting the
// same key, creating one bound to gw on first use.  Within a session
// the gateway is always bound to the same bearer token, so the first
// acquirer's gateway serving later acquirers is sound.
func (r *Registry) Acquire(key string, gw Gateway) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.entries[key]; ok {
		return w
	}
	w := New(gw)
	r.entries[key] = w
	return w
}

// Release drops the entry for key.  An entry whose submission is still
// in flight is kept: the request that owns the in-flight call releases
// it again when it completes, and until then later acquirers must keep
// hitting the same guard.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.entries[key]; ok && w.State() == StateSubmitting {
		return
	}
	delete(r.entries, key)
}
