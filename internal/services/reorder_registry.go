package services

import (
	"field-route-service/internal/domain"
	"sync"
)

// ReorderRegistry holds at most one ReorderPipeline per route and serializes every call into it.
type ReorderRegistry struct {
	mu       sync.Mutex
	sessions map[domain.RouteKey]*ReorderPipeline
}

func NewReorderRegistry() *ReorderRegistry {
	return &ReorderRegistry{sessions: make(map[domain.RouteKey]*ReorderPipeline)}
}

// Start registers a pipeline built by create and begins a drag on it.
// It fails with ErrReorderInProgress while another session for key is active.
// create runs without the registry lock, so a slow route load does not block other routes.
func (r *ReorderRegistry) Start(key domain.RouteKey, create func() (*ReorderPipeline, error)) (*ReorderPipeline, error) {
	if r.Active(key) {
		return nil, ErrReorderInProgress
	}

	p, err := create()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another Start for key may have registered while create was running.
	if cur, ok := r.sessions[key]; ok && cur.State() != ReorderIdle {
		return nil, ErrReorderInProgress
	}

	p.OnDragStart()
	r.sessions[key] = p
	return p, nil
}

// Do runs fn against the active pipeline for key. Sessions that end up idle are released.
func (r *ReorderRegistry) Do(key domain.RouteKey, fn func(p *ReorderPipeline) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.sessions[key]
	if !ok {
		return ErrNoPendingReorder
	}

	err := fn(p)
	if p.State() == ReorderIdle {
		delete(r.sessions, key)
	}
	return err
}

// Active reports whether a reorder is open for key.
func (r *ReorderRegistry) Active(key domain.RouteKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.sessions[key]
	return ok && p.State() != ReorderIdle
}
