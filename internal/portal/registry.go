package portal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"report-portal/internal/session"
)

// ErrWorkspaceNotFound is returned for an unknown or evicted workspace id.
var ErrWorkspaceNotFound = errors.New("workspace not found")

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// Registry owns every live workspace, keyed by id. A workspace is only registered once a
// login against it has passed the credential check.
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*entry
	cfg        Config
	deps       Deps
	newID      func() string
	nowF       func() time.Time
}

// NewRegistry returns an empty registry that builds workspaces from cfg and deps.
func NewRegistry(cfg Config, deps Deps) *Registry {
	return &Registry{
		workspaces: make(map[string]*entry),
		cfg:        cfg,
		deps:       deps,
		newID:      func() string { return uuid.New().String() },
		nowF:       time.Now,
	}
}

// Login checks credentials against the workspace with the given id, or against a fresh
// workspace when id is empty. A fresh workspace is registered only when the check passes;
// a rejected one is closed and never becomes reachable.
func (r *Registry) Login(ctx context.Context, id, username, password string) (*Workspace, session.Challenge, error) {
	if id != "" {
		w, err := r.Get(id)
		if err != nil {
			return nil, session.Challenge{}, err
		}
		ch, err := w.Login(ctx, username, password)
		return w, ch, err
	}

	w := NewWorkspace(r.newID(), r.cfg, r.deps)
	ch, err := w.Login(ctx, username, password)
	if err != nil {
		w.Close()
		return nil, session.Challenge{}, err
	}
	r.mu.Lock()
	r.workspaces[w.ID()] = &entry{ws: w, lastSeen: r.nowF()}
	r.mu.Unlock()
	return w, ch, nil
}

// Get returns the workspace with the given id and marks it as used.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.workspaces[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	e.lastSeen = r.nowF()
	return e.ws, nil
}

// Remove closes and forgets the workspace with the given id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.workspaces[id]
	delete(r.workspaces, id)
	r.mu.Unlock()
	if ok {
		e.ws.Close()
	}
}

// Sweep evicts every workspace idle for longer than Config.IdleTTL and returns how many went.
func (r *Registry) Sweep() int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.nowF().Add(-r.cfg.IdleTTL)
	var idle []*Workspace
	r.mu.Lock()
	for id, e := range r.workspaces {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.ws)
			delete(r.workspaces, id)
		}
	}
	r.mu.Unlock()
	for _, w := range idle {
		w.Close()
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.cfg.IdleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && r.deps.Log != nil {
				r.deps.Log.WithField("evicted", n).Info("idle workspaces evicted")
			}
		}
	}
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// Close closes every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range all {
		e.ws.Close()
	}
}
