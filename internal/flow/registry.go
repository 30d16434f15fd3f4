package flow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultSessionTTL = 2 * time.Hour

// Registry maps session ids to controllers. Sessions idle past the TTL are
// pruned whenever a new one is created.
type Registry struct {
	client Client
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	controller *Controller
	lastSeen   time.Time
}

func NewRegistry(client Client) *Registry {
	return &Registry{
		client:   client,
		ttl:      defaultSessionTTL,
		sessions: make(map[string]*session),
	}
}

// Create starts a new booking session and returns its id.
func (r *Registry) Create() (string, *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}

	id := uuid.New().String()
	ctrl := NewController(r.client)
	r.sessions[id] = &session{controller: ctrl, lastSeen: now}
	return id, ctrl
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = time.Now()
	return s.controller, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
