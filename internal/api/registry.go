package api

import (
	"fmt"
	"sync"

	"github.com/aria-htn/planner/internal/domain"
)

// DomainRegistry holds the live, in-process *domain.Domain for every
// domain_id the server can plan against. Domains are Go-registered
// action/method callbacks, so — unlike DomainRecord metadata in
// internal/store — they cannot be loaded from a request body; a process
// restart must re-register them before they are reachable again.
type DomainRegistry struct {
	mu      sync.RWMutex
	domains map[string]*domain.Domain
}

// NewDomainRegistry returns an empty registry.
func NewDomainRegistry() *DomainRegistry {
	return &DomainRegistry{domains: make(map[string]*domain.Domain)}
}

// Register installs a domain under id, replacing any previous registration.
func (r *DomainRegistry) Register(id string, d *domain.Domain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domains[id] = d
}

// Get looks up a domain by id.
func (r *DomainRegistry) Get(id string) (*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.domains[id]
	if !ok {
		return nil, fmt.Errorf("api: domain %q is not registered on this server", id)
	}
	return d, nil
}
