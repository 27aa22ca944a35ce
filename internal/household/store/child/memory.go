// Package child persists dependent records, keyed by household group.
package child

import (
	"context"
	"sync"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
)

type InMemory struct {
	mu       sync.RWMutex
	children map[domain.ChildID]*models.TenantChild
}

func NewInMemory() *InMemory {
	return &InMemory{children: make(map[domain.ChildID]*models.TenantChild)}
}

func (s *InMemory) Create(_ context.Context, c *models.TenantChild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.children[c.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := *c
	s.children[c.ID] = &clone
	return nil
}

func (s *InMemory) Update(_ context.Context, c *models.TenantChild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.children[c.ID]; !exists {
		return sentinel.ErrNotFound
	}
	clone := *c
	s.children[c.ID] = &clone
	return nil
}

func (s *InMemory) Delete(_ context.Context, id domain.ChildID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.children[id]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.children, id)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ChildID) (*models.TenantChild, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.children[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *InMemory) ListByGroup(_ context.Context, group domain.GroupID) ([]*models.TenantChild, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TenantChild
	for _, c := range s.children {
		if c.Group == group {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *InMemory) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[domain.ChildID]*models.TenantChild, len(s.children))
	for id, c := range s.children {
		clone := *c
		snap[id] = &clone
	}
	return snap
}

func (s *InMemory) Restore(snapshot any) {
	snap, ok := snapshot.(map[domain.ChildID]*models.TenantChild)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = make(map[domain.ChildID]*models.TenantChild, len(snap))
	for id, c := range snap {
		clone := *c
		s.children[id] = &clone
	}
}
