// Package document persists attachment metadata rows.
package document

import (
	"context"
	"sync"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
)

type InMemory struct {
	mu   sync.RWMutex
	docs map[domain.DocumentID]*models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[domain.DocumentID]*models.Document)}
}

func (s *InMemory) Create(_ context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[d.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := *d
	s.docs[d.ID] = &clone
	return nil
}

func (s *InMemory) ListByOwner(_ context.Context, owner models.DocumentOwner) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, d := range s.docs {
		if d.Owner == owner {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *InMemory) ListByTenant(_ context.Context, tenantID domain.TenantID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, d := range s.docs {
		if d.TenantID == tenantID {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

func (s *InMemory) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[domain.DocumentID]*models.Document, len(s.docs))
	for id, d := range s.docs {
		clone := *d
		snap[id] = &clone
	}
	return snap
}

func (s *InMemory) Restore(snapshot any) {
	snap, ok := snapshot.(map[domain.DocumentID]*models.Document)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[domain.DocumentID]*models.Document, len(snap))
	for id, d := range snap {
		clone := *d
		s.docs[id] = &clone
	}
}
