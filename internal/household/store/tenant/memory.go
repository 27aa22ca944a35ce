// Package tenant persists household member rows.
package tenant

import (
	"context"
	"sync"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
)

// InMemory is the map-backed tenant store used by unit tests and local
// development. It supports Snapshot/Restore so the in-memory transaction
// runner can roll a failed batch back.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[domain.TenantID]*models.Tenant
}

func NewInMemory() *InMemory {
	return &InMemory{tenants: make(map[domain.TenantID]*models.Tenant)}
}

func (s *InMemory) Create(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tenants[t.ID]; exists {
		return sentinel.ErrConflict
	}
	s.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (s *InMemory) Update(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tenants[t.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneTenant(t), nil
}

func (s *InMemory) ListByGroup(_ context.Context, group domain.GroupID) ([]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Tenant
	for _, t := range s.tenants {
		if t.Group == group {
			out = append(out, cloneTenant(t))
		}
	}
	return out, nil
}

func (s *InMemory) ListByProperty(_ context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) ([]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Tenant
	for _, t := range s.tenants {
		if t.LandlordID == landlordID && t.PropertyID == propertyID {
			out = append(out, cloneTenant(t))
		}
	}
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tenants), nil
}

// Snapshot returns a deep copy of current state for transactional rollback.
func (s *InMemory) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[domain.TenantID]*models.Tenant, len(s.tenants))
	for id, t := range s.tenants {
		snap[id] = cloneTenant(t)
	}
	return snap
}

// Restore replaces current state with a snapshot taken earlier.
func (s *InMemory) Restore(snapshot any) {
	snap, ok := snapshot.(map[domain.TenantID]*models.Tenant)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = make(map[domain.TenantID]*models.Tenant, len(snap))
	for id, t := range snap {
		s.tenants[id] = cloneTenant(t)
	}
}

// cloneTenant guards against callers mutating shared state through aliases.
func cloneTenant(t *models.Tenant) *models.Tenant {
	c := *t
	if t.TenancyEnd != nil {
		v := *t.TenancyEnd
		c.TenancyEnd = &v
	}
	if t.OnboardingEmailDate != nil {
		v := *t.OnboardingEmailDate
		c.OnboardingEmailDate = &v
	}
	if t.AgreementDate != nil {
		v := *t.AgreementDate
		c.AgreementDate = &v
	}
	if t.AgreementEmailDate != nil {
		v := *t.AgreementEmailDate
		c.AgreementEmailDate = &v
	}
	if t.AgreementAcceptedDate != nil {
		v := *t.AgreementAcceptedDate
		c.AgreementAcceptedDate = &v
	}
	return &c
}
