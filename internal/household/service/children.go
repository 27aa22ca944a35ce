package service

import (
	"context"
	"errors"
	"time"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
	"leasehold/pkg/platform/sentinel"
	"leasehold/pkg/requestcontext"
)

// Children are household-level entities: every operation is scoped by
// (tenantID, childID) but resolves through the tenant's group, not a direct
// foreign key. A tenant id that does not resolve to a persisted household
// fails with NotFound.

// AddChild attaches a dependent to the household of the given tenant.
func (s *Service) AddChild(ctx context.Context, tenantID domain.TenantID, in *models.ChildInput) (*models.TenantChild, error) {
	group, err := s.resolveGroup(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	dob, err := time.Parse(models.DateLayout, in.DateOfBirth)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid child date of birth")
	}
	if len(in.Name) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "child name must be at least 2 characters")
	}

	now := requestcontext.Now(ctx)
	child := &models.TenantChild{
		ID:          domain.NewChildID(),
		Group:       group,
		Name:        in.Name,
		DateOfBirth: dob,
		Relation:    in.Relation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.children.Create(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add child")
	}

	s.logAudit(ctx, "child_added", "tenant_group", group.String(), "child_id", child.ID.String())
	return child, nil
}

// UpdateChild modifies a dependent, provided it belongs to the household of
// the given tenant.
func (s *Service) UpdateChild(ctx context.Context, tenantID domain.TenantID, childID domain.ChildID, in *models.ChildInput) (*models.TenantChild, error) {
	child, err := s.childInGroup(ctx, tenantID, childID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if len(in.Name) < 2 {
			return nil, dErrors.New(dErrors.CodeValidation, "child name must be at least 2 characters")
		}
		child.Name = in.Name
	}
	if in.DateOfBirth != "" {
		dob, err := time.Parse(models.DateLayout, in.DateOfBirth)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid child date of birth")
		}
		child.DateOfBirth = dob
	}
	if in.Relation != "" {
		child.Relation = in.Relation
	}
	child.UpdatedAt = requestcontext.Now(ctx)

	if err := s.children.Update(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update child")
	}
	return child, nil
}

// DeleteChild removes a dependent, provided it belongs to the household of
// the given tenant.
func (s *Service) DeleteChild(ctx context.Context, tenantID domain.TenantID, childID domain.ChildID) error {
	child, err := s.childInGroup(ctx, tenantID, childID)
	if err != nil {
		return err
	}
	if err := s.children.Delete(ctx, child.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete child")
	}
	s.logAudit(ctx, "child_deleted", "tenant_group", child.Group.String(), "child_id", child.ID.String())
	return nil
}

// resolveGroup maps a tenant id onto its persisted household.
func (s *Service) resolveGroup(ctx context.Context, tenantID domain.TenantID) (domain.GroupID, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domain.GroupID{}, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return domain.GroupID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve household")
	}
	if tenant.Group.IsNil() {
		return domain.GroupID{}, dErrors.New(dErrors.CodeNotFound, "tenant has no household")
	}
	return tenant.Group, nil
}

// childInGroup loads a child and verifies it belongs to the tenant's
// household. A child outside the group is indistinguishable from a missing
// one: both are NotFound.
func (s *Service) childInGroup(ctx context.Context, tenantID domain.TenantID, childID domain.ChildID) (*models.TenantChild, error) {
	group, err := s.resolveGroup(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "child not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load child")
	}
	if child.Group != group {
		return nil, dErrors.New(dErrors.CodeNotFound, "child not found")
	}
	return child, nil
}
