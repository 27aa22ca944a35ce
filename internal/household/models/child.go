package models

import (
	"time"

	"leasehold/pkg/domain"
)

// TenantChild is a dependent (minor) attached to a household.
//
// Children link to the household through GroupID rather than a tenant row:
// dependents have no tenancy terms of their own, so the association is
// deliberately group-level. A child is addressable only through a tenant
// whose household is currently persisted.
type TenantChild struct {
	ID          domain.ChildID `json:"id"`
	Group       domain.GroupID `json:"tenant_group"`
	Name        string         `json:"name"`
	DateOfBirth time.Time      `json:"date_of_birth"`
	Relation    string         `json:"relation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
