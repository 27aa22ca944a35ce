// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct named types so a TenantID can never be passed where a
// ChildID is expected; the compiler enforces what foreign keys only suggest.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "leasehold/pkg/domain-errors"
)

// TenantID identifies a single occupant record.
type TenantID uuid.UUID

// GroupID identifies a household: the set of tenant records created and
// validated together. Allocated as a UUID so concurrent household creation
// cannot collide; storage enforces uniqueness.
type GroupID uuid.UUID

// ChildID identifies a dependent record attached to a household.
type ChildID uuid.UUID

// DocumentID identifies a document metadata row.
type DocumentID uuid.UUID

// LandlordID and PropertyID are issued by the surrounding platform as
// positive integers; this module only correlates on them.
type (
	LandlordID int64
	PropertyID int64
)

func (id TenantID) String() string   { return uuid.UUID(id).String() }
func (id GroupID) String() string    { return uuid.UUID(id).String() }
func (id ChildID) String() string    { return uuid.UUID(id).String() }
func (id DocumentID) String() string { return uuid.UUID(id).String() }

// The UUID-backed IDs marshal as canonical UUID strings. Named types do not
// inherit uuid.UUID's encoding methods, so each carries its own.

func (id TenantID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id GroupID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ChildID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *TenantID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = TenantID(u)
	return nil
}

func (id *GroupID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = GroupID(u)
	return nil
}

func (id *ChildID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ChildID(u)
	return nil
}

func (id *DocumentID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = DocumentID(u)
	return nil
}

func (id TenantID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id GroupID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ChildID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewGroupID allocates a fresh household identifier. It has no persistence
// side effect; the id is reserved when the group's rows are written.
func NewGroupID() GroupID { return GroupID(uuid.New()) }

// NewTenantID allocates a fresh tenant identifier.
func NewTenantID() TenantID { return TenantID(uuid.New()) }

// NewChildID allocates a fresh child identifier.
func NewChildID() ChildID { return ChildID(uuid.New()) }

// NewDocumentID allocates a fresh document identifier.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s: %s", what, s)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", what)
	}
	return u, nil
}

// ParseTenantID validates s as a tenant identifier.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant id")
	return TenantID(u), err
}

// ParseGroupID validates s as a household identifier.
func ParseGroupID(s string) (GroupID, error) {
	u, err := parseUUID(s, "group id")
	return GroupID(u), err
}

// ParseChildID validates s as a child identifier.
func ParseChildID(s string) (ChildID, error) {
	u, err := parseUUID(s, "child id")
	return ChildID(u), err
}

// ParseLandlordID validates s as a positive landlord identifier.
func ParseLandlordID(s string) (LandlordID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid landlord id: %s", s)
	}
	return LandlordID(n), nil
}

// ParsePropertyID validates s as a positive property identifier.
func ParsePropertyID(s string) (PropertyID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid property id: %s", s)
	}
	return PropertyID(n), nil
}
