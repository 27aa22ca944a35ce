package models

import (
	"strconv"
	"time"

	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
)

// OwnerKind discriminates who a document belongs to.
type OwnerKind string

const (
	OwnerTenant   OwnerKind = "tenant"
	OwnerLandlord OwnerKind = "landlord"
	OwnerProperty OwnerKind = "property"
	OwnerComment  OwnerKind = "comment"
)

// DocumentOwner is a tagged union replacing the parallel nullable owner
// columns of older schemas: a document has exactly one owner, and illegal
// combinations are unrepresentable. Construct via the Owner* helpers.
type DocumentOwner struct {
	Kind OwnerKind `json:"kind"`
	ID   string    `json:"id"`
}

func TenantOwner(id domain.TenantID) DocumentOwner {
	return DocumentOwner{Kind: OwnerTenant, ID: id.String()}
}

func LandlordOwner(id domain.LandlordID) DocumentOwner {
	return DocumentOwner{Kind: OwnerLandlord, ID: ownerNum(int64(id))}
}

func PropertyOwner(id domain.PropertyID) DocumentOwner {
	return DocumentOwner{Kind: OwnerProperty, ID: ownerNum(int64(id))}
}

func CommentOwner(id string) DocumentOwner {
	return DocumentOwner{Kind: OwnerComment, ID: id}
}

// ParseOwnerKind maps a wire string onto an OwnerKind. Unknown input is an
// error, never a silent default.
func ParseOwnerKind(s string) (OwnerKind, error) {
	switch OwnerKind(s) {
	case OwnerTenant, OwnerLandlord, OwnerProperty, OwnerComment:
		return OwnerKind(s), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown document owner kind: %q", s)
	}
}

// DocumentCategory classifies an attachment.
type DocumentCategory string

const (
	CategoryIdentityProof DocumentCategory = "identity_proof"
	CategoryAddressProof  DocumentCategory = "address_proof"
	CategoryAgreement     DocumentCategory = "agreement"
	CategoryPhoto         DocumentCategory = "photo"
	CategoryOther         DocumentCategory = "other"
)

// ParseDocumentCategory maps a wire string onto a DocumentCategory. Fails
// loudly on unrecognized input; callers wanting a default must say so.
func ParseDocumentCategory(s string) (DocumentCategory, error) {
	switch DocumentCategory(s) {
	case CategoryIdentityProof, CategoryAddressProof, CategoryAgreement, CategoryPhoto, CategoryOther:
		return DocumentCategory(s), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown document category: %q", s)
	}
}

// Document is attachment metadata. It never owns file bytes: URL points into
// an external blob area managed by the DocumentStore capability.
//
// TenantID/PropertyID/LandlordID are correlation columns kept for query
// convenience; Owner is the authoritative subject.
type Document struct {
	ID       domain.DocumentID `json:"id"`
	Owner    DocumentOwner     `json:"owner"`
	Category DocumentCategory  `json:"category"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`

	TenantID   domain.TenantID   `json:"tenant_id,omitempty"`
	Group      domain.GroupID    `json:"tenant_group,omitempty"`
	PropertyID domain.PropertyID `json:"property_id,omitempty"`
	LandlordID domain.LandlordID `json:"landlord_id,omitempty"`

	UploadedAt time.Time `json:"uploaded_at"`
}

// Owner IDs are strings on the union so tenant UUIDs and platform integer
// ids share one column.
func ownerNum(n int64) string {
	return strconv.FormatInt(n, 10)
}
