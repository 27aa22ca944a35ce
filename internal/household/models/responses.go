package models

// Status is the discriminator on the household creation response. Lookup
// failures surface through the coded error taxonomy, not a status value.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// FieldError tags one validation problem with the field it concerns.
// Group-level problems use the "tenants" tag; per-member problems use
// "tenants[i].field".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TenantSaveResponse is the household creation result exposed to controllers.
type TenantSaveResponse struct {
	Status  Status       `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Tenants []*Tenant    `json:"tenants,omitempty"`
}
