package models

import (
	"strings"
	"time"

	"leasehold/pkg/domain"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// DocumentInput is an attachment payload submitted with a tenant. Data is
// raw file bytes (base64 on the wire); the core hands them to the blob store
// unread and keeps only metadata.
type DocumentInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Data     []byte `json:"data"`
}

// TenantInput is one household member in a creation request. Dates travel as
// strings and are parsed during normalization so malformed values surface as
// field errors, not as dropped data.
type TenantInput struct {
	Name                   string          `json:"name"`
	Email                  string          `json:"email"`
	Phone                  string          `json:"phone"`
	DateOfBirth            string          `json:"date_of_birth"`
	Occupation             string          `json:"occupation"`
	NationalIDNumber       string          `json:"national_id_number"`
	PermanentAccountNumber string          `json:"permanent_account_number"`
	IsPrimary              bool            `json:"is_primary"`
	Documents              []DocumentInput `json:"documents,omitempty"`
}

// TenancyTerms are the shared terms applied uniformly to every member of a
// new household.
type TenancyTerms struct {
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date,omitempty"`
	RentAmount        float64 `json:"rent_amount"`
	SecurityDeposit   float64 `json:"security_deposit"`
	MaintenanceCharge float64 `json:"maintenance_charge"`
	RentDueDate       string  `json:"rent_due_date"`
}

// CreateTenantsRequest creates one household: a batch of tenants plus shared
// tenancy terms, owned by one landlord and one property.
type CreateTenantsRequest struct {
	LandlordID int64         `json:"landlord_id"`
	PropertyID int64         `json:"property_id"`
	Tenants    []TenantInput `json:"tenants"`
	Terms      TenancyTerms  `json:"terms"`
}

// Normalize trims free-text fields and strips phone formatting in place.
func (r *CreateTenantsRequest) Normalize() {
	for i := range r.Tenants {
		t := &r.Tenants[i]
		t.Name = strings.TrimSpace(t.Name)
		t.Email = strings.TrimSpace(t.Email)
		t.Phone = stripPhone(t.Phone)
		t.Occupation = strings.TrimSpace(t.Occupation)
		t.NationalIDNumber = strings.TrimSpace(t.NationalIDNumber)
		t.PermanentAccountNumber = strings.ToUpper(strings.TrimSpace(t.PermanentAccountNumber))
	}
}

// Materialize converts the request into tenant models. Parse problems (bad
// dates) come back as field errors alongside whatever the validator finds;
// no short-circuiting, so a UI can render every problem at once.
func (r *CreateTenantsRequest) Materialize(now time.Time) ([]*Tenant, []FieldError) {
	var errs []FieldError

	start, e := parseDateField("terms.start_date", r.Terms.StartDate, true)
	errs = append(errs, e...)
	var end *time.Time
	if r.Terms.EndDate != "" {
		d, e := parseDateField("terms.end_date", r.Terms.EndDate, false)
		errs = append(errs, e...)
		if len(e) == 0 {
			end = &d
		}
	}
	rentDue, e := parseDateField("terms.rent_due_date", r.Terms.RentDueDate, true)
	errs = append(errs, e...)

	tenants := make([]*Tenant, 0, len(r.Tenants))
	for i, in := range r.Tenants {
		dob, e := parseDateField(tenantField(i, "date_of_birth"), in.DateOfBirth, true)
		errs = append(errs, e...)

		t := &Tenant{
			ID:                     domain.NewTenantID(),
			LandlordID:             domain.LandlordID(r.LandlordID),
			PropertyID:             domain.PropertyID(r.PropertyID),
			Name:                   in.Name,
			Email:                  in.Email,
			Phone:                  in.Phone,
			DateOfBirth:            dob,
			Occupation:             in.Occupation,
			NationalIDNumber:       in.NationalIDNumber,
			PermanentAccountNumber: in.PermanentAccountNumber,
			TenancyStart:           start,
			TenancyEnd:             end,
			RentAmount:             r.Terms.RentAmount,
			SecurityDeposit:        r.Terms.SecurityDeposit,
			MaintenanceCharge:      r.Terms.MaintenanceCharge,
			RentDueDate:            rentDue,
			IsPrimary:              in.IsPrimary,
			IsActive:               true,
			IsNewTenant:            true,
			NeedsOnboarding:        true,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		t.Age = t.AgeAt(now)
		tenants = append(tenants, t)
	}
	return tenants, errs
}

// CreateAgreementRequest drives the NotCreated -> Created transition for one
// tenant. Dates are strings; malformed values fail with a parse message.
type CreateAgreementRequest struct {
	TenantID        string  `json:"tenant_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date,omitempty"`
	RentAmount      float64 `json:"rent_amount"`
	SecurityDeposit float64 `json:"security_deposit"`
}

// ChildInput carries the mutable fields of a dependent record.
type ChildInput struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Relation    string `json:"relation,omitempty"`
}

func parseDateField(field, value string, required bool) (time.Time, []FieldError) {
	if value == "" {
		if required {
			return time.Time{}, []FieldError{{Field: field, Message: "is required"}}
		}
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, []FieldError{{Field: field, Message: "invalid date, expected " + DateLayout}}
	}
	return d, nil
}

func stripPhone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
