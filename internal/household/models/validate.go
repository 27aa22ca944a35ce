package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation is pure: no side effects, no short-circuiting. Every rule is
// checked and every failure reported so a form can display all problems in
// one round trip.

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// Phone is matched after stripping spaces and dashes during Normalize.
	phonePattern      = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
	nationalIDPattern = regexp.MustCompile(`^[0-9]{12}$`)
	panPattern        = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// ValidateTenant checks a single tenant record for structural and business
// correctness. Field tags are the bare field names; ValidateGroup prefixes
// them with the member index.
func ValidateTenant(t *Tenant) []FieldError {
	var errs []FieldError

	if len(strings.TrimSpace(t.Name)) < 2 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at least 2 characters"})
	}
	if !emailPattern.MatchString(t.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a well-formed email address"})
	}
	if !phonePattern.MatchString(t.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "must be 10-15 digits with an optional leading +"})
	}
	if t.DateOfBirth.IsZero() {
		errs = append(errs, FieldError{Field: "date_of_birth", Message: "is required"})
	}
	if len(strings.TrimSpace(t.Occupation)) < 2 {
		errs = append(errs, FieldError{Field: "occupation", Message: "must be at least 2 characters"})
	}
	if !nationalIDPattern.MatchString(t.NationalIDNumber) {
		errs = append(errs, FieldError{Field: "national_id_number", Message: "must be exactly 12 digits"})
	}
	if !panPattern.MatchString(t.PermanentAccountNumber) {
		errs = append(errs, FieldError{Field: "permanent_account_number", Message: "must match pattern AAAAA9999A"})
	}
	if t.PropertyID <= 0 {
		errs = append(errs, FieldError{Field: "property_id", Message: "must be a positive id"})
	}
	if t.RentAmount <= 0 {
		errs = append(errs, FieldError{Field: "rent_amount", Message: "must be greater than zero"})
	}
	if t.TenancyStart.IsZero() {
		errs = append(errs, FieldError{Field: "tenancy_start", Message: "is required"})
	}
	if t.RentDueDate.IsZero() {
		errs = append(errs, FieldError{Field: "rent_due_date", Message: "is required"})
	}

	return errs
}

// ValidateGroup checks a household batch: every member individually, plus
// the cross-row rules (exactly one primary, no duplicate contact
// identifiers). Zero or multiple primaries is an error here, never
// auto-corrected; auto-promotion is an explicit service policy.
func ValidateGroup(tenants []*Tenant) []FieldError {
	if len(tenants) == 0 {
		return []FieldError{{Field: "tenants", Message: "at least one tenant is required"}}
	}

	var errs []FieldError

	primaries := 0
	seenEmails := make(map[string]int, len(tenants))
	seenPhones := make(map[string]int, len(tenants))

	for i, t := range tenants {
		for _, fe := range ValidateTenant(t) {
			errs = append(errs, FieldError{Field: tenantField(i, fe.Field), Message: fe.Message})
		}

		if t.IsPrimary {
			primaries++
		}

		// Duplicate checks are case-insensitive for email.
		if t.Email != "" {
			key := strings.ToLower(t.Email)
			if prev, dup := seenEmails[key]; dup {
				errs = append(errs, FieldError{
					Field:   tenantField(i, "email"),
					Message: fmt.Sprintf("duplicates the email of tenant %d", prev),
				})
			} else {
				seenEmails[key] = i
			}
		}
		if t.Phone != "" {
			if prev, dup := seenPhones[t.Phone]; dup {
				errs = append(errs, FieldError{
					Field:   tenantField(i, "phone"),
					Message: fmt.Sprintf("duplicates the phone of tenant %d", prev),
				})
			} else {
				seenPhones[t.Phone] = i
			}
		}
	}

	switch {
	case primaries == 0:
		errs = append(errs, FieldError{Field: "tenants", Message: "exactly one tenant must be marked as primary"})
	case primaries > 1:
		errs = append(errs, FieldError{Field: "tenants", Message: "only one tenant can be marked as primary"})
	}

	return errs
}

func tenantField(i int, field string) string {
	return fmt.Sprintf("tenants[%d].%s", i, field)
}
