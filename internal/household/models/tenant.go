package models

import (
	"fmt"
	"time"

	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
)

// AdultAge is the minimum age for onboarding communication.
const AdultAge = 18

// Tenant is one occupant of a property, always created as part of a
// household (a batch of tenants sharing one GroupID).
//
// Invariants (hold after any successful household write):
//   - Exactly one tenant per group has IsPrimary = true
//   - No two tenants in a group share an email (case-insensitive) or phone
//   - OnboardingEmailSent requires a non-empty email and age >= 18 at send time
//   - AgreementAccepted implies AgreementSigned and AgreementEmailSent;
//     agreement state only moves forward
//
// Tenants are soft-deleted by clearing IsActive; rows are never removed
// outside an explicit administrative path.
type Tenant struct {
	ID         domain.TenantID   `json:"id"`
	LandlordID domain.LandlordID `json:"landlord_id"`
	PropertyID domain.PropertyID `json:"property_id"`
	Group      domain.GroupID    `json:"tenant_group"`

	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`
	// Age is derived from DateOfBirth when a record is assembled for a
	// response; it is never persisted.
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
	// NationalIDNumber is the 12-digit government identity number.
	NationalIDNumber string `json:"national_id_number"`
	// PermanentAccountNumber is the PAN-style tax code ([A-Z]{5}[0-9]{4}[A-Z]).
	PermanentAccountNumber string `json:"permanent_account_number"`

	TenancyStart      time.Time  `json:"tenancy_start"`
	TenancyEnd        *time.Time `json:"tenancy_end,omitempty"`
	RentAmount        float64    `json:"rent_amount"`
	SecurityDeposit   float64    `json:"security_deposit"`
	MaintenanceCharge float64    `json:"maintenance_charge"`
	RentDueDate       time.Time  `json:"rent_due_date"`

	IsPrimary     bool `json:"is_primary"`
	IsActive      bool `json:"is_active"`
	IsNewTenant   bool `json:"is_new_tenant"`
	IsVerified    bool `json:"is_verified"`
	IsAcknowledge bool `json:"is_acknowledge"`

	NeedsOnboarding     bool       `json:"needs_onboarding"`
	OnboardingEmailSent bool       `json:"onboarding_email_sent"`
	OnboardingEmailDate *time.Time `json:"onboarding_email_date,omitempty"`
	OnboardingCompleted bool       `json:"onboarding_completed"`

	AgreementSigned       bool       `json:"agreement_signed"`
	AgreementDate         *time.Time `json:"agreement_date,omitempty"`
	AgreementURL          string     `json:"agreement_url,omitempty"`
	AgreementEmailSent    bool       `json:"agreement_email_sent"`
	AgreementEmailDate    *time.Time `json:"agreement_email_date,omitempty"`
	AgreementAccepted     bool       `json:"agreement_accepted"`
	AgreementAcceptedDate *time.Time `json:"agreement_accepted_date,omitempty"`
	AgreementAcceptedBy   string     `json:"agreement_accepted_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeAt computes full years between DateOfBirth and now.
func (t *Tenant) AgeAt(now time.Time) int {
	if t.DateOfBirth.IsZero() {
		return 0
	}
	years := now.Year() - t.DateOfBirth.Year()
	anniversary := t.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// IsAdultAt reports whether the tenant is at least 18 on the given day.
// The boundary is inclusive: a tenant born exactly 18 years ago qualifies.
func (t *Tenant) IsAdultAt(now time.Time) bool {
	if t.DateOfBirth.IsZero() {
		return false
	}
	return !t.DateOfBirth.After(now.AddDate(-AdultAge, 0, 0))
}

// EligibleForOnboarding is the onboarding-email candidacy predicate. It is
// evaluated against persisted state at send time, never cached.
func (t *Tenant) EligibleForOnboarding(now time.Time) bool {
	return t.IsActive &&
		t.NeedsOnboarding &&
		t.Email != "" &&
		t.IsAdultAt(now)
}

// CanSendOnboardingEmail checks the onboarding transition guard.
func (t *Tenant) CanSendOnboardingEmail(now time.Time) error {
	if !t.NeedsOnboarding {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant does not need onboarding")
	}
	if t.Email == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant has no email address")
	}
	if !t.IsAdultAt(now) {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is a minor")
	}
	return nil
}

// ApplyOnboardingEmailSent records the onboarding email transition:
// NeedsOnboarding(true) -> OnboardingEmailSent(true) & NeedsOnboarding(false).
// Terminal for the notifier; OnboardingCompleted is set elsewhere.
func (t *Tenant) ApplyOnboardingEmailSent(now time.Time) {
	t.OnboardingEmailSent = true
	t.OnboardingEmailDate = &now
	t.NeedsOnboarding = false
	t.UpdatedAt = now
}

// ApplyAgreementCreated performs the NotCreated -> Created transition:
// tenancy dates and rent terms are overwritten with the agreed values and a
// deterministic document reference is synthesized.
func (t *Tenant) ApplyAgreementCreated(start time.Time, end *time.Time, rent, deposit float64, now time.Time) {
	t.TenancyStart = start
	t.TenancyEnd = end
	t.RentAmount = rent
	t.SecurityDeposit = deposit
	t.AgreementSigned = true
	t.AgreementDate = &now
	t.AgreementURL = AgreementDocumentName(t.ID, now)
	t.UpdatedAt = now
}

// CanSendAgreementEmail checks the Created -> EmailSent guard.
func (t *Tenant) CanSendAgreementEmail() error {
	if !t.AgreementSigned {
		return dErrors.New(dErrors.CodeInvariantViolation, "agreement has not been created")
	}
	if t.Email == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant has no email address")
	}
	return nil
}

// ApplyAgreementEmailSent records the Created -> EmailSent transition.
func (t *Tenant) ApplyAgreementEmailSent(now time.Time) {
	t.AgreementEmailSent = true
	t.AgreementEmailDate = &now
	t.UpdatedAt = now
}

// CanAcceptAgreement checks the EmailSent -> Accepted guard. Acceptance is
// only reachable after the agreement was created and delivered; there are no
// backward transitions.
func (t *Tenant) CanAcceptAgreement() error {
	if !t.AgreementSigned {
		return dErrors.New(dErrors.CodeInvariantViolation, "agreement has not been created")
	}
	if !t.AgreementEmailSent {
		return dErrors.New(dErrors.CodeInvariantViolation, "agreement has not been sent")
	}
	if t.AgreementAccepted {
		return dErrors.New(dErrors.CodeInvariantViolation, "agreement is already accepted")
	}
	return nil
}

// ApplyAgreementAccepted records the EmailSent -> Accepted transition.
func (t *Tenant) ApplyAgreementAccepted(acceptedBy string, now time.Time) {
	t.AgreementAccepted = true
	t.AgreementAcceptedDate = &now
	t.AgreementAcceptedBy = acceptedBy
	t.UpdatedAt = now
}

// Deactivate soft-deletes the tenant.
func (t *Tenant) Deactivate(now time.Time) {
	t.IsActive = false
	t.UpdatedAt = now
}

// AgreementDocumentName synthesizes the stable agreement reference for a
// tenant: agreement_{tenantID}_{yyyyMMdd}.pdf.
func AgreementDocumentName(id domain.TenantID, now time.Time) string {
	return fmt.Sprintf("agreement_%s_%s.pdf", id, now.Format("20060102"))
}
