package service

import (
	"context"
	"fmt"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
	"leasehold/pkg/email"
	"leasehold/pkg/requestcontext"
)

// EligibleForOnboarding computes which tenants of a property currently
// qualify for the onboarding email: active, flagged as needing onboarding,
// with an email address, and at least 18 as of today. Read-only; the
// predicate is evaluated against persisted state, never cached, so
// SendOnboardingEmails recomputes it at send time.
func (s *Service) EligibleForOnboarding(ctx context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) ([]*models.Tenant, error) {
	now := requestcontext.Now(ctx)

	tenants, err := s.tenants.ListByProperty(ctx, landlordID, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenants")
	}

	eligible := tenants[:0]
	for _, t := range tenants {
		if t.EligibleForOnboarding(now) {
			t.Age = t.AgeAt(now)
			eligible = append(eligible, t)
		}
	}
	return eligible, nil
}

// SendOnboardingEmails drives the onboarding transition for every currently
// eligible tenant of a property: NeedsOnboarding(true) ->
// OnboardingEmailSent(true) & NeedsOnboarding(false).
//
// Delivery failures are per-tenant: each is logged and the batch continues;
// only the aggregate sent count is reported. Updated rows persist in one
// batch write at the end, so a second call with no new eligible tenants
// sends nothing.
func (s *Service) SendOnboardingEmails(ctx context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) (int, error) {
	if s.notifier == nil {
		return 0, dErrors.New(dErrors.CodeInternal, "no notifier configured")
	}

	now := requestcontext.Now(ctx)

	eligible, err := s.EligibleForOnboarding(ctx, landlordID, propertyID)
	if err != nil {
		return 0, err
	}

	var sent []*models.Tenant
	for _, t := range eligible {
		subject, body := onboardingEmail(t)
		if err := s.notifier.SendEmail(ctx, t.Email, subject, body); err != nil {
			s.logger.WarnContext(ctx, "onboarding email delivery failed",
				"tenant_id", t.ID.String(),
				"error", err.Error(),
			)
			continue
		}
		t.ApplyOnboardingEmailSent(now)
		sent = append(sent, t)
	}

	if len(sent) > 0 {
		err := s.tx.RunInTx(ctx, func(txCtx context.Context, stores Stores) error {
			for _, t := range sent {
				if err := stores.Tenants.Update(txCtx, t); err != nil {
					return fmt.Errorf("persist onboarding state for tenant %s: %w", t.ID, err)
				}
			}
			return nil
		})
		if err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist onboarding state")
		}
	}

	s.logAudit(ctx, "onboarding_emails_sent",
		"landlord_id", int64(landlordID),
		"property_id", int64(propertyID),
		"eligible", len(eligible),
		"sent", len(sent),
	)
	if s.metrics != nil {
		s.metrics.AddOnboardingEmailsSent(len(sent))
	}

	return len(sent), nil
}

func onboardingEmail(t *models.Tenant) (subject, body string) {
	name := email.DisplayName(t.Name, t.Email)
	subject = "Welcome! Set up your tenant account"
	body = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your landlord has added you as a tenant. "+
			"Please complete your account setup to view your tenancy details.</p>",
		name,
	)
	return subject, body
}
