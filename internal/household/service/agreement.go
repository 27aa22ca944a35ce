package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
	"leasehold/pkg/platform/sentinel"
	"leasehold/pkg/requestcontext"
)

// Agreement state machine: NotCreated -> Created -> EmailSent -> Accepted.
// Transitions only move forward; the guards live on the model
// (CanSendAgreementEmail, CanAcceptAgreement) and are re-checked against
// persisted state on every call.

// CreateAgreement performs NotCreated -> Created for one tenant: tenancy
// dates and rent terms are overwritten with the agreed values, the record is
// marked signed, and a deterministic document reference
// (agreement_{tenantID}_{yyyyMMdd}.pdf) becomes the agreement URL.
func (s *Service) CreateAgreement(ctx context.Context, req *models.CreateAgreementRequest) (string, error) {
	tenantID, err := domain.ParseTenantID(req.TenantID)
	if err != nil {
		return "", err
	}

	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, "invalid agreement start date")
	}
	var end *time.Time
	if req.EndDate != "" {
		d, err := time.Parse(models.DateLayout, req.EndDate)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeValidation, "invalid agreement end date")
		}
		end = &d
	}
	if req.RentAmount <= 0 {
		return "", dErrors.New(dErrors.CodeValidation, "rent amount must be greater than zero")
	}

	now := requestcontext.Now(ctx)

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return "", wrapTenantErr(err)
	}

	tenant.ApplyAgreementCreated(start, end, req.RentAmount, req.SecurityDeposit, now)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return "", wrapTenantErr(err)
	}

	s.logAudit(ctx, "agreement_created",
		"tenant_id", tenant.ID.String(),
		"agreement_url", tenant.AgreementURL,
	)
	if s.metrics != nil {
		s.metrics.IncrementAgreementCreated()
	}

	return tenant.AgreementURL, nil
}

// SendAgreementEmail performs Created -> EmailSent: delivers the agreement
// to the tenant through the Notifier and records the transition. Only
// reachable after CreateAgreement.
func (s *Service) SendAgreementEmail(ctx context.Context, tenantID domain.TenantID) error {
	if s.notifier == nil {
		return dErrors.New(dErrors.CodeInternal, "no notifier configured")
	}

	now := requestcontext.Now(ctx)

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return wrapTenantErr(err)
	}
	if err := tenant.CanSendAgreementEmail(); err != nil {
		return err
	}

	subject := "Your tenancy agreement is ready"
	body := fmt.Sprintf("<p>Your tenancy agreement is ready for review: %s</p>", tenant.AgreementURL)
	if err := s.notifier.SendEmail(ctx, tenant.Email, subject, body); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to send agreement email")
	}

	tenant.ApplyAgreementEmailSent(now)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return wrapTenantErr(err)
	}

	s.logAudit(ctx, "agreement_email_sent", "tenant_id", tenant.ID.String())
	return nil
}

// AcceptAgreement performs EmailSent -> Accepted. The monotonicity guard
// means an accepted agreement is always also signed and emailed; there is no
// path backward.
func (s *Service) AcceptAgreement(ctx context.Context, tenantID domain.TenantID, acceptedBy string) error {
	now := requestcontext.Now(ctx)

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return wrapTenantErr(err)
	}
	if err := tenant.CanAcceptAgreement(); err != nil {
		return err
	}

	tenant.ApplyAgreementAccepted(acceptedBy, now)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return wrapTenantErr(err)
	}

	s.logAudit(ctx, "agreement_accepted",
		"tenant_id", tenant.ID.String(),
		"accepted_by", acceptedBy,
	)
	return nil
}

func wrapTenantErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "tenant store failure")
}
