package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"leasehold/internal/household/models"
	dErrors "leasehold/pkg/domain-errors"
)

type AgreementSuite struct {
	suite.Suite
	h *harness
}

func TestAgreementSuite(t *testing.T) {
	suite.Run(t, new(AgreementSuite))
}

func (s *AgreementSuite) SetupTest() {
	s.h = newHarness()
}

func (s *AgreementSuite) agreementRequest(tenantID string) *models.CreateAgreementRequest {
	return &models.CreateAgreementRequest{
		TenantID:        tenantID,
		StartDate:       "2026-09-01",
		EndDate:         "2027-08-31",
		RentAmount:      18000,
		SecurityDeposit: 36000,
	}
}

func (s *AgreementSuite) TestCreateAgreement() {
	s.Run("creates and signs, returning the document reference", func() {
		t := s.h.seedTenant("asha@example.com")

		url, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest(t.ID.String()))
		s.Require().NoError(err)
		s.Equal(models.AgreementDocumentName(t.ID, fixedNow), url)

		stored, err := s.h.tenants.FindByID(context.Background(), t.ID)
		s.Require().NoError(err)
		s.True(stored.AgreementSigned)
		s.Equal(url, stored.AgreementURL)
		s.Equal(18000.0, stored.RentAmount, "agreed terms overwrite the originals")
		s.Equal(36000.0, stored.SecurityDeposit)
		s.Require().NotNil(stored.TenancyEnd)
	})

	s.Run("unknown tenant", func() {
		_, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest("3f1e9c1a-0000-4000-8000-000000000001"))
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("malformed tenant id", func() {
		_, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest("not-a-uuid"))
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("malformed start date", func() {
		t := s.h.seedTenant("date@example.com")
		req := s.agreementRequest(t.ID.String())
		req.StartDate = "01-09-2026"

		_, err := s.h.service.CreateAgreement(fixedCtx(), req)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})

	s.Run("non-positive rent", func() {
		t := s.h.seedTenant("rent@example.com")
		req := s.agreementRequest(t.ID.String())
		req.RentAmount = 0

		_, err := s.h.service.CreateAgreement(fixedCtx(), req)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})
}

func (s *AgreementSuite) TestSendAgreementEmail() {
	s.Run("rejected before the agreement exists", func() {
		t := s.h.seedTenant("early@example.com")

		err := s.h.service.SendAgreementEmail(fixedCtx(), t.ID)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvariantViolation))
	})

	s.Run("delivers and records the transition", func() {
		t := s.h.seedTenant("asha@example.com")
		_, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest(t.ID.String()))
		s.Require().NoError(err)

		s.Require().NoError(s.h.service.SendAgreementEmail(fixedCtx(), t.ID))
		s.Contains(s.h.notifier.sentTo(), "asha@example.com")

		stored, err := s.h.tenants.FindByID(context.Background(), t.ID)
		s.Require().NoError(err)
		s.True(stored.AgreementEmailSent)
		s.Require().NotNil(stored.AgreementEmailDate)
		s.Equal(fixedNow, *stored.AgreementEmailDate)
	})

	s.Run("unknown tenant", func() {
		t := s.h.seedTenant("whoami@example.com")
		missing := t.ID
		missing[0] ^= 0xff

		err := s.h.service.SendAgreementEmail(fixedCtx(), missing)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *AgreementSuite) TestAcceptAgreement() {
	s.Run("only reachable after the email was sent", func() {
		t := s.h.seedTenant("impatient@example.com")
		_, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest(t.ID.String()))
		s.Require().NoError(err)

		err = s.h.service.AcceptAgreement(fixedCtx(), t.ID, "impatient@example.com")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvariantViolation))
	})

	s.Run("full forward path ends accepted, signed and emailed", func() {
		t := s.h.seedTenant("asha@example.com")
		_, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest(t.ID.String()))
		s.Require().NoError(err)
		s.Require().NoError(s.h.service.SendAgreementEmail(fixedCtx(), t.ID))
		s.Require().NoError(s.h.service.AcceptAgreement(fixedCtx(), t.ID, "asha@example.com"))

		stored, err := s.h.tenants.FindByID(context.Background(), t.ID)
		s.Require().NoError(err)
		s.True(stored.AgreementAccepted)
		s.True(stored.AgreementSigned)
		s.True(stored.AgreementEmailSent)
		s.Equal("asha@example.com", stored.AgreementAcceptedBy)
	})

	s.Run("accepting twice is rejected", func() {
		t := s.h.seedTenant("twice@example.com")
		_, err := s.h.service.CreateAgreement(fixedCtx(), s.agreementRequest(t.ID.String()))
		s.Require().NoError(err)
		s.Require().NoError(s.h.service.SendAgreementEmail(fixedCtx(), t.ID))
		s.Require().NoError(s.h.service.AcceptAgreement(fixedCtx(), t.ID, "twice@example.com"))

		err = s.h.service.AcceptAgreement(fixedCtx(), t.ID, "twice@example.com")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvariantViolation))
	})
}
