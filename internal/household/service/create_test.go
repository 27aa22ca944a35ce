package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"leasehold/internal/household/models"
	tenantstore "leasehold/internal/household/store/tenant"
	dErrors "leasehold/pkg/domain-errors"
)

type CreateTenantsSuite struct {
	suite.Suite
	h *harness
}

func TestCreateTenantsSuite(t *testing.T) {
	suite.Run(t, new(CreateTenantsSuite))
}

func (s *CreateTenantsSuite) SetupTest() {
	s.h = newHarness()
}

func (s *CreateTenantsSuite) TestSuccess() {
	resp, err := s.h.service.CreateTenants(fixedCtx(), createRequest(2))
	s.Require().NoError(err)
	s.Require().Equal(models.StatusSuccess, resp.Status)
	s.Require().Len(resp.Tenants, 2)

	s.Run("every member shares the allocated group", func() {
		for _, t := range resp.Tenants {
			s.Equal(s.h.group, t.Group)
		}
	})

	s.Run("shared terms and lifecycle defaults applied", func() {
		for _, t := range resp.Tenants {
			s.Equal(15000.0, t.RentAmount)
			s.True(t.IsActive)
			s.True(t.IsNewTenant)
			s.True(t.NeedsOnboarding)
			s.False(t.OnboardingEmailSent)
			s.Equal(fixedNow, t.CreatedAt)
		}
	})

	s.Run("exactly one primary", func() {
		primaries := 0
		for _, t := range resp.Tenants {
			if t.IsPrimary {
				primaries++
			}
		}
		s.Equal(1, primaries)
	})

	s.Run("all rows persisted", func() {
		n, err := s.h.tenants.Count(context.Background())
		s.Require().NoError(err)
		s.Equal(2, n)
	})
}

func (s *CreateTenantsSuite) TestValidationFailureWritesNothing() {
	s.Run("duplicate email across members, case-insensitive", func() {
		req := createRequest(2)
		req.Tenants[1].Email = "TENANT0@Example.COM"

		resp, err := s.h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err, "validation failure is a response, not an error")
		s.Equal(models.StatusFailure, resp.Status)
		s.Require().NotEmpty(resp.Errors)
		s.Equal("tenants[1].email", resp.Errors[0].Field)

		n, err := s.h.tenants.Count(context.Background())
		s.Require().NoError(err)
		s.Zero(n)
	})

	s.Run("malformed dates reported with field paths", func() {
		req := createRequest(1)
		req.Terms.StartDate = "bogus"
		req.Tenants[0].DateOfBirth = "12-04-1990"

		resp, err := s.h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Equal(models.StatusFailure, resp.Status)

		fields := make([]string, 0, len(resp.Errors))
		for _, fe := range resp.Errors {
			fields = append(fields, fe.Field)
		}
		s.Contains(fields, "terms.start_date")
		s.Contains(fields, "tenants[0].date_of_birth")
	})

	s.Run("empty batch", func() {
		resp, err := s.h.service.CreateTenants(fixedCtx(), createRequest(0))
		s.Require().NoError(err)
		s.Equal(models.StatusFailure, resp.Status)
	})
}

func (s *CreateTenantsSuite) TestPrimaryPolicy() {
	s.Run("zero primaries rejected by default", func() {
		req := createRequest(2)
		req.Tenants[0].IsPrimary = false

		resp, err := s.h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Require().Equal(models.StatusFailure, resp.Status)
		s.Equal("exactly one tenant must be marked as primary", resp.Errors[0].Message)
	})

	s.Run("two primaries rejected", func() {
		req := createRequest(2)
		req.Tenants[1].IsPrimary = true

		resp, err := s.h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Require().Equal(models.StatusFailure, resp.Status)
		s.Equal("only one tenant can be marked as primary", resp.Errors[0].Message)
	})

	s.Run("opt-in auto-promotion elevates the first member", func() {
		h := newHarness(WithPrimaryAutoPromotion())
		req := createRequest(2)
		req.Tenants[0].IsPrimary = false

		resp, err := h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Require().Equal(models.StatusSuccess, resp.Status)
		s.True(resp.Tenants[0].IsPrimary)
		s.False(resp.Tenants[1].IsPrimary)
	})
}

// failAfterTenantStore fails the Nth Create call; Snapshot/Restore are
// promoted from the embedded store so the transaction runner can roll back.
type failAfterTenantStore struct {
	*tenantstore.InMemory
	failAt int
	calls  int
}

func (f *failAfterTenantStore) Create(ctx context.Context, t *models.Tenant) error {
	f.calls++
	if f.calls == f.failAt {
		return errors.New("disk full")
	}
	return f.InMemory.Create(ctx, t)
}

func (s *CreateTenantsSuite) TestAtomicity() {
	failing := &failAfterTenantStore{InMemory: tenantstore.NewInMemory(), failAt: 3}
	stores := Stores{Tenants: failing, Children: s.h.children, Documents: s.h.documents}
	svc := New(failing, s.h.children, s.h.documents, NewInMemoryStoreTx(stores))

	resp, err := svc.CreateTenants(fixedCtx(), createRequest(4))
	s.Require().Error(err)
	s.Nil(resp)
	s.True(dErrors.Is(err, dErrors.CodeInternal))

	n, countErr := failing.Count(context.Background())
	s.Require().NoError(countErr)
	s.Zero(n, "a failure on the third row must roll back the first two")
}

func (s *CreateTenantsSuite) TestAttachmentsAreBestEffort() {
	s.Run("valid attachment stored after commit", func() {
		blobs := &fakeBlobStore{}
		h := newHarness(WithBlobStore(blobs))

		req := createRequest(1)
		req.Tenants[0].Documents = []models.DocumentInput{{
			Name:     "passport.pdf",
			Category: "identity_proof",
			Data:     []byte("binary"),
		}}

		resp, err := h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Require().Equal(models.StatusSuccess, resp.Status)

		docs, err := h.documents.ListByTenant(context.Background(), resp.Tenants[0].ID)
		s.Require().NoError(err)
		s.Require().Len(docs, 1)
		s.Equal("passport.pdf", docs[0].Name)
		s.NotEmpty(docs[0].URL)
		s.Len(blobs.puts, 1)
	})

	s.Run("unknown category skipped, household still created", func() {
		h := newHarness(WithBlobStore(&fakeBlobStore{}))

		req := createRequest(1)
		req.Tenants[0].Documents = []models.DocumentInput{{
			Name:     "mystery.bin",
			Category: "selfie",
			Data:     []byte("x"),
		}}

		resp, err := h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Equal(models.StatusSuccess, resp.Status)

		docs, err := h.documents.ListByTenant(context.Background(), resp.Tenants[0].ID)
		s.Require().NoError(err)
		s.Empty(docs)
	})

	s.Run("upload failure never undoes membership", func() {
		h := newHarness(WithBlobStore(&fakeBlobStore{err: errors.New("bucket unavailable")}))

		req := createRequest(1)
		req.Tenants[0].Documents = []models.DocumentInput{{
			Name:     "passport.pdf",
			Category: "identity_proof",
			Data:     []byte("binary"),
		}}

		resp, err := h.service.CreateTenants(fixedCtx(), req)
		s.Require().NoError(err)
		s.Equal(models.StatusSuccess, resp.Status)

		n, err := h.tenants.Count(context.Background())
		s.Require().NoError(err)
		s.Equal(1, n)
	})
}
