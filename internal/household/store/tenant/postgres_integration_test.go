//go:build integration

package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
	"leasehold/pkg/testutil/containers"
)

type TenantPostgresSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
}

func TestTenantPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(TenantPostgresSuite))
}

func (s *TenantPostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *TenantPostgresSuite) TearDownSuite() {
	if s.pg != nil {
		_ = s.pg.DB.Close()
		_ = s.pg.Container.Terminate(s.ctx)
	}
}

func (s *TenantPostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "tenants"))
}

func (s *TenantPostgresSuite) newTenant(email string) *models.Tenant {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Tenant{
		ID:                     domain.NewTenantID(),
		LandlordID:             1,
		PropertyID:             42,
		Group:                  domain.NewGroupID(),
		Name:                   "Asha Verma",
		Email:                  email,
		Phone:                  "+919876543210",
		DateOfBirth:            time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Occupation:             "Engineer",
		NationalIDNumber:       "123456789012",
		PermanentAccountNumber: "ABCDE1234F",
		TenancyStart:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		RentAmount:             15000,
		RentDueDate:            time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		IsPrimary:              true,
		IsActive:               true,
		IsNewTenant:            true,
		NeedsOnboarding:        true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func (s *TenantPostgresSuite) TestCreateAndFind() {
	t := s.newTenant("asha@example.com")
	s.Require().NoError(s.store.Create(s.ctx, t))

	found, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(t.Email, found.Email)
	s.Equal(t.Group, found.Group)
	s.True(found.NeedsOnboarding)
	s.Nil(found.TenancyEnd)
	s.Nil(found.OnboardingEmailDate)
}

func (s *TenantPostgresSuite) TestDuplicateIDConflicts() {
	t := s.newTenant("dup@example.com")
	s.Require().NoError(s.store.Create(s.ctx, t))
	s.Require().ErrorIs(s.store.Create(s.ctx, t), sentinel.ErrConflict)
}

func (s *TenantPostgresSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, domain.NewTenantID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *TenantPostgresSuite) TestUpdate() {
	t := s.newTenant("update@example.com")
	s.Require().NoError(s.store.Create(s.ctx, t))

	now := time.Now().UTC().Truncate(time.Microsecond)
	t.ApplyOnboardingEmailSent(now)
	s.Require().NoError(s.store.Update(s.ctx, t))

	found, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.True(found.OnboardingEmailSent)
	s.False(found.NeedsOnboarding)
	s.Require().NotNil(found.OnboardingEmailDate)
	s.True(found.OnboardingEmailDate.Equal(now))
}

func (s *TenantPostgresSuite) TestUpdateMissing() {
	s.Require().ErrorIs(s.store.Update(s.ctx, s.newTenant("ghost@example.com")), sentinel.ErrNotFound)
}

func (s *TenantPostgresSuite) TestListByProperty() {
	a := s.newTenant("a@example.com")
	b := s.newTenant("b@example.com")
	other := s.newTenant("c@example.com")
	other.PropertyID = 99

	for _, t := range []*models.Tenant{a, b, other} {
		s.Require().NoError(s.store.Create(s.ctx, t))
	}

	listed, err := s.store.ListByProperty(s.ctx, 1, 42)
	s.Require().NoError(err)
	s.Len(listed, 2)
}

func (s *TenantPostgresSuite) TestListByGroup() {
	a := s.newTenant("a@example.com")
	b := s.newTenant("b@example.com")
	b.Group = a.Group

	s.Require().NoError(s.store.Create(s.ctx, a))
	s.Require().NoError(s.store.Create(s.ctx, b))
	s.Require().NoError(s.store.Create(s.ctx, s.newTenant("c@example.com")))

	listed, err := s.store.ListByGroup(s.ctx, a.Group)
	s.Require().NoError(err)
	s.Len(listed, 2)
}

func (s *TenantPostgresSuite) TestAgreementRoundTrip() {
	t := s.newTenant("agreement@example.com")
	s.Require().NoError(s.store.Create(s.ctx, t))

	now := time.Now().UTC().Truncate(time.Microsecond)
	end := now.AddDate(1, 0, 0)
	t.ApplyAgreementCreated(now, &end, 18000, 36000, now)
	t.ApplyAgreementEmailSent(now)
	t.ApplyAgreementAccepted("agreement@example.com", now)
	s.Require().NoError(s.store.Update(s.ctx, t))

	found, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.True(found.AgreementSigned)
	s.True(found.AgreementEmailSent)
	s.True(found.AgreementAccepted)
	s.Equal(t.AgreementURL, found.AgreementURL)
	s.Equal("agreement@example.com", found.AgreementAcceptedBy)
	s.Require().NotNil(found.TenancyEnd)
	s.True(found.TenancyEnd.Equal(end))
}
