package child

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
)

type ChildStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestChildStoreSuite(t *testing.T) {
	suite.Run(t, new(ChildStoreSuite))
}

func (s *ChildStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *ChildStoreSuite) newChild(group domain.GroupID) *models.TenantChild {
	return &models.TenantChild{
		ID:          domain.NewChildID(),
		Group:       group,
		Name:        "Maya",
		DateOfBirth: time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC),
		Relation:    "daughter",
		CreatedAt:   time.Now(),
	}
}

func (s *ChildStoreSuite) TestLifecycle() {
	group := domain.NewGroupID()

	s.Run("create, find, update, delete", func() {
		c := s.newChild(group)
		s.Require().NoError(s.store.Create(s.ctx, c))

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Maya", found.Name)

		found.Name = "Maya Verma"
		s.Require().NoError(s.store.Update(s.ctx, found))

		again, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Maya Verma", again.Name)

		s.Require().NoError(s.store.Delete(s.ctx, c.ID))
		_, err = s.store.FindByID(s.ctx, c.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate id is ErrConflict", func() {
		c := s.newChild(group)
		s.Require().NoError(s.store.Create(s.ctx, c))
		s.Require().ErrorIs(s.store.Create(s.ctx, c), sentinel.ErrConflict)
	})

	s.Run("delete of unknown id is ErrNotFound", func() {
		s.Require().ErrorIs(s.store.Delete(s.ctx, domain.NewChildID()), sentinel.ErrNotFound)
	})
}

func (s *ChildStoreSuite) TestListByGroup() {
	group := domain.NewGroupID()
	s.Require().NoError(s.store.Create(s.ctx, s.newChild(group)))
	s.Require().NoError(s.store.Create(s.ctx, s.newChild(group)))
	s.Require().NoError(s.store.Create(s.ctx, s.newChild(domain.NewGroupID())))

	listed, err := s.store.ListByGroup(s.ctx, group)
	s.Require().NoError(err)
	s.Len(listed, 2)
}

func (s *ChildStoreSuite) TestSnapshotRestore() {
	group := domain.NewGroupID()
	kept := s.newChild(group)
	s.Require().NoError(s.store.Create(s.ctx, kept))

	snap := s.store.Snapshot()
	s.Require().NoError(s.store.Create(s.ctx, s.newChild(group)))
	s.store.Restore(snap)

	listed, err := s.store.ListByGroup(s.ctx, group)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(kept.ID, listed[0].ID)
}
