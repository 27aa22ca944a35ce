package service

import (
	"context"
	"fmt"
	"time"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
	"leasehold/pkg/requestcontext"
)

// CreateTenants atomically persists a batch of tenant records as one
// household.
//
// The whole batch is validated before any write; a validation failure
// returns the exhaustive field error list with zero rows written. On
// success every member shares one freshly allocated group id and the
// caller-supplied tenancy terms, and all rows commit in a single
// transaction: any member's persistence failure rolls the entire household
// back.
//
// Document attachment is best-effort by explicit policy
// (AttachmentsAreBestEffort): attachments are stored after the household
// commits, and an individual attachment failure is logged without undoing
// membership.
func (s *Service) CreateTenants(ctx context.Context, req *models.CreateTenantsRequest) (*models.TenantSaveResponse, error) {
	start := time.Now()
	now := requestcontext.Now(ctx)

	req.Normalize()
	tenants, fieldErrs := req.Materialize(now)

	if s.autoPromotePrimary && len(tenants) > 0 && countPrimaries(tenants) == 0 {
		tenants[0].IsPrimary = true
	}

	fieldErrs = append(fieldErrs, models.ValidateGroup(tenants)...)
	if len(fieldErrs) > 0 {
		return &models.TenantSaveResponse{
			Status:  models.StatusFailure,
			Message: "tenant validation failed",
			Errors:  fieldErrs,
		}, nil
	}

	group := s.groupIDs.NewGroupID()
	for _, t := range tenants {
		t.Group = group
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context, stores Stores) error {
		for i, t := range tenants {
			if err := stores.Tenants.Create(txCtx, t); err != nil {
				return fmt.Errorf("persist tenant %d of %d: %w", i+1, len(tenants), err)
			}
		}
		return nil
	})
	if err != nil {
		// Full rollback already happened; surface a generic failure
		// carrying the cause's message, never a stack.
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create household")
	}

	s.attachDocuments(ctx, req, tenants)

	s.logAudit(ctx, "household_created",
		"tenant_group", group.String(),
		"members", len(tenants),
		"landlord_id", req.LandlordID,
		"property_id", req.PropertyID,
	)
	if s.metrics != nil {
		s.metrics.IncrementHouseholdCreated(len(tenants))
		s.metrics.ObserveCreateHousehold(start)
	}

	return &models.TenantSaveResponse{
		Status:  models.StatusSuccess,
		Message: fmt.Sprintf("created household with %d tenant(s)", len(tenants)),
		Tenants: tenants,
	}, nil
}

// attachDocuments stores attachment payloads for the freshly created
// household. Best-effort: each failure is logged and skipped.
func (s *Service) attachDocuments(ctx context.Context, req *models.CreateTenantsRequest, tenants []*models.Tenant) {
	now := requestcontext.Now(ctx)

	for i, in := range req.Tenants {
		t := tenants[i]
		for _, docIn := range in.Documents {
			category, err := models.ParseDocumentCategory(docIn.Category)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping attachment with unknown category",
					"tenant_id", t.ID.String(), "category", docIn.Category)
				continue
			}

			owner := models.TenantOwner(t.ID)
			url := ""
			if s.blobs != nil && len(docIn.Data) > 0 {
				url, err = s.blobs.Put(ctx, owner, category, docIn.Name, docIn.Data)
				if err != nil {
					s.logger.WarnContext(ctx, "attachment upload failed",
						"tenant_id", t.ID.String(), "name", docIn.Name, "error", err.Error())
					continue
				}
			}

			doc := &models.Document{
				ID:         domain.NewDocumentID(),
				Owner:      owner,
				Category:   category,
				Name:       docIn.Name,
				URL:        url,
				TenantID:   t.ID,
				Group:      t.Group,
				PropertyID: t.PropertyID,
				LandlordID: t.LandlordID,
				UploadedAt: now,
			}
			if err := s.documents.Create(ctx, doc); err != nil {
				s.logger.WarnContext(ctx, "attachment metadata write failed",
					"tenant_id", t.ID.String(), "name", docIn.Name, "error", err.Error())
			}
		}
	}
}

func countPrimaries(tenants []*models.Tenant) int {
	n := 0
	for _, t := range tenants {
		if t.IsPrimary {
			n++
		}
	}
	return n
}
