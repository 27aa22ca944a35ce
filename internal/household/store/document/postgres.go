package document

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists document metadata. The tagged owner union maps to
// (owner_kind, owner_id); correlation ids are separate nullable columns.
type PostgresStore struct {
	q querier
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

func (s *PostgresStore) Create(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (
			id, owner_kind, owner_id, category, name, url,
			tenant_id, tenant_group, property_id, landlord_id, uploaded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var tenantID any
	if !d.TenantID.IsNil() {
		tenantID = uuid.UUID(d.TenantID)
	}
	var group any
	if !d.Group.IsNil() {
		group = uuid.UUID(d.Group)
	}
	var propertyID, landlordID any
	if d.PropertyID > 0 {
		propertyID = int64(d.PropertyID)
	}
	if d.LandlordID > 0 {
		landlordID = int64(d.LandlordID)
	}

	_, err := s.q.ExecContext(ctx, query,
		uuid.UUID(d.ID), string(d.Owner.Kind), d.Owner.ID, string(d.Category), d.Name, d.URL,
		tenantID, group, propertyID, landlordID, d.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner models.DocumentOwner) ([]*models.Document, error) {
	query := selectDocuments + ` WHERE owner_kind = $1 AND owner_id = $2 ORDER BY uploaded_at, id`
	rows, err := s.q.QueryContext(ctx, query, string(owner.Kind), owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list documents by owner: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID domain.TenantID) ([]*models.Document, error) {
	query := selectDocuments + ` WHERE tenant_id = $1 ORDER BY uploaded_at, id`
	rows, err := s.q.QueryContext(ctx, query, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list documents by tenant: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

const selectDocuments = `
	SELECT id, owner_kind, owner_id, category, name, url,
	       tenant_id, tenant_group, property_id, landlord_id, uploaded_at
	FROM documents`

func collectDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var out []*models.Document
	for rows.Next() {
		var d models.Document
		var (
			id         uuid.UUID
			kind       string
			category   string
			tenantID   uuid.NullUUID
			group      uuid.NullUUID
			propertyID sql.NullInt64
			landlordID sql.NullInt64
		)
		if err := rows.Scan(&id, &kind, &d.Owner.ID, &category, &d.Name, &d.URL,
			&tenantID, &group, &propertyID, &landlordID, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		ownerKind, err := models.ParseOwnerKind(kind)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w: %w", sentinel.ErrInvalidState, err)
		}
		cat, err := models.ParseDocumentCategory(category)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w: %w", sentinel.ErrInvalidState, err)
		}
		d.ID = domain.DocumentID(id)
		d.Owner.Kind = ownerKind
		d.Category = cat
		if tenantID.Valid {
			d.TenantID = domain.TenantID(tenantID.UUID)
		}
		if group.Valid {
			d.Group = domain.GroupID(group.UUID)
		}
		if propertyID.Valid {
			d.PropertyID = domain.PropertyID(propertyID.Int64)
		}
		if landlordID.Valid {
			d.LandlordID = domain.LandlordID(landlordID.Int64)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}
