package child

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

// PostgresStore persists dependent records.
type PostgresStore struct {
	q querier
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.TenantChild) error {
	query := `
		INSERT INTO tenant_children (id, tenant_group, name, date_of_birth, relation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.q.ExecContext(ctx, query,
		uuid.UUID(c.ID), uuid.UUID(c.Group), c.Name, c.DateOfBirth, c.Relation, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create child: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.TenantChild) error {
	query := `
		UPDATE tenant_children
		SET name = $2, date_of_birth = $3, relation = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.q.ExecContext(ctx, query, uuid.UUID(c.ID), c.Name, c.DateOfBirth, c.Relation, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update child: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update child rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update child: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.ChildID) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM tenant_children WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete child rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete child: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ChildID) (*models.TenantChild, error) {
	query := `
		SELECT id, tenant_group, name, date_of_birth, relation, created_at, updated_at
		FROM tenant_children WHERE id = $1
	`
	c, err := scanChild(s.q.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find child: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find child: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByGroup(ctx context.Context, group domain.GroupID) ([]*models.TenantChild, error) {
	query := `
		SELECT id, tenant_group, name, date_of_birth, relation, created_at, updated_at
		FROM tenant_children WHERE tenant_group = $1 ORDER BY created_at, id
	`
	rows, err := s.q.QueryContext(ctx, query, uuid.UUID(group))
	if err != nil {
		return nil, fmt.Errorf("list children by group: %w", err)
	}
	defer rows.Close()

	var out []*models.TenantChild
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}
	return out, nil
}

type row interface {
	Scan(dest ...any) error
}

func scanChild(r row) (*models.TenantChild, error) {
	var c models.TenantChild
	var id, group uuid.UUID
	var relation sql.NullString
	if err := r.Scan(&id, &group, &c.Name, &c.DateOfBirth, &relation, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = domain.ChildID(id)
	c.Group = domain.GroupID(group)
	c.Relation = relation.String
	return &c, nil
}
