package tenant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/platform/sentinel"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same store code
// runs standalone and inside a household transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists tenant rows. Pure I/O; eligibility predicates and
// state transition guards live in the service and model layers.
type PostgresStore struct {
	q querier
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

// NewPostgresTx binds the store to an open transaction. Used by the
// transaction runner so every row of a household commits or none do.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

const tenantColumns = `
	id, landlord_id, property_id, tenant_group,
	name, email, phone, date_of_birth, occupation, national_id_number, permanent_account_number,
	tenancy_start, tenancy_end, rent_amount, security_deposit, maintenance_charge, rent_due_date,
	is_primary, is_active, is_new_tenant, is_verified, is_acknowledge,
	needs_onboarding, onboarding_email_sent, onboarding_email_date, onboarding_completed,
	agreement_signed, agreement_date, agreement_url, agreement_email_sent, agreement_email_date,
	agreement_accepted, agreement_accepted_date, agreement_accepted_by,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, t *models.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)
	`
	_, err := s.q.ExecContext(ctx, query,
		uuid.UUID(t.ID), int64(t.LandlordID), int64(t.PropertyID), uuid.UUID(t.Group),
		t.Name, t.Email, t.Phone, t.DateOfBirth, t.Occupation, t.NationalIDNumber, t.PermanentAccountNumber,
		t.TenancyStart, t.TenancyEnd, t.RentAmount, t.SecurityDeposit, t.MaintenanceCharge, t.RentDueDate,
		t.IsPrimary, t.IsActive, t.IsNewTenant, t.IsVerified, t.IsAcknowledge,
		t.NeedsOnboarding, t.OnboardingEmailSent, t.OnboardingEmailDate, t.OnboardingCompleted,
		t.AgreementSigned, t.AgreementDate, t.AgreementURL, t.AgreementEmailSent, t.AgreementEmailDate,
		t.AgreementAccepted, t.AgreementAcceptedDate, t.AgreementAcceptedBy,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create tenant: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, t *models.Tenant) error {
	query := `
		UPDATE tenants SET
			name = $2, email = $3, phone = $4, date_of_birth = $5, occupation = $6,
			national_id_number = $7, permanent_account_number = $8,
			tenancy_start = $9, tenancy_end = $10, rent_amount = $11, security_deposit = $12,
			maintenance_charge = $13, rent_due_date = $14,
			is_primary = $15, is_active = $16, is_new_tenant = $17, is_verified = $18, is_acknowledge = $19,
			needs_onboarding = $20, onboarding_email_sent = $21, onboarding_email_date = $22, onboarding_completed = $23,
			agreement_signed = $24, agreement_date = $25, agreement_url = $26,
			agreement_email_sent = $27, agreement_email_date = $28,
			agreement_accepted = $29, agreement_accepted_date = $30, agreement_accepted_by = $31,
			updated_at = $32
		WHERE id = $1
	`
	result, err := s.q.ExecContext(ctx, query,
		uuid.UUID(t.ID),
		t.Name, t.Email, t.Phone, t.DateOfBirth, t.Occupation,
		t.NationalIDNumber, t.PermanentAccountNumber,
		t.TenancyStart, t.TenancyEnd, t.RentAmount, t.SecurityDeposit,
		t.MaintenanceCharge, t.RentDueDate,
		t.IsPrimary, t.IsActive, t.IsNewTenant, t.IsVerified, t.IsAcknowledge,
		t.NeedsOnboarding, t.OnboardingEmailSent, t.OnboardingEmailDate, t.OnboardingCompleted,
		t.AgreementSigned, t.AgreementDate, t.AgreementURL,
		t.AgreementEmailSent, t.AgreementEmailDate,
		t.AgreementAccepted, t.AgreementAcceptedDate, t.AgreementAcceptedBy,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tenant rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update tenant: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.TenantID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	t, err := scanTenant(s.q.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find tenant: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) ListByGroup(ctx context.Context, group domain.GroupID) ([]*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_group = $1 ORDER BY created_at, id`
	rows, err := s.q.QueryContext(ctx, query, uuid.UUID(group))
	if err != nil {
		return nil, fmt.Errorf("list tenants by group: %w", err)
	}
	defer rows.Close()
	return collectTenants(rows)
}

func (s *PostgresStore) ListByProperty(ctx context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) ([]*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE landlord_id = $1 AND property_id = $2 ORDER BY created_at, id`
	rows, err := s.q.QueryContext(ctx, query, int64(landlordID), int64(propertyID))
	if err != nil {
		return nil, fmt.Errorf("list tenants by property: %w", err)
	}
	defer rows.Close()
	return collectTenants(rows)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tenants: %w", err)
	}
	return count, nil
}

type row interface {
	Scan(dest ...any) error
}

func scanTenant(r row) (*models.Tenant, error) {
	var t models.Tenant
	var (
		id, group  uuid.UUID
		landlordID int64
		propertyID int64
		end        sql.NullTime
		onbDate    sql.NullTime
		agrDate    sql.NullTime
		agrMail    sql.NullTime
		agrAccept  sql.NullTime
		agrURL     sql.NullString
		agrBy      sql.NullString
	)
	if err := r.Scan(
		&id, &landlordID, &propertyID, &group,
		&t.Name, &t.Email, &t.Phone, &t.DateOfBirth, &t.Occupation, &t.NationalIDNumber, &t.PermanentAccountNumber,
		&t.TenancyStart, &end, &t.RentAmount, &t.SecurityDeposit, &t.MaintenanceCharge, &t.RentDueDate,
		&t.IsPrimary, &t.IsActive, &t.IsNewTenant, &t.IsVerified, &t.IsAcknowledge,
		&t.NeedsOnboarding, &t.OnboardingEmailSent, &onbDate, &t.OnboardingCompleted,
		&t.AgreementSigned, &agrDate, &agrURL, &t.AgreementEmailSent, &agrMail,
		&t.AgreementAccepted, &agrAccept, &agrBy,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.ID = domain.TenantID(id)
	t.Group = domain.GroupID(group)
	t.LandlordID = domain.LandlordID(landlordID)
	t.PropertyID = domain.PropertyID(propertyID)
	if end.Valid {
		t.TenancyEnd = &end.Time
	}
	if onbDate.Valid {
		t.OnboardingEmailDate = &onbDate.Time
	}
	if agrDate.Valid {
		t.AgreementDate = &agrDate.Time
	}
	if agrMail.Valid {
		t.AgreementEmailDate = &agrMail.Time
	}
	if agrAccept.Valid {
		t.AgreementAcceptedDate = &agrAccept.Time
	}
	t.AgreementURL = agrURL.String
	t.AgreementAcceptedBy = agrBy.String
	return &t, nil
}

func collectTenants(rows *sql.Rows) ([]*models.Tenant, error) {
	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
