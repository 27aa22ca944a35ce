//go:build integration

// Package containers manages throwaway infrastructure for integration tests.
package containers

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// household schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

// NewPostgresContainer starts PostgreSQL and applies the schema.
// Ryuk reaps the container after the test process exits.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("leasehold_test"),
		tcpostgres.WithUsername("leasehold"),
		tcpostgres.WithPassword("leasehold"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{Container: container, DB: db, ConnStr: connStr}
}

// TruncateTables clears the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS tenants (
	id UUID PRIMARY KEY,
	landlord_id BIGINT NOT NULL,
	property_id BIGINT NOT NULL,
	tenant_group UUID NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	date_of_birth TIMESTAMPTZ NOT NULL,
	occupation TEXT NOT NULL DEFAULT '',
	national_id_number TEXT NOT NULL DEFAULT '',
	permanent_account_number TEXT NOT NULL DEFAULT '',
	tenancy_start TIMESTAMPTZ NOT NULL,
	tenancy_end TIMESTAMPTZ,
	rent_amount NUMERIC NOT NULL DEFAULT 0,
	security_deposit NUMERIC NOT NULL DEFAULT 0,
	maintenance_charge NUMERIC NOT NULL DEFAULT 0,
	rent_due_date TIMESTAMPTZ NOT NULL,
	is_primary BOOLEAN NOT NULL DEFAULT FALSE,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	is_new_tenant BOOLEAN NOT NULL DEFAULT TRUE,
	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
	is_acknowledge BOOLEAN NOT NULL DEFAULT FALSE,
	needs_onboarding BOOLEAN NOT NULL DEFAULT TRUE,
	onboarding_email_sent BOOLEAN NOT NULL DEFAULT FALSE,
	onboarding_email_date TIMESTAMPTZ,
	onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
	agreement_signed BOOLEAN NOT NULL DEFAULT FALSE,
	agreement_date TIMESTAMPTZ,
	agreement_url TEXT,
	agreement_email_sent BOOLEAN NOT NULL DEFAULT FALSE,
	agreement_email_date TIMESTAMPTZ,
	agreement_accepted BOOLEAN NOT NULL DEFAULT FALSE,
	agreement_accepted_date TIMESTAMPTZ,
	agreement_accepted_by TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tenants_group ON tenants (tenant_group);
CREATE INDEX IF NOT EXISTS idx_tenants_property ON tenants (landlord_id, property_id);

CREATE TABLE IF NOT EXISTS tenant_children (
	id UUID PRIMARY KEY,
	tenant_group UUID NOT NULL,
	name TEXT NOT NULL,
	date_of_birth TIMESTAMPTZ NOT NULL,
	relation TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_children_group ON tenant_children (tenant_group);

CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	owner_kind TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	category TEXT NOT NULL,
	name TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	tenant_id UUID,
	tenant_group UUID,
	property_id BIGINT,
	landlord_id BIGINT,
	uploaded_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_documents_tenant ON documents (tenant_id);
`
