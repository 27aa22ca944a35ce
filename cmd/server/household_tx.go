package main

import (
	"context"
	"database/sql"
	"time"

	"leasehold/internal/household/service"
	childstore "leasehold/internal/household/store/child"
	documentstore "leasehold/internal/household/store/document"
	tenantstore "leasehold/internal/household/store/tenant"
	"leasehold/internal/platform/config"
	dErrors "leasehold/pkg/domain-errors"
)

// householdPostgresTx runs household multi-row writes inside one database
// transaction. Each callback gets stores bound to the open transaction, so
// every row of a batch commits or none do; any error rolls back before it
// propagates.
type householdPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newHouseholdPostgresTx(db *sql.DB, timeout time.Duration) *householdPostgresTx {
	if timeout <= 0 {
		timeout = config.TxTimeout
	}
	return &householdPostgresTx{db: db, timeout: timeout}
}

func (t *householdPostgresTx) RunInTx(ctx context.Context, fn func(txCtx context.Context, stores service.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stores := service.Stores{
		Tenants:   tenantstore.NewPostgresTx(tx),
		Children:  childstore.NewPostgresTx(tx),
		Documents: documentstore.NewPostgresTx(tx),
	}
	if err := fn(ctx, stores); err != nil {
		return err
	}

	return tx.Commit()
}
