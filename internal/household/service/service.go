// Package service implements the tenant-group onboarding and agreement
// lifecycle: household creation, eligibility computation, onboarding
// notification, the agreement state machine, and the child registry.
package service

import (
	"context"
	"log/slog"

	householdmetrics "leasehold/internal/household/metrics"
	"leasehold/internal/household/models"
	"leasehold/pkg/domain"
	"leasehold/pkg/requestcontext"
)

// TenantStore persists household member rows.
type TenantStore interface {
	Create(ctx context.Context, t *models.Tenant) error
	Update(ctx context.Context, t *models.Tenant) error
	FindByID(ctx context.Context, id domain.TenantID) (*models.Tenant, error)
	ListByGroup(ctx context.Context, group domain.GroupID) ([]*models.Tenant, error)
	ListByProperty(ctx context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) ([]*models.Tenant, error)
}

// ChildStore persists dependent records.
type ChildStore interface {
	Create(ctx context.Context, c *models.TenantChild) error
	Update(ctx context.Context, c *models.TenantChild) error
	Delete(ctx context.Context, id domain.ChildID) error
	FindByID(ctx context.Context, id domain.ChildID) (*models.TenantChild, error)
	ListByGroup(ctx context.Context, group domain.GroupID) ([]*models.TenantChild, error)
}

// DocumentStore persists attachment metadata rows.
type DocumentStore interface {
	Create(ctx context.Context, d *models.Document) error
	ListByTenant(ctx context.Context, tenantID domain.TenantID) ([]*models.Document, error)
}

// Stores is the bundle handed to a transactional callback. Everything
// mutated through it commits or rolls back as one unit.
type Stores struct {
	Tenants   TenantStore
	Children  ChildStore
	Documents DocumentStore
}

// StoreTx provides the unit-of-work boundary for multi-row writes.
// Implementations wrap a database transaction or, in-memory, a coarse lock
// with snapshot rollback. One transaction is owned by one in-flight
// operation; there is no cross-request sharing.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context, stores Stores) error) error
}

// Notifier is the external mail capability. Failure of an individual send
// must not abort a batch; callers log and continue.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string, attachments ...Attachment) error
}

// Attachment is an optional payload on an outbound email.
type Attachment struct {
	Name string
	Data []byte
}

// BlobStore stores raw file bytes and returns a stable URL. The core never
// inspects the bytes.
type BlobStore interface {
	Put(ctx context.Context, owner models.DocumentOwner, category models.DocumentCategory, name string, data []byte) (string, error)
}

// GroupIDAllocator produces unique household identifiers. The default is
// UUID-backed; tests may substitute a deterministic sequence.
type GroupIDAllocator interface {
	NewGroupID() domain.GroupID
}

type uuidAllocator struct{}

func (uuidAllocator) NewGroupID() domain.GroupID { return domain.NewGroupID() }

// Service orchestrates the household lifecycle.
type Service struct {
	tenants   TenantStore
	children  ChildStore
	documents DocumentStore
	tx        StoreTx
	notifier  Notifier
	blobs     BlobStore
	groupIDs  GroupIDAllocator

	logger  *slog.Logger
	metrics *householdmetrics.Metrics

	// autoPromotePrimary, when enabled, promotes the first member of a
	// batch with zero primaries instead of rejecting it. Off by default:
	// silent promotion hid caller mistakes, so it is an opt-in policy.
	autoPromotePrimary bool
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *householdmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithBlobStore(b BlobStore) Option {
	return func(s *Service) { s.blobs = b }
}

func WithGroupIDAllocator(a GroupIDAllocator) Option {
	return func(s *Service) { s.groupIDs = a }
}

// WithPrimaryAutoPromotion opts in to promoting the first tenant of a batch
// that has no member flagged primary.
func WithPrimaryAutoPromotion() Option {
	return func(s *Service) { s.autoPromotePrimary = true }
}

// New constructs a Service over the given stores and transaction boundary.
func New(tenants TenantStore, children ChildStore, documents DocumentStore, tx StoreTx, opts ...Option) *Service {
	s := &Service{
		tenants:   tenants,
		children:  children,
		documents: documents,
		tx:        tx,
		groupIDs:  uuidAllocator{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// logAudit emits a structured audit line for a lifecycle transition.
func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
