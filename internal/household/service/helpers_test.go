package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"leasehold/internal/household/models"
	childstore "leasehold/internal/household/store/child"
	documentstore "leasehold/internal/household/store/document"
	tenantstore "leasehold/internal/household/store/tenant"
	"leasehold/pkg/domain"
	"leasehold/pkg/requestcontext"
)

// fixedNow is the reference instant every service test runs at; injected via
// requestcontext.WithTime so clock-sensitive predicates are deterministic.
var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func fixedCtx() context.Context {
	return ctxAt(fixedNow)
}

func ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

type capturedEmail struct {
	To      string
	Subject string
	Body    string
}

// captureNotifier records outbound mail and can be told to fail for specific
// recipients.
type captureNotifier struct {
	mu      sync.Mutex
	sent    []capturedEmail
	failFor map[string]error
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{failFor: make(map[string]error)}
}

func (n *captureNotifier) SendEmail(_ context.Context, to, subject, htmlBody string, _ ...Attachment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.failFor[to]; err != nil {
		return err
	}
	n.sent = append(n.sent, capturedEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (n *captureNotifier) sentTo() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, e := range n.sent {
		out = append(out, e.To)
	}
	return out
}

type fixedGroupAllocator struct {
	id domain.GroupID
}

func (a fixedGroupAllocator) NewGroupID() domain.GroupID { return a.id }

// fakeBlobStore returns deterministic URLs; set err to simulate upload
// failure.
type fakeBlobStore struct {
	mu   sync.Mutex
	puts []string
	err  error
}

func (b *fakeBlobStore) Put(_ context.Context, owner models.DocumentOwner, category models.DocumentCategory, name string, _ []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return "", b.err
	}
	key := fmt.Sprintf("blob://%s/%s/%s/%s", owner.Kind, owner.ID, category, name)
	b.puts = append(b.puts, key)
	return key, nil
}

// harness bundles the in-memory stores, a snapshot-rollback transaction
// runner, and a service configured for tests.
type harness struct {
	tenants   *tenantstore.InMemory
	children  *childstore.InMemory
	documents *documentstore.InMemory
	notifier  *captureNotifier
	group     domain.GroupID
	service   *Service
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		tenants:   tenantstore.NewInMemory(),
		children:  childstore.NewInMemory(),
		documents: documentstore.NewInMemory(),
		notifier:  newCaptureNotifier(),
		group:     domain.NewGroupID(),
	}
	stores := Stores{Tenants: h.tenants, Children: h.children, Documents: h.documents}
	base := []Option{
		WithNotifier(h.notifier),
		WithGroupIDAllocator(fixedGroupAllocator{id: h.group}),
	}
	h.service = New(h.tenants, h.children, h.documents, NewInMemoryStoreTx(stores),
		append(base, opts...)...)
	return h
}

// seedTenant persists an adult, active tenant awaiting onboarding and returns
// it. Callers mutate the returned copy and re-persist as needed.
func (h *harness) seedTenant(email string) *models.Tenant {
	t := &models.Tenant{
		ID:                     domain.NewTenantID(),
		LandlordID:             1,
		PropertyID:             42,
		Group:                  h.group,
		Name:                   "Asha Verma",
		Email:                  email,
		Phone:                  "+919876543210",
		DateOfBirth:            fixedNow.AddDate(-30, 0, 0),
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
		CreatedAt:              fixedNow,
		UpdatedAt:              fixedNow,
	}
	if err := h.tenants.Create(context.Background(), t); err != nil {
		panic(err)
	}
	return t
}

func tenantInput(i int) models.TenantInput {
	return models.TenantInput{
		Name:                   fmt.Sprintf("Tenant %d", i),
		Email:                  fmt.Sprintf("tenant%d@example.com", i),
		Phone:                  fmt.Sprintf("+9198765432%02d", i),
		DateOfBirth:            "1990-04-12",
		Occupation:             "Engineer",
		NationalIDNumber:       fmt.Sprintf("1234567890%02d", i),
		PermanentAccountNumber: "ABCDE1234F",
		IsPrimary:              i == 0,
	}
}

func createRequest(members int) *models.CreateTenantsRequest {
	req := &models.CreateTenantsRequest{
		LandlordID: 1,
		PropertyID: 42,
		Terms: models.TenancyTerms{
			StartDate:   "2026-09-01",
			RentAmount:  15000,
			RentDueDate: "2026-09-05",
		},
	}
	for i := 0; i < members; i++ {
		req.Tenants = append(req.Tenants, tenantInput(i))
	}
	return req
}
