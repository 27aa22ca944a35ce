// Package handler is the thin HTTP layer over the household service. It
// decodes requests, delegates, and maps domain errors onto statuses; no
// business logic lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leasehold/internal/household/models"
	"leasehold/internal/platform/middleware"
	"leasehold/internal/transport/http/shared"
	"leasehold/pkg/domain"
	dErrors "leasehold/pkg/domain-errors"
)

// Service defines the household operations exposed over HTTP.
type Service interface {
	CreateTenants(ctx context.Context, req *models.CreateTenantsRequest) (*models.TenantSaveResponse, error)
	EligibleForOnboarding(ctx context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) ([]*models.Tenant, error)
	SendOnboardingEmails(ctx context.Context, landlordID domain.LandlordID, propertyID domain.PropertyID) (int, error)
	CreateAgreement(ctx context.Context, req *models.CreateAgreementRequest) (string, error)
	SendAgreementEmail(ctx context.Context, tenantID domain.TenantID) error
	AcceptAgreement(ctx context.Context, tenantID domain.TenantID, acceptedBy string) error
	AddChild(ctx context.Context, tenantID domain.TenantID, in *models.ChildInput) (*models.TenantChild, error)
	UpdateChild(ctx context.Context, tenantID domain.TenantID, childID domain.ChildID, in *models.ChildInput) (*models.TenantChild, error)
	DeleteChild(ctx context.Context, tenantID domain.TenantID, childID domain.ChildID) error
}

// Handler handles household endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the household routes with the standard middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)

	router.Post("/households", h.handleCreateTenants)
	router.Get("/households/onboarding", h.handleEligibleForOnboarding)
	router.Post("/households/onboarding/send", h.handleSendOnboardingEmails)

	router.Post("/tenants/{tenantID}/agreement", h.handleCreateAgreement)
	router.Post("/tenants/{tenantID}/agreement/send", h.handleSendAgreementEmail)
	router.Post("/tenants/{tenantID}/agreement/accept", h.handleAcceptAgreement)

	router.Post("/tenants/{tenantID}/children", h.handleAddChild)
	router.Put("/tenants/{tenantID}/children/{childID}", h.handleUpdateChild)
	router.Delete("/tenants/{tenantID}/children/{childID}", h.handleDeleteChild)

	r.Mount("/", router)
}

func (h *Handler) handleCreateTenants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateTenantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.service.CreateTenants(ctx, &req)
	if err != nil {
		h.logger.ErrorContext(ctx, "household creation failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if resp.Status != models.StatusSuccess {
		status = http.StatusBadRequest
	}
	shared.WriteJSON(w, status, resp)
}

func (h *Handler) handleEligibleForOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	landlordID, propertyID, err := propertyScope(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	tenants, err := h.service.EligibleForOnboarding(ctx, landlordID, propertyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "eligibility query failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"tenants": tenants})
}

func (h *Handler) handleSendOnboardingEmails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	landlordID, propertyID, err := propertyScope(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	sent, err := h.service.SendOnboardingEmails(ctx, landlordID, propertyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "onboarding send failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"emails_sent": sent})
}

func (h *Handler) handleCreateAgreement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.TenantID = chi.URLParam(r, "tenantID")

	url, err := h.service.CreateAgreement(ctx, &req)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) && !dErrors.Is(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "agreement creation failed", "error", err.Error())
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"agreement_url": url})
}

func (h *Handler) handleSendAgreementEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := domain.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.SendAgreementEmail(ctx, tenantID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAcceptAgreement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := domain.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var body struct {
		AcceptedBy string `json:"accepted_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.AcceptAgreement(ctx, tenantID, body.AcceptedBy); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := domain.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var in models.ChildInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	child, err := h.service.AddChild(ctx, tenantID, &in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, child)
}

func (h *Handler) handleUpdateChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, childID, err := childScope(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var in models.ChildInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	child, err := h.service.UpdateChild(ctx, tenantID, childID, &in)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, child)
}

func (h *Handler) handleDeleteChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, childID, err := childScope(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteChild(ctx, tenantID, childID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func propertyScope(r *http.Request) (domain.LandlordID, domain.PropertyID, error) {
	landlordID, err := domain.ParseLandlordID(r.URL.Query().Get("landlord_id"))
	if err != nil {
		return 0, 0, err
	}
	propertyID, err := domain.ParsePropertyID(r.URL.Query().Get("property_id"))
	if err != nil {
		return 0, 0, err
	}
	return landlordID, propertyID, nil
}

func childScope(r *http.Request) (domain.TenantID, domain.ChildID, error) {
	tenantID, err := domain.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		return domain.TenantID{}, domain.ChildID{}, err
	}
	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		return domain.TenantID{}, domain.ChildID{}, err
	}
	return tenantID, childID, nil
}
