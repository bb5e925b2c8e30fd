package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// PartyService defines the behavior needed by PartyHandler.
type PartyService interface {
	CreateParty(ctx context.Context, input usecase.CreatePartyInput) (*domain.Party, error)
	GetParty(ctx context.Context, id domain.PartyID) (*domain.Party, error)
	DisplayNames(ctx context.Context, ids []domain.PartyID) (map[domain.PartyID]string, error)
}

// PartyHandler handles party HTTP requests.
type PartyHandler struct {
	partyUC PartyService
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyUC PartyService) *PartyHandler {
	return &PartyHandler{partyUC: partyUC}
}

// Create registers a new party.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required", "")
		return
	}

	party, err := h.partyUC.CreateParty(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create party", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PartyFromDomain(party))
}

// Get retrieves a party by ID.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing party ID", "")
		return
	}

	party, err := h.partyUC.GetParty(r.Context(), domain.PartyID(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get party", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyFromDomain(party))
}

// Names maps the comma-separated ids query parameter to display names.
// Unknown ids are omitted from the result.
func (h *PartyHandler) Names(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing ids parameter", "")
		return
	}

	var ids []domain.PartyID
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, domain.PartyID(trimmed))
		}
	}

	names, err := h.partyUC.DisplayNames(r.Context(), ids)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve party names", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, names)
}
