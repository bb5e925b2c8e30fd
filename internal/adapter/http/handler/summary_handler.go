package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	AccountSummary(ctx context.Context, selfID, otherID domain.PartyID, opts usecase.SummaryOptions) (map[domain.CurrencyCode]domain.AccountSummary, error)
	AccountSummaries(ctx context.Context, selfID domain.PartyID, opts usecase.SummaryOptions) (map[domain.PartyID]map[domain.CurrencyCode]domain.AccountSummary, error)
}

// SummaryHandler handles account summary HTTP requests.
type SummaryHandler struct {
	summaryUC SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

func summaryOptions(r *http.Request) (usecase.SummaryOptions, error) {
	statuses, err := parseStatusesQuery(r)
	if err != nil {
		return usecase.SummaryOptions{}, err
	}
	issuedFrom, err := parseTimeQuery(r, "issued_from")
	if err != nil {
		return usecase.SummaryOptions{}, err
	}
	issuedBefore, err := parseTimeQuery(r, "issued_before")
	if err != nil {
		return usecase.SummaryOptions{}, err
	}

	return usecase.SummaryOptions{
		WithStatus:   statuses,
		IssuedFrom:   issuedFrom,
		IssuedBefore: issuedBefore,
	}, nil
}

// Get returns the per-currency summary of one party's account with another
// party, or with all counterparties when the other query parameter is
// absent.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	selfID := chi.URLParam(r, "id")
	if selfID == "" {
		writeError(w, http.StatusBadRequest, "missing party ID", "")
		return
	}

	opts, err := summaryOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid summary filter", err.Error())
		return
	}

	otherID := domain.PartyID(r.URL.Query().Get("other"))

	summaries, err := h.summaryUC.AccountSummary(r.Context(), domain.PartyID(selfID), otherID, opts)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute account summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummariesFromDomain(summaries))
}

// List returns per-currency summaries for every counterparty of one party,
// keyed by counterparty ID.
func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	selfID := chi.URLParam(r, "id")
	if selfID == "" {
		writeError(w, http.StatusBadRequest, "missing party ID", "")
		return
	}

	opts, err := summaryOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid summary filter", err.Error())
		return
	}

	grouped, err := h.summaryUC.AccountSummaries(r.Context(), domain.PartyID(selfID), opts)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute account summaries", err.Error())
		return
	}

	result := make(map[string]map[string]dto.AccountSummaryResponse, len(grouped))
	for party, summaries := range grouped {
		result[string(party)] = dto.SummariesFromDomain(summaries)
	}

	writeJSON(w, http.StatusOK, result)
}
