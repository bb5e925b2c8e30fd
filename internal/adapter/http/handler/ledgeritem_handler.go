package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// LedgerItemService defines the behavior needed by LedgerItemHandler.
type LedgerItemService interface {
	CreateLedgerItem(ctx context.Context, input usecase.CreateLedgerItemInput) (*domain.LedgerItem, error)
	GetLedgerItem(ctx context.Context, id string) (*domain.LedgerItem, error)
	ListLedgerItems(ctx context.Context, input usecase.ListLedgerItemsInput) ([]*domain.LedgerItem, error)
	AddLineItem(ctx context.Context, ledgerItemID string, input usecase.LineItemInput) (*domain.LedgerItem, error)
	UpdateLineItem(ctx context.Context, ledgerItemID, lineItemID string, input usecase.LineItemInput) (*domain.LedgerItem, error)
}

// LedgerItemHandler handles ledger item HTTP requests.
type LedgerItemHandler struct {
	itemUC LedgerItemService
}

// NewLedgerItemHandler creates a new LedgerItemHandler.
func NewLedgerItemHandler(itemUC LedgerItemService) *LedgerItemHandler {
	return &LedgerItemHandler{itemUC: itemUC}
}

// Create records a new ledger item.
func (h *LedgerItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLedgerItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.itemUC.CreateLedgerItem(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create ledger item", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerItemFromDomain(item))
}

// Get retrieves a ledger item by ID.
func (h *LedgerItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing ledger item ID", "")
		return
	}

	item, err := h.itemUC.GetLedgerItem(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get ledger item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerItemFromDomain(item))
}

// List lists ledger items filtered by query parameters.
func (h *LedgerItemHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := parseStatusesQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid status filter", err.Error())
		return
	}

	dueAt, err := parseTimeQuery(r, "due_at")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due_at filter", err.Error())
		return
	}
	issuedFrom, err := parseTimeQuery(r, "issued_from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid issued_from filter", err.Error())
		return
	}
	issuedBefore, err := parseTimeQuery(r, "issued_before")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid issued_before filter", err.Error())
		return
	}

	q := r.URL.Query()

	items, err := h.itemUC.ListLedgerItems(r.Context(), usecase.ListLedgerItemsInput{
		SentBy:           domain.PartyID(q.Get("sent_by")),
		ReceivedBy:       domain.PartyID(q.Get("received_by")),
		SentOrReceivedBy: domain.PartyID(q.Get("party")),
		Statuses:         statuses,
		Currency:         domain.CurrencyCode(q.Get("currency")),
		DueAt:            dueAt,
		IssuedFrom:       issuedFrom,
		IssuedBefore:     issuedBefore,
		OrderBy:          q.Get("order_by"),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list ledger items", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerItemsFromDomain(items))
}

// AddLineItem appends a line item to an existing ledger item.
func (h *LedgerItemHandler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing ledger item ID", "")
		return
	}

	var req dto.LineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.itemUC.AddLineItem(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add line item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerItemFromDomain(item))
}

// UpdateLineItem changes the amounts of an existing line item.
func (h *LedgerItemHandler) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lineItemID := chi.URLParam(r, "lineItemID")
	if id == "" || lineItemID == "" {
		writeError(w, http.StatusBadRequest, "missing ledger item or line item ID", "")
		return
	}

	var req dto.LineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.itemUC.UpdateLineItem(r.Context(), id, lineItemID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update line item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerItemFromDomain(item))
}
