package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrLedgerItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLineItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPartyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAmbiguousParty):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnimplementedCapability):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrViewpointRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseStatusesQuery parses the comma-separated status query parameter.
func parseStatusesQuery(r *http.Request) ([]domain.Status, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}

	var statuses []domain.Status
	for _, part := range strings.Split(raw, ",") {
		s := domain.Status(strings.TrimSpace(part))
		if !s.Valid() {
			return nil, errors.New("unknown status " + string(s))
		}
		statuses = append(statuses, s)
	}

	return statuses, nil
}

// parseTimeQuery parses an RFC 3339 or date-only query parameter.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}

	return nil, errors.New("invalid time value for " + key)
}
