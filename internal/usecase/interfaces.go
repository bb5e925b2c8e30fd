package usecase

import (
	"context"
	"time"

	"github.com/iho/ledgerbook/internal/domain"
)

// LedgerItemRepository defines data access for ledger items and their line
// items.
type LedgerItemRepository interface {
	Create(ctx context.Context, tx Transaction, item *domain.LedgerItem) error
	Update(ctx context.Context, tx Transaction, item *domain.LedgerItem) error
	Find(ctx context.Context, id string) (*domain.LedgerItem, error)
	FindForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LedgerItem, error)
	Filtered(ctx context.Context, filter domain.LedgerItemFilter) ([]*domain.LedgerItem, error)
	CreateLineItem(ctx context.Context, tx Transaction, lineItem *domain.LineItem) error
	UpdateLineItem(ctx context.Context, tx Transaction, lineItem *domain.LineItem) error
}

// PartyRepository defines data access for parties.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	Find(ctx context.Context, id domain.PartyID) (*domain.Party, error)
	DisplayName(ctx context.Context, id domain.PartyID) (string, error)
	// DisplayNames maps ids to display names, omitting ids with no record.
	DisplayNames(ctx context.Context, ids []domain.PartyID) (map[domain.PartyID]string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs for new records.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
