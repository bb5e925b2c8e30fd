package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// MockLedgerItemRepository is a mock implementation of LedgerItemRepository.
type MockLedgerItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.LedgerItem

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, item *domain.LedgerItem) error
	UpdateFunc         func(ctx context.Context, tx usecase.Transaction, item *domain.LedgerItem) error
	FindFunc           func(ctx context.Context, id string) (*domain.LedgerItem, error)
	FindForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerItem, error)
	FilteredFunc       func(ctx context.Context, filter domain.LedgerItemFilter) ([]*domain.LedgerItem, error)
	CreateLineItemFunc func(ctx context.Context, tx usecase.Transaction, lineItem *domain.LineItem) error
	UpdateLineItemFunc func(ctx context.Context, tx usecase.Transaction, lineItem *domain.LineItem) error
}

func NewMockLedgerItemRepository() *MockLedgerItemRepository {
	return &MockLedgerItemRepository{
		items: make(map[string]*domain.LedgerItem),
	}
}

// Seed stores items directly, bypassing the Create hook.
func (m *MockLedgerItemRepository) Seed(items ...*domain.LedgerItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, li := range items {
		m.items[li.ID] = li
	}
}

func (m *MockLedgerItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.LedgerItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockLedgerItemRepository) Update(ctx context.Context, tx usecase.Transaction, item *domain.LedgerItem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return domain.ErrLedgerItemNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockLedgerItemRepository) Find(ctx context.Context, id string) (*domain.LedgerItem, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if li, ok := m.items[id]; ok {
		return li, nil
	}
	return nil, domain.ErrLedgerItemNotFound
}

func (m *MockLedgerItemRepository) FindForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerItem, error) {
	if m.FindForUpdateFunc != nil {
		return m.FindForUpdateFunc(ctx, tx, id)
	}
	return m.Find(ctx, id)
}

func (m *MockLedgerItemRepository) Filtered(ctx context.Context, filter domain.LedgerItemFilter) ([]*domain.LedgerItem, error) {
	if m.FilteredFunc != nil {
		return m.FilteredFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.LedgerItem
	for _, li := range m.items {
		if filter.Matches(li) {
			matched = append(matched, li)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].IssueDate.Equal(matched[j].IssueDate) {
			return matched[i].IssueDate.Before(matched[j].IssueDate)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

func (m *MockLedgerItemRepository) CreateLineItem(ctx context.Context, tx usecase.Transaction, lineItem *domain.LineItem) error {
	if m.CreateLineItemFunc != nil {
		return m.CreateLineItemFunc(ctx, tx, lineItem)
	}
	return nil
}

func (m *MockLedgerItemRepository) UpdateLineItem(ctx context.Context, tx usecase.Transaction, lineItem *domain.LineItem) error {
	if m.UpdateLineItemFunc != nil {
		return m.UpdateLineItemFunc(ctx, tx, lineItem)
	}
	return nil
}

// MockPartyRepository is a mock implementation of PartyRepository.
type MockPartyRepository struct {
	mu      sync.RWMutex
	parties map[domain.PartyID]*domain.Party

	CreateFunc       func(ctx context.Context, party *domain.Party) error
	FindFunc         func(ctx context.Context, id domain.PartyID) (*domain.Party, error)
	DisplayNameFunc  func(ctx context.Context, id domain.PartyID) (string, error)
	DisplayNamesFunc func(ctx context.Context, ids []domain.PartyID) (map[domain.PartyID]string, error)
}

func NewMockPartyRepository() *MockPartyRepository {
	return &MockPartyRepository{
		parties: make(map[domain.PartyID]*domain.Party),
	}
}

func (m *MockPartyRepository) Seed(parties ...*domain.Party) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range parties {
		m.parties[p.ID] = p
	}
}

func (m *MockPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) Find(ctx context.Context, id domain.PartyID) (*domain.Party, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.parties[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPartyNotFound
}

func (m *MockPartyRepository) DisplayName(ctx context.Context, id domain.PartyID) (string, error) {
	if m.DisplayNameFunc != nil {
		return m.DisplayNameFunc(ctx, id)
	}
	p, err := m.Find(ctx, id)
	if err != nil {
		return "", err
	}
	return p.DisplayName, nil
}

func (m *MockPartyRepository) DisplayNames(ctx context.Context, ids []domain.PartyID) (map[domain.PartyID]string, error) {
	if m.DisplayNamesFunc != nil {
		return m.DisplayNamesFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make(map[domain.PartyID]string)
	for _, id := range ids {
		if p, ok := m.parties[id]; ok {
			names[id] = p.DisplayName
		}
	}
	return names, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter))
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
