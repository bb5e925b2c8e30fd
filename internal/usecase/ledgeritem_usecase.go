package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/domain"
)

var (
	// ErrInvalidStatus is returned when a request carries an unknown status.
	ErrInvalidStatus = errors.New("invalid ledger item status")
)

// LedgerItemUseCase handles ledger item business logic. Mutating a ledger
// item's line items and recomputing its totals happen inside one database
// transaction, so no concurrent reader observes a stale total next to new
// line items.
type LedgerItemUseCase struct {
	txManager TransactionManager
	itemRepo  LedgerItemRepository
	partyRepo PartyRepository
	idGen     IDGenerator
	retrier   Retrier
}

// NewLedgerItemUseCase creates a new LedgerItemUseCase.
func NewLedgerItemUseCase(
	txManager TransactionManager,
	itemRepo LedgerItemRepository,
	partyRepo PartyRepository,
	idGen IDGenerator,
	retrier Retrier,
) *LedgerItemUseCase {
	return &LedgerItemUseCase{
		txManager: txManager,
		itemRepo:  itemRepo,
		partyRepo: partyRepo,
		idGen:     idGen,
		retrier:   retrier,
	}
}

// LineItemInput represents one line item in a create or update request.
type LineItemInput struct {
	NetAmount   decimal.Decimal
	TaxAmount   decimal.Decimal
	Description string
}

// CreateLedgerItemInput represents input for creating a ledger item.
type CreateLedgerItemInput struct {
	Kind        string
	SenderID    domain.PartyID
	RecipientID domain.PartyID
	Currency    domain.CurrencyCode
	IssueDate   time.Time
	DueDate     *time.Time
	Status      domain.Status
	Description string
	// TotalAmount and TaxAmount are only honored when no line items are
	// supplied; otherwise totals are derived from the line items.
	TotalAmount *decimal.Decimal
	TaxAmount   *decimal.Decimal
	LineItems   []LineItemInput
	Metadata    map[string]any
}

// CreateLedgerItem creates a ledger item with its line items. The kind must
// be a known descriptor and both parties must exist; a kind that cannot
// supply sender details, recipient details and a line item association is a
// contract violation and fails immediately.
func (uc *LedgerItemUseCase) CreateLedgerItem(ctx context.Context, input CreateLedgerItemInput) (*domain.LedgerItem, error) {
	if _, err := domain.KindByName(input.Kind); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusOpen
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}

	sender, err := uc.partyRepo.Find(ctx, input.SenderID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	recipient, err := uc.partyRepo.Find(ctx, input.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	now := time.Now().UTC()

	item := &domain.LedgerItem{
		ID:          uc.idGen.Generate(),
		Kind:        input.Kind,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Sender:      &domain.PartyDetails{ID: sender.ID, Name: sender.DisplayName, Address: sender.Address},
		Recipient:   &domain.PartyDetails{ID: recipient.ID, Name: recipient.DisplayName, Address: recipient.Address},
		IssueDate:   input.IssueDate,
		DueDate:     input.DueDate,
		Currency:    input.Currency,
		Status:      status,
		Description: input.Description,
		LineItems:   make([]domain.LineItem, 0, len(input.LineItems)),
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.TotalAmount != nil {
		item.TotalAmount = decimal.NullDecimal{Decimal: *input.TotalAmount, Valid: true}
	}
	if input.TaxAmount != nil {
		item.TaxAmount = decimal.NullDecimal{Decimal: *input.TaxAmount, Valid: true}
	}

	for _, in := range input.LineItems {
		item.LineItems = append(item.LineItems, domain.LineItem{
			ID:           uc.idGen.Generate(),
			LedgerItemID: item.ID,
			NetAmount:    in.NetAmount,
			TaxAmount:    in.TaxAmount,
			Description:  in.Description,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := domain.VerifyRecord(item); err != nil {
		return nil, err
	}

	item.RecomputeTotals()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.itemRepo.Create(ctx, tx, item); err != nil {
			return err
		}
		for i := range item.LineItems {
			if err := uc.itemRepo.CreateLineItem(ctx, tx, &item.LineItems[i]); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetLedgerItem retrieves a ledger item with its line items.
func (uc *LedgerItemUseCase) GetLedgerItem(ctx context.Context, id string) (*domain.LedgerItem, error) {
	return uc.itemRepo.Find(ctx, id)
}

// ListLedgerItemsInput represents input for listing ledger items.
type ListLedgerItemsInput struct {
	SentBy           domain.PartyID
	ReceivedBy       domain.PartyID
	SentOrReceivedBy domain.PartyID
	Statuses         []domain.Status
	Currency         domain.CurrencyCode
	DueAt            *time.Time
	IssuedFrom       *time.Time
	IssuedBefore     *time.Time
	OrderBy          string
}

// ListLedgerItems lists ledger items matching the given conditions.
func (uc *LedgerItemUseCase) ListLedgerItems(ctx context.Context, input ListLedgerItemsInput) ([]*domain.LedgerItem, error) {
	return uc.itemRepo.Filtered(ctx, domain.LedgerItemFilter{
		SentBy:           input.SentBy,
		ReceivedBy:       input.ReceivedBy,
		SentOrReceivedBy: input.SentOrReceivedBy,
		Statuses:         input.Statuses,
		Currency:         input.Currency,
		DueAt:            input.DueAt,
		IssuedFrom:       input.IssuedFrom,
		IssuedBefore:     input.IssuedBefore,
		OrderBy:          input.OrderBy,
	})
}

// AddLineItem appends a line item to a ledger item and recomputes its
// totals in the same transaction.
func (uc *LedgerItemUseCase) AddLineItem(ctx context.Context, ledgerItemID string, input LineItemInput) (*domain.LedgerItem, error) {
	var item *domain.LedgerItem

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		item, err = uc.itemRepo.FindForUpdate(ctx, tx, ledgerItemID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		lineItem := domain.LineItem{
			ID:           uc.idGen.Generate(),
			LedgerItemID: item.ID,
			NetAmount:    input.NetAmount,
			TaxAmount:    input.TaxAmount,
			Description:  input.Description,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		item.LineItems = append(item.LineItems, lineItem)
		item.RecomputeTotals()
		item.UpdatedAt = now

		if err := uc.itemRepo.CreateLineItem(ctx, tx, &lineItem); err != nil {
			return err
		}
		if err := uc.itemRepo.Update(ctx, tx, item); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateLineItem changes a line item's amounts and recomputes the parent's
// totals in the same transaction, so a reload reflects the updated sum
// rather than a stale scalar.
func (uc *LedgerItemUseCase) UpdateLineItem(ctx context.Context, ledgerItemID, lineItemID string, input LineItemInput) (*domain.LedgerItem, error) {
	var item *domain.LedgerItem

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		item, err = uc.itemRepo.FindForUpdate(ctx, tx, ledgerItemID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range item.LineItems {
			if item.LineItems[i].ID == lineItemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %q on ledger item %q", domain.ErrLineItemNotFound, lineItemID, ledgerItemID)
		}

		now := time.Now().UTC()
		item.LineItems[idx].NetAmount = input.NetAmount
		item.LineItems[idx].TaxAmount = input.TaxAmount
		if input.Description != "" {
			item.LineItems[idx].Description = input.Description
		}
		item.LineItems[idx].UpdatedAt = now
		item.RecomputeTotals()
		item.UpdatedAt = now

		if err := uc.itemRepo.UpdateLineItem(ctx, tx, &item.LineItems[idx]); err != nil {
			return err
		}
		if err := uc.itemRepo.Update(ctx, tx, item); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}
