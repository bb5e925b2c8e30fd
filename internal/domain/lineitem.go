package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single net/tax contribution to a ledger item. Line items
// have no lifecycle of their own: they are created and destroyed with their
// parent ledger item, and their order is irrelevant for totals.
type LineItem struct {
	ID           string
	LedgerItemID string
	NetAmount    decimal.Decimal
	TaxAmount    decimal.Decimal
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GrossAmount returns net + tax.
func (l *LineItem) GrossAmount() decimal.Decimal {
	return l.NetAmount.Add(l.TaxAmount)
}
