package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgerbook/internal/domain"
)

func TestLedgerItemFromDomain(t *testing.T) {
	total := decimal.RequireFromString("125")
	tax := decimal.RequireFromString("15")

	item := &domain.LedgerItem{
		ID:          "item-1",
		Kind:        "Invoice",
		SenderID:    "1",
		RecipientID: "2",
		Sender:      &domain.PartyDetails{ID: "1", Name: "Unlimited Limited"},
		Recipient:   &domain.PartyDetails{ID: "2", Name: "Lovely Customer Inc."},
		Currency:    "GBP",
		Status:      domain.StatusClosed,
		IssueDate:   time.Date(2008, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NullDecimal{Decimal: total, Valid: true},
		TaxAmount:   decimal.NullDecimal{Decimal: tax, Valid: true},
		LineItems: []domain.LineItem{
			{ID: "line-1", NetAmount: decimal.RequireFromString("110"), TaxAmount: tax},
		},
	}

	resp := LedgerItemFromDomain(item)

	require.NotNil(t, resp.TotalAmount)
	assert.True(t, resp.TotalAmount.Equal(total))
	require.NotNil(t, resp.NetAmount)
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("110")))
	assert.Equal(t, "£125.00", resp.TotalAmountFormatted)
	assert.Equal(t, "£15.00", resp.TaxAmountFormatted)

	require.NotNil(t, resp.Sender)
	assert.Equal(t, "Unlimited Limited", resp.Sender.Name)
	require.Len(t, resp.LineItems, 1)
	assert.True(t, resp.LineItems[0].GrossAmount.Equal(total))
}

func TestLedgerItemFromDomain_NullTotals(t *testing.T) {
	item := &domain.LedgerItem{
		ID:          "item-2",
		Kind:        "Payment",
		SenderID:    "2",
		RecipientID: "1",
		Currency:    "USD",
		Status:      domain.StatusPending,
		LineItems:   []domain.LineItem{},
	}

	resp := LedgerItemFromDomain(item)

	assert.Nil(t, resp.TotalAmount)
	assert.Nil(t, resp.TaxAmount)
	assert.Nil(t, resp.NetAmount)
	assert.Empty(t, resp.TotalAmountFormatted)
	assert.NotNil(t, resp.LineItems)
	assert.Empty(t, resp.LineItems)
}

func TestSummaryFromDomain(t *testing.T) {
	summary := domain.AccountSummary{
		Currency:         "GBP",
		Sales:            decimal.RequireFromString("257.50"),
		Purchases:        decimal.RequireFromString("141.97"),
		SaleReceipts:     decimal.RequireFromString("256.50"),
		PurchasePayments: decimal.Zero,
	}

	resp := SummaryFromDomain(summary)

	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("-140.97")))
	assert.Equal(t, "−£140.97", resp.BalanceFormatted)
	assert.Contains(t, resp.Display, "sales = £257.50")
}
