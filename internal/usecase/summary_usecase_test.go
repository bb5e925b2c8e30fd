package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
	"github.com/iho/ledgerbook/internal/usecase/mocks"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func nullDec(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	return decimal.NullDecimal{Decimal: dec(t, s), Valid: true}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// tradingHistory builds a small ledger between four parties: party 1 trades
// with customer 2, customer 2 pays supplier 3 in dollars, and party 4 is
// the taxman.
func tradingHistory(t *testing.T) []*domain.LedgerItem {
	t.Helper()
	return []*domain.LedgerItem{
		{
			ID: "f1", Kind: "Invoice", SenderID: "1", RecipientID: "2",
			Currency: "GBP", Status: domain.StatusClosed,
			IssueDate:   day(t, "2008-06-30"),
			TotalAmount: nullDec(t, "315.00"), TaxAmount: nullDec(t, "15.00"),
		},
		{
			ID: "f2", Kind: "SelfBilledInvoice", SenderID: "2", RecipientID: "1",
			Currency: "GBP", Status: domain.StatusClosed,
			IssueDate:   day(t, "2009-01-01"),
			TotalAmount: nullDec(t, "141.97"),
		},
		{
			ID: "f3", Kind: "CreditNote", SenderID: "1", RecipientID: "2",
			Currency: "GBP", Status: domain.StatusClosed,
			IssueDate:   day(t, "2008-07-13"),
			TotalAmount: nullDec(t, "-57.50"),
		},
		{
			ID: "f4", Kind: "Payment", SenderID: "1", RecipientID: "2",
			Currency: "GBP", Status: domain.StatusCleared,
			IssueDate:   day(t, "2008-07-06"),
			TotalAmount: nullDec(t, "256.50"),
		},
		{
			ID: "f5", Kind: "Payment", SenderID: "2", RecipientID: "3",
			Currency: "USD", Status: domain.StatusCleared,
			IssueDate:   day(t, "2008-12-01"),
			TotalAmount: nullDec(t, "432.10"),
		},
		{
			ID: "f6", Kind: "CorporationTaxLiability", SenderID: "4", RecipientID: "1",
			Currency: "GBP", Status: domain.StatusClosed,
			IssueDate:   day(t, "2008-09-30"),
			TotalAmount: nullDec(t, "666666.66"),
		},
		{
			ID: "f9", Kind: "Invoice", SenderID: "1", RecipientID: "2",
			Currency: "GBP", Status: domain.StatusOpen,
			IssueDate:   day(t, "2008-12-01"),
			TotalAmount: nullDec(t, "11.50"),
		},
	}
}

func assertDecimal(t *testing.T, got decimal.Decimal, expected string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func summaryUseCase(t *testing.T) *usecase.SummaryUseCase {
	t.Helper()
	itemRepo := mocks.NewMockLedgerItemRepository()
	itemRepo.Seed(tradingHistory(t)...)
	return usecase.NewSummaryUseCase(itemRepo, nil, 0)
}

func TestSummaryUseCase_AccountSummary_BetweenTwoParties(t *testing.T) {
	uc := summaryUseCase(t)

	summaries, err := uc.AccountSummary(context.Background(), "1", "2", usecase.SummaryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 currency, got %d", len(summaries))
	}

	gbp := summaries["GBP"]
	assertDecimal(t, gbp.Sales, "257.50")
	assertDecimal(t, gbp.Purchases, "141.97")
	assertDecimal(t, gbp.SaleReceipts, "256.50")
	assertDecimal(t, gbp.PurchasePayments, "0.00")
	assertDecimal(t, gbp.Balance(), "-140.97")

	if got := gbp.BalanceFormatted(); got != "−£140.97" {
		t.Errorf("expected balance −£140.97, got %q", got)
	}
}

func TestSummaryUseCase_AccountSummary_AllCounterparties(t *testing.T) {
	uc := summaryUseCase(t)

	summaries, err := uc.AccountSummary(context.Background(), "1", "", usecase.SummaryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gbp := summaries["GBP"]
	assertDecimal(t, gbp.Sales, "257.50")
	assertDecimal(t, gbp.Purchases, "666808.63")
	assertDecimal(t, gbp.SaleReceipts, "256.50")
	assertDecimal(t, gbp.Balance(), "-666807.63")

	if got := gbp.PurchasesFormatted(); got != "£666,808.63" {
		t.Errorf("expected purchases £666,808.63, got %q", got)
	}
}

func TestSummaryUseCase_AccountSummary_WithStatus(t *testing.T) {
	uc := summaryUseCase(t)

	summaries, err := uc.AccountSummary(context.Background(), "1", "2", usecase.SummaryOptions{
		WithStatus: []domain.Status{domain.StatusOpen, domain.StatusClosed, domain.StatusCleared},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, summaries["GBP"].Sales, "269.00")
}

func TestSummaryUseCase_AccountSummary_IssueDateRange(t *testing.T) {
	uc := summaryUseCase(t)
	cutoff := day(t, "2009-01-01")

	summaries, err := uc.AccountSummary(context.Background(), "1", "2", usecase.SummaryOptions{
		IssuedBefore: &cutoff,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gbp := summaries["GBP"]
	assertDecimal(t, gbp.Purchases, "0.00")
	assertDecimal(t, gbp.Balance(), "1.00")
}

func TestSummaryUseCase_AccountSummary_ViewpointRequired(t *testing.T) {
	uc := summaryUseCase(t)

	_, err := uc.AccountSummary(context.Background(), domain.SelfParty, "2", usecase.SummaryOptions{})
	if !errors.Is(err, usecase.ErrViewpointRequired) {
		t.Errorf("expected ErrViewpointRequired, got %v", err)
	}
}

func TestSummaryUseCase_AccountSummaries_GroupsByCounterparty(t *testing.T) {
	uc := summaryUseCase(t)

	result, err := uc.AccountSummaries(context.Background(), "2", usecase.SummaryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected counterparties [1 3], got %d entries", len(result))
	}

	withOne, ok := result["1"]
	if !ok {
		t.Fatal("expected a summary against party 1")
	}
	assertDecimal(t, withOne["GBP"].Sales, "141.97")
	assertDecimal(t, withOne["GBP"].Purchases, "257.50")
	assertDecimal(t, withOne["GBP"].PurchasePayments, "256.50")
	assertDecimal(t, withOne["GBP"].Balance(), "140.97")

	withThree, ok := result["3"]
	if !ok {
		t.Fatal("expected a summary against party 3")
	}
	assertDecimal(t, withThree["USD"].SaleReceipts, "432.10")
	assertDecimal(t, withThree["USD"].Balance(), "-432.10")
}

func TestSummaryUseCase_AccountSummary_CachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	itemRepo := mocks.NewMockLedgerItemRepository()
	itemRepo.Seed(tradingHistory(t)...)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

	uc := usecase.NewSummaryUseCase(itemRepo, cache, time.Minute)

	summaries, err := uc.AccountSummary(context.Background(), "1", "2", usecase.SummaryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, summaries["GBP"].Balance(), "-140.97")
}

func TestSummaryUseCase_AccountSummary_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached := map[domain.CurrencyCode]domain.AccountSummary{
		"GBP": {
			Currency: "GBP",
			Sales:    decimal.RequireFromString("257.50"),
		},
	}
	encoded, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(encoded, nil)

	itemRepo := mocks.NewMockLedgerItemRepository()
	itemRepo.FilteredFunc = func(ctx context.Context, filter domain.LedgerItemFilter) ([]*domain.LedgerItem, error) {
		t.Fatal("repository should not be queried on a cache hit")
		return nil, nil
	}

	uc := usecase.NewSummaryUseCase(itemRepo, cache, time.Minute)

	summaries, err := uc.AccountSummary(context.Background(), "1", "2", usecase.SummaryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, summaries["GBP"].Sales, "257.50")
}

func TestSummaryUseCase_AccountSummary_ArbitraryConditionBypassesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: touching the cache fails the test.
	cache := mocks.NewMockCache(ctrl)

	itemRepo := mocks.NewMockLedgerItemRepository()
	itemRepo.Seed(tradingHistory(t)...)

	uc := usecase.NewSummaryUseCase(itemRepo, cache, time.Minute)

	summaries, err := uc.AccountSummary(context.Background(), "1", "2", usecase.SummaryOptions{
		Where: func(li *domain.LedgerItem) bool {
			return li.Kind != "Payment"
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, summaries["GBP"].SaleReceipts, "0.00")
	assertDecimal(t, summaries["GBP"].Balance(), "115.53")
}
