package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func summaryFixture() AccountSummary {
	return AccountSummary{
		Currency:         "GBP",
		Sales:            dec("257.50"),
		Purchases:        dec("141.97"),
		SaleReceipts:     dec("256.50"),
		PurchasePayments: dec("0.00"),
	}
}

func TestAccountSummary_Balance(t *testing.T) {
	summary := summaryFixture()

	if !summary.Balance().Equal(dec("-140.97")) {
		t.Errorf("expected balance -140.97, got %s", summary.Balance())
	}
}

func TestAccountSummary_BalancePositiveMeansOwedMoney(t *testing.T) {
	summary := AccountSummary{
		Currency:         "GBP",
		Sales:            dec("100.00"),
		Purchases:        dec("20.00"),
		SaleReceipts:     dec("30.00"),
		PurchasePayments: dec("5.00"),
	}

	// 100 - 20 - 30 + 5
	if !summary.Balance().Equal(dec("55.00")) {
		t.Errorf("expected balance 55.00, got %s", summary.Balance())
	}
}

func TestAccountSummary_Field(t *testing.T) {
	summary := summaryFixture()

	tests := []struct {
		field    string
		expected string
	}{
		{field: "sales", expected: "257.50"},
		{field: "purchases", expected: "141.97"},
		{field: "sale_receipts", expected: "256.50"},
		{field: "purchase_payments", expected: "0.00"},
		{field: "balance", expected: "-140.97"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := summary.Field(tt.field)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestAccountSummary_FieldUnknown(t *testing.T) {
	summary := summaryFixture()

	_, err := summary.Field("this_field_does_not_exist")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestAccountSummary_Formatted(t *testing.T) {
	summary := summaryFixture()

	if got := summary.SalesFormatted(); got != "£257.50" {
		t.Errorf("sales: expected £257.50, got %q", got)
	}
	if got := summary.PurchasesFormatted(); got != "£141.97" {
		t.Errorf("purchases: expected £141.97, got %q", got)
	}
	if got := summary.SaleReceiptsFormatted(); got != "£256.50" {
		t.Errorf("sale receipts: expected £256.50, got %q", got)
	}
	if got := summary.PurchasePaymentsFormatted(); got != "£0.00" {
		t.Errorf("purchase payments: expected £0.00, got %q", got)
	}
	if got := summary.BalanceFormatted(); got != "−£140.97" {
		t.Errorf("balance: expected −£140.97, got %q", got)
	}
}

func TestAccountSummary_String(t *testing.T) {
	summary := AccountSummary{
		Currency:         "GBP",
		Sales:            dec("257.50"),
		Purchases:        dec("666808.63"),
		SaleReceipts:     dec("256.50"),
		PurchasePayments: dec("0.00"),
	}

	expected := "sales = £257.50; purchases = £666,808.63; sale_receipts = £256.50; " +
		"purchase_payments = £0.00; balance = −£666,807.63"
	if got := summary.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSummarizeByCurrency(t *testing.T) {
	items := []*LedgerItem{
		{ID: "1", Kind: "Invoice", SenderID: "1", RecipientID: "2", Currency: "GBP", TotalAmount: nullDec("315.00")},
		{ID: "2", Kind: "SelfBilledInvoice", SenderID: "2", RecipientID: "1", Currency: "GBP", TotalAmount: nullDec("141.97")},
		{ID: "3", Kind: "CreditNote", SenderID: "1", RecipientID: "2", Currency: "GBP", TotalAmount: nullDec("-57.50")},
		{ID: "4", Kind: "Payment", SenderID: "1", RecipientID: "2", Currency: "GBP", TotalAmount: nullDec("256.50")},
	}

	summaries, err := SummarizeByCurrency("1", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 currency, got %d", len(summaries))
	}

	gbp := summaries["GBP"]
	if !gbp.Sales.Equal(dec("257.50")) {
		t.Errorf("sales: expected 257.50, got %s", gbp.Sales)
	}
	if !gbp.Purchases.Equal(dec("141.97")) {
		t.Errorf("purchases: expected 141.97, got %s", gbp.Purchases)
	}
	if !gbp.SaleReceipts.Equal(dec("256.50")) {
		t.Errorf("sale receipts: expected 256.50, got %s", gbp.SaleReceipts)
	}
	if !gbp.PurchasePayments.Equal(dec("0")) {
		t.Errorf("purchase payments: expected 0, got %s", gbp.PurchasePayments)
	}
	if !gbp.Balance().Equal(dec("-140.97")) {
		t.Errorf("balance: expected -140.97, got %s", gbp.Balance())
	}
}

func TestSummarizeByCurrency_PartitionsByCurrency(t *testing.T) {
	items := []*LedgerItem{
		{ID: "1", Kind: "Invoice", SenderID: "2", RecipientID: "1", Currency: "GBP", TotalAmount: nullDec("100.00")},
		{ID: "2", Kind: "Payment", SenderID: "2", RecipientID: "3", Currency: "USD", TotalAmount: nullDec("432.10")},
	}

	summaries, err := SummarizeByCurrency("2", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 currencies, got %d", len(summaries))
	}
	if !summaries["GBP"].Sales.Equal(dec("100.00")) {
		t.Errorf("GBP sales: expected 100.00, got %s", summaries["GBP"].Sales)
	}
	if !summaries["USD"].SaleReceipts.Equal(dec("432.10")) {
		t.Errorf("USD sale receipts: expected 432.10, got %s", summaries["USD"].SaleReceipts)
	}
	if !summaries["USD"].Balance().Equal(dec("-432.10")) {
		t.Errorf("USD balance: expected -432.10, got %s", summaries["USD"].Balance())
	}
}

func TestSummarizeByCurrency_NullTotalContributesZero(t *testing.T) {
	items := []*LedgerItem{
		{ID: "1", Kind: "Invoice", SenderID: "1", RecipientID: "2", Currency: "EUR"},
	}

	summaries, err := SummarizeByCurrency("1", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eur, ok := summaries["EUR"]
	if !ok {
		t.Fatal("expected a EUR bucket for the zero contribution, not an omission")
	}
	if !eur.Sales.IsZero() {
		t.Errorf("expected zero sales, got %s", eur.Sales)
	}
}

func TestSummarizeByCurrency_UninvolvedParty(t *testing.T) {
	items := []*LedgerItem{
		{ID: "1", Kind: "Invoice", SenderID: "1", RecipientID: "2", Currency: "GBP", TotalAmount: nullDec("10.00")},
	}

	_, err := SummarizeByCurrency("9", items)
	if !errors.Is(err, ErrAmbiguousParty) {
		t.Errorf("expected ErrAmbiguousParty, got %v", err)
	}
}

func TestSummarizeByCurrency_Empty(t *testing.T) {
	summaries, err := SummarizeByCurrency("1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected no summaries, got %d", len(summaries))
	}
}

func TestNewAccountSummary_ZeroFields(t *testing.T) {
	summary := NewAccountSummary("GBP")

	for _, field := range []string{"sales", "purchases", "sale_receipts", "purchase_payments", "balance"} {
		got, err := summary.Field(field)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(decimal.Zero) {
			t.Errorf("expected %s to be zero, got %s", field, got)
		}
	}
}
