package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountSummary aggregates the in-scope ledger items between two parties
// (or one party and everyone else) in a single currency. A summary is
// computed fresh per query and never persisted.
type AccountSummary struct {
	Currency         CurrencyCode
	Sales            decimal.Decimal
	Purchases        decimal.Decimal
	SaleReceipts     decimal.Decimal
	PurchasePayments decimal.Decimal
}

// NewAccountSummary returns a zeroed summary for a currency.
func NewAccountSummary(currency CurrencyCode) AccountSummary {
	return AccountSummary{
		Currency:         currency,
		Sales:            decimal.Zero,
		Purchases:        decimal.Zero,
		SaleReceipts:     decimal.Zero,
		PurchasePayments: decimal.Zero,
	}
}

// Balance is the net amount owed to (positive) or by (negative) self:
// sales - purchases - sale_receipts + purchase_payments.
func (s AccountSummary) Balance() decimal.Decimal {
	return s.Sales.Sub(s.Purchases).Sub(s.SaleReceipts).Add(s.PurchasePayments)
}

// Field returns a summary figure by its wire name. Unknown names fail with
// ErrUnknownField rather than returning zero, so typos cannot masquerade as
// legitimate zero balances.
func (s AccountSummary) Field(name string) (decimal.Decimal, error) {
	switch name {
	case "sales":
		return s.Sales, nil
	case "purchases":
		return s.Purchases, nil
	case "sale_receipts":
		return s.SaleReceipts, nil
	case "purchase_payments":
		return s.PurchasePayments, nil
	case "balance":
		return s.Balance(), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// SalesFormatted renders the sales figure in the summary currency.
func (s AccountSummary) SalesFormatted() string {
	return NewMoney(s.Sales, s.Currency).Format()
}

// PurchasesFormatted renders the purchases figure.
func (s AccountSummary) PurchasesFormatted() string {
	return NewMoney(s.Purchases, s.Currency).Format()
}

// SaleReceiptsFormatted renders the sale receipts figure.
func (s AccountSummary) SaleReceiptsFormatted() string {
	return NewMoney(s.SaleReceipts, s.Currency).Format()
}

// PurchasePaymentsFormatted renders the purchase payments figure.
func (s AccountSummary) PurchasePaymentsFormatted() string {
	return NewMoney(s.PurchasePayments, s.Currency).Format()
}

// BalanceFormatted renders the balance, using the minus glyph when self
// owes money net.
func (s AccountSummary) BalanceFormatted() string {
	return NewMoney(s.Balance(), s.Currency).Format()
}

// String renders the summary as a deterministic one-line report.
func (s AccountSummary) String() string {
	return fmt.Sprintf("sales = %s; purchases = %s; sale_receipts = %s; purchase_payments = %s; balance = %s",
		s.SalesFormatted(), s.PurchasesFormatted(), s.SaleReceiptsFormatted(),
		s.PurchasePaymentsFormatted(), s.BalanceFormatted())
}

// Counterparty returns the party on the other side of the item from
// selfID. The default viewpoint's counterparty is the recipient.
func (li *LedgerItem) Counterparty(selfID PartyID) PartyID {
	if selfID == SelfParty || selfID == li.SenderID {
		return li.RecipientID
	}
	return li.SenderID
}

// SummarizeByCurrency partitions items by currency and classifies each from
// the viewpoint of selfID:
//
//   - invoices and credit notes book into sales when sent by self and into
//     purchases when received by self;
//   - payments book into sale_receipts when sent by self (a payment receipt
//     issued for a sale) and into purchase_payments when received by self.
//
// Amounts are summed as exact decimals using the recorded total. Items with
// a null total contribute zero to their currency bucket, not an omission.
func SummarizeByCurrency(selfID PartyID, items []*LedgerItem) (map[CurrencyCode]AccountSummary, error) {
	summaries := make(map[CurrencyCode]AccountSummary)

	for _, li := range items {
		if selfID != SelfParty && selfID != li.SenderID && selfID != li.RecipientID {
			return nil, fmt.Errorf("%w: party %q on item %q", ErrAmbiguousParty, selfID, li.ID)
		}

		kind, err := KindByName(li.Kind)
		if err != nil {
			return nil, fmt.Errorf("summarize item %q: %w", li.ID, err)
		}

		summary, ok := summaries[li.Currency]
		if !ok {
			summary = NewAccountSummary(li.Currency)
		}

		amount := decimal.Zero
		if li.TotalAmount.Valid {
			amount = li.TotalAmount.Decimal
		}

		sentBySelf := selfID == SelfParty || selfID == li.SenderID

		switch kind.Base {
		case BaseInvoice, BaseCreditNote:
			if sentBySelf {
				summary.Sales = summary.Sales.Add(amount)
			} else {
				summary.Purchases = summary.Purchases.Add(amount)
			}
		case BasePayment:
			if sentBySelf {
				summary.SaleReceipts = summary.SaleReceipts.Add(amount)
			} else {
				summary.PurchasePayments = summary.PurchasePayments.Add(amount)
			}
		}

		summaries[li.Currency] = summary
	}

	return summaries, nil
}
