package domain

import "time"

// LedgerItemFilter selects a subset of ledger items. Conditions compose:
// every set field must hold. The aggregator consumes an already-filtered
// sequence and never re-derives filter logic itself.
type LedgerItemFilter struct {
	SentBy           PartyID
	ReceivedBy       PartyID
	SentOrReceivedBy PartyID
	// InvolvingParty additionally constrains the item to involve a second
	// party on either side (the two-party summary case).
	InvolvingParty PartyID
	Statuses       []Status
	Currency       CurrencyCode
	// DueAt keeps items whose due date is at or before the cutoff.
	DueAt        *time.Time
	IssuedFrom   *time.Time
	IssuedBefore *time.Time
	// ExcludeEmptyInvoices drops invoice and credit note items that have no
	// line items. Payments carry explicit totals and are kept.
	ExcludeEmptyInvoices bool
	// OrderBy is checked against a column whitelist; anything else falls
	// back to id order.
	OrderBy string
	// Where is an arbitrary caller-supplied condition, applied after all
	// structured conditions.
	Where func(*LedgerItem) bool
}

// orderColumns is the whitelist for OrderBy.
var orderColumns = map[string]bool{
	"id":         true,
	"issue_date": true,
	"due_date":   true,
	"status":     true,
	"currency":   true,
}

// SafeOrderColumn returns the validated sort column, defaulting to id.
func (f LedgerItemFilter) SafeOrderColumn() string {
	if orderColumns[f.OrderBy] {
		return f.OrderBy
	}
	return "id"
}

// Matches reports whether a ledger item satisfies every condition of the
// filter. Repository implementations may push structured conditions into
// queries; Matches is the reference semantics.
func (f LedgerItemFilter) Matches(li *LedgerItem) bool {
	if f.SentBy != SelfParty && li.SenderID != f.SentBy {
		return false
	}
	if f.ReceivedBy != SelfParty && li.RecipientID != f.ReceivedBy {
		return false
	}
	if f.SentOrReceivedBy != SelfParty &&
		li.SenderID != f.SentOrReceivedBy && li.RecipientID != f.SentOrReceivedBy {
		return false
	}
	if f.InvolvingParty != SelfParty &&
		li.SenderID != f.InvolvingParty && li.RecipientID != f.InvolvingParty {
		return false
	}

	if len(f.Statuses) > 0 && !statusIn(li.Status, f.Statuses) {
		return false
	}

	if f.Currency != "" && li.Currency != f.Currency {
		return false
	}

	if f.DueAt != nil && (li.DueDate == nil || li.DueDate.After(*f.DueAt)) {
		return false
	}
	if f.IssuedFrom != nil && li.IssueDate.Before(*f.IssuedFrom) {
		return false
	}
	if f.IssuedBefore != nil && !li.IssueDate.Before(*f.IssuedBefore) {
		return false
	}

	if f.ExcludeEmptyInvoices && len(li.LineItems) == 0 {
		if kind, err := KindByName(li.Kind); err == nil && !kind.IsPayment {
			return false
		}
	}

	if f.Where != nil && !f.Where(li) {
		return false
	}

	return true
}

func statusIn(s Status, set []Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
