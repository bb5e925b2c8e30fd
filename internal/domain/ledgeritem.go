package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a ledger item. Items are editable while
// open or pending and read-mostly afterwards; only closed and cleared items
// are in effect for accounting purposes.
type Status string

const (
	StatusOpen      Status = "open"
	StatusPending   Status = "pending"
	StatusClosed    Status = "closed"
	StatusCleared   Status = "cleared"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusClosed, StatusCleared, StatusCancelled:
		return true
	}
	return false
}

// InEffectStatuses are the statuses included in account summaries by
// default.
func InEffectStatuses() []Status {
	return []Status{StatusClosed, StatusCleared}
}

// SignMode controls which side of a debit/credit pair renders with the
// minus glyph.
type SignMode int

const (
	SignPositive SignMode = iota
	SignNegative
)

// FormatOptions configures the signed formatting of ledger item amounts.
// The zero value renders both debits and credits positive from the default
// viewpoint.
type FormatOptions struct {
	Debit  SignMode
	Credit SignMode
	SelfID PartyID
}

// LedgerItem is a financial transaction record (invoice, credit note or
// payment) between two parties.
//
// TotalAmount and TaxAmount are null until computed from line items or
// explicitly assigned. When LineItems is non-empty, RecomputeTotals derives
// both from the line items and overwrites any stored scalar; the two
// sources are never combined.
type LedgerItem struct {
	ID          string
	Kind        string
	SenderID    PartyID
	RecipientID PartyID
	Sender      *PartyDetails
	Recipient   *PartyDetails
	IssueDate   time.Time
	DueDate     *time.Time
	Currency    CurrencyCode
	TotalAmount decimal.NullDecimal
	TaxAmount   decimal.NullDecimal
	Status      Status
	Description string
	LineItems   []LineItem
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SentBy reports whether the item was sent by the given party. The default
// viewpoint matches the sender.
func (li *LedgerItem) SentBy(id PartyID) bool {
	return id == SelfParty || id == li.SenderID
}

// ReceivedBy reports whether the item was received by the given party. The
// default viewpoint matches the recipient.
func (li *LedgerItem) ReceivedBy(id PartyID) bool {
	return id == SelfParty || id == li.RecipientID
}

// Debit classifies the item as a debit (true) or credit (false) from the
// viewpoint of selfID. Invoices and credit notes are debits when sent by
// self; payments invert. The default viewpoint takes the sender's
// perspective. A viewpoint involved on neither side cannot be classified
// and fails with ErrAmbiguousParty.
func (li *LedgerItem) Debit(selfID PartyID) (bool, error) {
	if selfID != SelfParty && selfID != li.SenderID && selfID != li.RecipientID {
		return false, fmt.Errorf("%w: party %q, sender %q, recipient %q",
			ErrAmbiguousParty, selfID, li.SenderID, li.RecipientID)
	}

	kind, err := KindByName(li.Kind)
	if err != nil {
		return false, fmt.Errorf("classify %q: %w", li.Kind, err)
	}

	sentBySelf := selfID == SelfParty || selfID == li.SenderID

	switch kind.Base {
	case BaseInvoice, BaseCreditNote:
		return sentBySelf, nil
	case BasePayment:
		return !sentBySelf, nil
	default:
		return false, fmt.Errorf("classify %q: %w", li.Kind, ErrUnknownKind)
	}
}

// RecomputeTotals derives TotalAmount and TaxAmount from the line items.
// With no line items, explicitly assigned scalars are left untouched.
// Recomputing twice without modifying line items yields identical results.
func (li *LedgerItem) RecomputeTotals() {
	if len(li.LineItems) == 0 {
		return
	}

	total := decimal.Zero
	tax := decimal.Zero
	for i := range li.LineItems {
		total = total.Add(li.LineItems[i].GrossAmount())
		tax = tax.Add(li.LineItems[i].TaxAmount)
	}

	li.TotalAmount = decimal.NullDecimal{Decimal: total, Valid: true}
	li.TaxAmount = decimal.NullDecimal{Decimal: tax, Valid: true}
}

// NetAmount returns total - tax. It is null whenever TotalAmount is null;
// there is no partial computation.
func (li *LedgerItem) NetAmount() decimal.NullDecimal {
	if !li.TotalAmount.Valid {
		return decimal.NullDecimal{}
	}

	tax := decimal.Zero
	if li.TaxAmount.Valid {
		tax = li.TaxAmount.Decimal
	}

	return decimal.NullDecimal{Decimal: li.TotalAmount.Decimal.Sub(tax), Valid: true}
}

// TotalAmountFormatted renders the total with the sign implied by opts: the
// amount is negated when the item is a debit and debits render negative, or
// a credit and credits render negative.
func (li *LedgerItem) TotalAmountFormatted(opts FormatOptions) (string, error) {
	return li.formatAmount(li.TotalAmount, opts)
}

// TaxAmountFormatted renders the tax portion under the same sign rules.
func (li *LedgerItem) TaxAmountFormatted(opts FormatOptions) (string, error) {
	return li.formatAmount(li.TaxAmount, opts)
}

// NetAmountFormatted renders total - tax under the same sign rules.
func (li *LedgerItem) NetAmountFormatted(opts FormatOptions) (string, error) {
	return li.formatAmount(li.NetAmount(), opts)
}

func (li *LedgerItem) formatAmount(amount decimal.NullDecimal, opts FormatOptions) (string, error) {
	if !amount.Valid {
		return "", nil
	}

	debit, err := li.Debit(opts.SelfID)
	if err != nil {
		return "", err
	}

	value := NewMoney(amount.Decimal, li.Currency)
	if (debit && opts.Debit == SignNegative) || (!debit && opts.Credit == SignNegative) {
		value = value.Neg()
	}

	return value.Format(), nil
}
