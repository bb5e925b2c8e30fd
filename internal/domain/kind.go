package domain

import "sort"

// BaseKind determines the debit/credit polarity of a ledger item. Every
// concrete kind inherits the polarity of its base; classification never
// dispatches on the concrete kind.
type BaseKind string

const (
	BaseInvoice    BaseKind = "invoice"
	BaseCreditNote BaseKind = "credit_note"
	BasePayment    BaseKind = "payment"
)

// KindAttribute selects a descriptor flag in kind queries.
type KindAttribute string

const (
	AttrIsInvoice    KindAttribute = "is_invoice"
	AttrIsCreditNote KindAttribute = "is_credit_note"
	AttrIsPayment    KindAttribute = "is_payment"
)

// KindDescriptor describes one ledger item kind. The set of kinds is closed
// and statically known; there is no runtime registration.
type KindDescriptor struct {
	Name         string
	Base         BaseKind
	IsInvoice    bool
	IsCreditNote bool
	IsPayment    bool
}

var kinds = []KindDescriptor{
	{Name: "CorporationTaxLiability", Base: BaseInvoice, IsInvoice: true},
	{Name: "CreditNote", Base: BaseCreditNote, IsCreditNote: true},
	{Name: "Invoice", Base: BaseInvoice, IsInvoice: true},
	{Name: "Payment", Base: BasePayment, IsPayment: true},
	{Name: "PaymentReceipt", Base: BasePayment, IsPayment: true},
	{Name: "SelfBilledInvoice", Base: BaseInvoice, IsInvoice: true},
}

// KindByName returns the descriptor for a kind name.
func KindByName(name string) (KindDescriptor, error) {
	for _, k := range kinds {
		if k.Name == name {
			return k, nil
		}
	}
	return KindDescriptor{}, ErrUnknownKind
}

// Kinds returns all known kind descriptors ordered by name.
func Kinds() []KindDescriptor {
	out := make([]KindDescriptor, len(kinds))
	copy(out, kinds)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SelectMatchingKinds returns the kinds whose attr flag equals value,
// ordered by name. Unknown attributes fail rather than matching nothing, to
// avoid masking typos.
func SelectMatchingKinds(attr KindAttribute, value bool) ([]KindDescriptor, error) {
	var out []KindDescriptor
	for _, k := range Kinds() {
		var flag bool
		switch attr {
		case AttrIsInvoice:
			flag = k.IsInvoice
		case AttrIsCreditNote:
			flag = k.IsCreditNote
		case AttrIsPayment:
			flag = k.IsPayment
		default:
			return nil, ErrUnknownField
		}
		if flag == value {
			out = append(out, k)
		}
	}
	return out, nil
}
