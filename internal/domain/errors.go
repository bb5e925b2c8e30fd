package domain

import "errors"

var (
	// Classification errors
	ErrAmbiguousParty = errors.New("party is neither sender nor recipient of this ledger item")
	ErrUnknownKind    = errors.New("unknown ledger item kind")

	// Money errors
	ErrCurrencyMismatch = errors.New("cannot combine amounts in different currencies")

	// Lookup errors
	ErrLedgerItemNotFound = errors.New("ledger item not found")
	ErrLineItemNotFound   = errors.New("line item not found")
	ErrPartyNotFound      = errors.New("party not found")

	// Contract errors
	ErrUnimplementedCapability = errors.New("ledger item kind does not supply mandatory collaborator data")
	ErrUnknownField            = errors.New("unknown field")
)
