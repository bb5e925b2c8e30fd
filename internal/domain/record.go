package domain

import "fmt"

// LedgerRecord is the capability contract every transaction-record type
// must satisfy: it supplies sender details, recipient details and a line
// item association. Kinds that fail to do so are construction-time contract
// violations and must fail loudly, never degrade to a default.
type LedgerRecord interface {
	SenderDetails() (PartyDetails, error)
	RecipientDetails() (PartyDetails, error)
	RecordLineItems() ([]LineItem, error)
}

// SenderDetails returns the sender's collaborator data.
func (li *LedgerItem) SenderDetails() (PartyDetails, error) {
	if li.Sender == nil {
		return PartyDetails{}, fmt.Errorf("%w: sender details", ErrUnimplementedCapability)
	}
	return *li.Sender, nil
}

// RecipientDetails returns the recipient's collaborator data.
func (li *LedgerItem) RecipientDetails() (PartyDetails, error) {
	if li.Recipient == nil {
		return PartyDetails{}, fmt.Errorf("%w: recipient details", ErrUnimplementedCapability)
	}
	return *li.Recipient, nil
}

// RecordLineItems returns the line item association. A nil slice means the
// association was never supplied, which is distinct from an empty one.
func (li *LedgerItem) RecordLineItems() ([]LineItem, error) {
	if li.LineItems == nil {
		return nil, fmt.Errorf("%w: line items association", ErrUnimplementedCapability)
	}
	return li.LineItems, nil
}

// VerifyRecord checks the capability contract at construction time.
func VerifyRecord(r LedgerRecord) error {
	if _, err := r.SenderDetails(); err != nil {
		return err
	}
	if _, err := r.RecipientDetails(); err != nil {
		return err
	}
	if _, err := r.RecordLineItems(); err != nil {
		return err
	}
	return nil
}
