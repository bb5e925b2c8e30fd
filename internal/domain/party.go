package domain

import "time"

// PartyID identifies one side of a ledger item. The zero value is the
// default viewpoint: it stands for the sending/owning party itself and is a
// first-class value in classification and formatting calls.
type PartyID string

// SelfParty is the default viewpoint.
const SelfParty PartyID = ""

// Party is a counterparty known to the ledger.
type Party struct {
	ID          PartyID
	DisplayName string
	Address     string
	CountryCode string
	TaxNumber   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PartyDetails is the collaborator data a ledger item kind must supply for
// each side of the transaction.
type PartyDetails struct {
	ID      PartyID
	Name    string
	Address string
}
