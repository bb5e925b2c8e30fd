package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// CreatePartyRequest represents a request to register a party.
type CreatePartyRequest struct {
	DisplayName string `json:"display_name"`
	Address     string `json:"address,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	TaxNumber   string `json:"tax_number,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePartyRequest) ToUseCaseInput() usecase.CreatePartyInput {
	return usecase.CreatePartyInput{
		DisplayName: r.DisplayName,
		Address:     r.Address,
		CountryCode: r.CountryCode,
		TaxNumber:   r.TaxNumber,
	}
}

// LineItemRequest represents one line item in a ledger item request.
type LineItemRequest struct {
	NetAmount   decimal.Decimal `json:"net_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *LineItemRequest) ToUseCaseInput() usecase.LineItemInput {
	return usecase.LineItemInput{
		NetAmount:   r.NetAmount,
		TaxAmount:   r.TaxAmount,
		Description: r.Description,
	}
}

// CreateLedgerItemRequest represents a request to record a ledger item.
// total_amount and tax_amount only apply when line_items is absent.
type CreateLedgerItemRequest struct {
	Kind        string            `json:"kind"`
	SenderID    string            `json:"sender_id"`
	RecipientID string            `json:"recipient_id"`
	Currency    string            `json:"currency"`
	IssueDate   time.Time         `json:"issue_date"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Status      string            `json:"status,omitempty"`
	Description string            `json:"description,omitempty"`
	TotalAmount *decimal.Decimal  `json:"total_amount,omitempty"`
	TaxAmount   *decimal.Decimal  `json:"tax_amount,omitempty"`
	LineItems   []LineItemRequest `json:"line_items,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLedgerItemRequest) ToUseCaseInput() usecase.CreateLedgerItemInput {
	lineItems := make([]usecase.LineItemInput, len(r.LineItems))
	for i, li := range r.LineItems {
		lineItems[i] = li.ToUseCaseInput()
	}

	return usecase.CreateLedgerItemInput{
		Kind:        r.Kind,
		SenderID:    domain.PartyID(r.SenderID),
		RecipientID: domain.PartyID(r.RecipientID),
		Currency:    domain.CurrencyCode(r.Currency),
		IssueDate:   r.IssueDate,
		DueDate:     r.DueDate,
		Status:      domain.Status(r.Status),
		Description: r.Description,
		TotalAmount: r.TotalAmount,
		TaxAmount:   r.TaxAmount,
		LineItems:   lineItems,
		Metadata:    r.Metadata,
	}
}
