package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/domain"
)

// PartyResponse represents a party in API responses.
type PartyResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Address     string    `json:"address,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
	TaxNumber   string    `json:"tax_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PartyFromDomain converts a domain party to a response.
func PartyFromDomain(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Address:     p.Address,
		CountryCode: p.CountryCode,
		TaxNumber:   p.TaxNumber,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID          string          `json:"id"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PartyDetailsResponse represents the resolved details of one side of a
// ledger item.
type PartyDetailsResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// LedgerItemResponse represents a ledger item in API responses. The
// formatted amounts are rendered from the sender's viewpoint with positive
// signs; a null total renders as an empty string.
type LedgerItemResponse struct {
	ID                   string                `json:"id"`
	Kind                 string                `json:"kind"`
	SenderID             string                `json:"sender_id"`
	RecipientID          string                `json:"recipient_id"`
	Sender               *PartyDetailsResponse `json:"sender,omitempty"`
	Recipient            *PartyDetailsResponse `json:"recipient,omitempty"`
	Currency             string                `json:"currency"`
	Status               string                `json:"status"`
	IssueDate            time.Time             `json:"issue_date"`
	DueDate              *time.Time            `json:"due_date,omitempty"`
	Description          string                `json:"description,omitempty"`
	TotalAmount          *decimal.Decimal      `json:"total_amount"`
	TaxAmount            *decimal.Decimal      `json:"tax_amount"`
	NetAmount            *decimal.Decimal      `json:"net_amount"`
	TotalAmountFormatted string                `json:"total_amount_formatted"`
	TaxAmountFormatted   string                `json:"tax_amount_formatted"`
	LineItems            []LineItemResponse    `json:"line_items"`
	Metadata             map[string]any        `json:"metadata,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// LedgerItemFromDomain converts a domain ledger item to a response.
func LedgerItemFromDomain(li *domain.LedgerItem) *LedgerItemResponse {
	resp := &LedgerItemResponse{
		ID:          li.ID,
		Kind:        li.Kind,
		SenderID:    string(li.SenderID),
		RecipientID: string(li.RecipientID),
		Currency:    string(li.Currency),
		Status:      string(li.Status),
		IssueDate:   li.IssueDate,
		DueDate:     li.DueDate,
		Description: li.Description,
		TotalAmount: nullableDecimal(li.TotalAmount),
		TaxAmount:   nullableDecimal(li.TaxAmount),
		NetAmount:   nullableDecimal(li.NetAmount()),
		LineItems:   make([]LineItemResponse, 0, len(li.LineItems)),
		Metadata:    li.Metadata,
		CreatedAt:   li.CreatedAt,
		UpdatedAt:   li.UpdatedAt,
	}

	// The default viewpoint is always involved, so formatting cannot fail.
	resp.TotalAmountFormatted, _ = li.TotalAmountFormatted(domain.FormatOptions{})
	resp.TaxAmountFormatted, _ = li.TaxAmountFormatted(domain.FormatOptions{})

	if li.Sender != nil {
		resp.Sender = &PartyDetailsResponse{ID: string(li.Sender.ID), Name: li.Sender.Name, Address: li.Sender.Address}
	}
	if li.Recipient != nil {
		resp.Recipient = &PartyDetailsResponse{ID: string(li.Recipient.ID), Name: li.Recipient.Name, Address: li.Recipient.Address}
	}

	for _, item := range li.LineItems {
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:          item.ID,
			NetAmount:   item.NetAmount,
			TaxAmount:   item.TaxAmount,
			GrossAmount: item.GrossAmount(),
			Description: item.Description,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		})
	}

	return resp
}

// LedgerItemsFromDomain converts domain ledger items to responses.
func LedgerItemsFromDomain(items []*domain.LedgerItem) []*LedgerItemResponse {
	result := make([]*LedgerItemResponse, len(items))
	for i, li := range items {
		result[i] = LedgerItemFromDomain(li)
	}
	return result
}

// AccountSummaryResponse represents a single-currency account summary in
// API responses.
type AccountSummaryResponse struct {
	Currency         string          `json:"currency"`
	Sales            decimal.Decimal `json:"sales"`
	Purchases        decimal.Decimal `json:"purchases"`
	SaleReceipts     decimal.Decimal `json:"sale_receipts"`
	PurchasePayments decimal.Decimal `json:"purchase_payments"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balance_formatted"`
	Display          string          `json:"display"`
}

// SummaryFromDomain converts a domain account summary to a response.
func SummaryFromDomain(s domain.AccountSummary) AccountSummaryResponse {
	return AccountSummaryResponse{
		Currency:         string(s.Currency),
		Sales:            s.Sales,
		Purchases:        s.Purchases,
		SaleReceipts:     s.SaleReceipts,
		PurchasePayments: s.PurchasePayments,
		Balance:          s.Balance(),
		BalanceFormatted: s.BalanceFormatted(),
		Display:          s.String(),
	}
}

// SummariesFromDomain converts a per-currency summary map keyed by currency
// code.
func SummariesFromDomain(summaries map[domain.CurrencyCode]domain.AccountSummary) map[string]AccountSummaryResponse {
	result := make(map[string]AccountSummaryResponse, len(summaries))
	for currency, s := range summaries {
		result[string(currency)] = SummaryFromDomain(s)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func nullableDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}

	v := d.Decimal
	return &v
}
