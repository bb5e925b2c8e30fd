package usecase

import (
	"context"
	"time"

	"github.com/iho/ledgerbook/internal/domain"
)

// PartyUseCase handles party business logic.
type PartyUseCase struct {
	partyRepo PartyRepository
	idGen     IDGenerator
}

// NewPartyUseCase creates a new PartyUseCase.
func NewPartyUseCase(partyRepo PartyRepository, idGen IDGenerator) *PartyUseCase {
	return &PartyUseCase{
		partyRepo: partyRepo,
		idGen:     idGen,
	}
}

// CreatePartyInput represents input for registering a party.
type CreatePartyInput struct {
	DisplayName string
	Address     string
	CountryCode string
	TaxNumber   string
}

// CreateParty registers a party that can appear as sender or recipient on
// ledger items.
func (uc *PartyUseCase) CreateParty(ctx context.Context, input CreatePartyInput) (*domain.Party, error) {
	now := time.Now().UTC()
	party := &domain.Party{
		ID:          domain.PartyID(uc.idGen.Generate()),
		DisplayName: input.DisplayName,
		Address:     input.Address,
		CountryCode: input.CountryCode,
		TaxNumber:   input.TaxNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// GetParty retrieves a party by id.
func (uc *PartyUseCase) GetParty(ctx context.Context, id domain.PartyID) (*domain.Party, error) {
	return uc.partyRepo.Find(ctx, id)
}

// DisplayNames maps party ids to display names. Ids with no matching party
// are left out of the result rather than failing the whole lookup.
func (uc *PartyUseCase) DisplayNames(ctx context.Context, ids []domain.PartyID) (map[domain.PartyID]string, error) {
	return uc.partyRepo.DisplayNames(ctx, ids)
}
