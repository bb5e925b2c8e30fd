package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerbook/internal/domain"
)

// PartyRepository implements usecase.PartyRepository.
type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

// Create inserts a party.
func (repo *PartyRepository) Create(ctx context.Context, party *domain.Party) error {
	defer observeQuery("parties.create", time.Now())

	_, err := repo.pool.Exec(ctx, `
		INSERT INTO parties (id, display_name, address, country_code, tax_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(party.ID), party.DisplayName, party.Address, party.CountryCode, party.TaxNumber,
		timeToPgTimestamptz(party.CreatedAt), timeToPgTimestamptz(party.UpdatedAt),
	)

	return err
}

// Find retrieves a party by id.
func (repo *PartyRepository) Find(ctx context.Context, id domain.PartyID) (*domain.Party, error) {
	defer observeQuery("parties.find", time.Now())

	var (
		party                domain.Party
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := repo.pool.QueryRow(ctx, `
		SELECT id, display_name, address, country_code, tax_number, created_at, updated_at
		FROM parties
		WHERE id = $1`, string(id),
	).Scan(&party.ID, &party.DisplayName, &party.Address, &party.CountryCode, &party.TaxNumber, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}

		return nil, err
	}

	party.CreatedAt = createdAt.Time
	party.UpdatedAt = updatedAt.Time

	return &party, nil
}

// DisplayName retrieves just the display name of a party.
func (repo *PartyRepository) DisplayName(ctx context.Context, id domain.PartyID) (string, error) {
	defer observeQuery("parties.display_name", time.Now())

	var name string
	err := repo.pool.QueryRow(ctx, `SELECT display_name FROM parties WHERE id = $1`, string(id)).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrPartyNotFound
		}

		return "", err
	}

	return name, nil
}

// DisplayNames maps ids to display names. Ids without a matching party are
// left out of the result.
func (repo *PartyRepository) DisplayNames(ctx context.Context, ids []domain.PartyID) (map[domain.PartyID]string, error) {
	defer observeQuery("parties.display_names", time.Now())

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}

	rows, err := repo.pool.Query(ctx, `SELECT id, display_name FROM parties WHERE id = ANY($1)`, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[domain.PartyID]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[domain.PartyID(id)] = name
	}

	return names, rows.Err()
}
