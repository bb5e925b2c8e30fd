package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LedgerItemRepository implements usecase.LedgerItemRepository.
type LedgerItemRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerItemRepository creates a new LedgerItemRepository.
func NewLedgerItemRepository(pool *pgxpool.Pool) *LedgerItemRepository {
	return &LedgerItemRepository{pool: pool}
}

// ledgerItemColumns joins party details for both sides so a loaded item can
// satisfy the record contract without further queries.
const ledgerItemColumns = `
	i.id, i.kind, i.sender_id, i.recipient_id, i.currency,
	i.total_amount, i.tax_amount, i.status, i.description,
	i.issue_date, i.due_date, i.metadata, i.created_at, i.updated_at,
	s.display_name, s.address, r.display_name, r.address`

const ledgerItemFrom = `
	FROM ledger_items i
	JOIN parties s ON s.id = i.sender_id
	JOIN parties r ON r.id = i.recipient_id`

// Create inserts a ledger item within the given transaction.
func (repo *LedgerItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.LedgerItem) error {
	defer observeQuery("ledger_items.create", time.Now())

	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}

	_, err = txQuerier(tx).Exec(ctx, `
		INSERT INTO ledger_items (
			id, kind, sender_id, recipient_id, currency,
			total_amount, tax_amount, status, description,
			issue_date, due_date, metadata, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		item.ID, item.Kind, string(item.SenderID), string(item.RecipientID), string(item.Currency),
		nullDecimalToNumeric(item.TotalAmount), nullDecimalToNumeric(item.TaxAmount),
		string(item.Status), item.Description,
		timeToPgTimestamptz(item.IssueDate), timePtrToPgTimestamptz(item.DueDate),
		metadata, timeToPgTimestamptz(item.CreatedAt), timeToPgTimestamptz(item.UpdatedAt),
	)

	return err
}

// Update persists the mutable fields of a ledger item within the given
// transaction.
func (repo *LedgerItemRepository) Update(ctx context.Context, tx usecase.Transaction, item *domain.LedgerItem) error {
	defer observeQuery("ledger_items.update", time.Now())

	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}

	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE ledger_items
		SET total_amount = $2, tax_amount = $3, status = $4, description = $5,
		    due_date = $6, metadata = $7, updated_at = $8
		WHERE id = $1`,
		item.ID,
		nullDecimalToNumeric(item.TotalAmount), nullDecimalToNumeric(item.TaxAmount),
		string(item.Status), item.Description,
		timePtrToPgTimestamptz(item.DueDate), metadata, timeToPgTimestamptz(item.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLedgerItemNotFound
	}

	return nil
}

// Find retrieves a ledger item with its party details and line items.
func (repo *LedgerItemRepository) Find(ctx context.Context, id string) (*domain.LedgerItem, error) {
	defer observeQuery("ledger_items.find", time.Now())

	return repo.findOne(ctx, repo.pool, id, false)
}

// FindForUpdate retrieves a ledger item with a FOR UPDATE lock on its row.
func (repo *LedgerItemRepository) FindForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerItem, error) {
	defer observeQuery("ledger_items.find_for_update", time.Now())

	return repo.findOne(ctx, txQuerier(tx), id, true)
}

func (repo *LedgerItemRepository) findOne(ctx context.Context, q querier, id string, forUpdate bool) (*domain.LedgerItem, error) {
	query := `SELECT` + ledgerItemColumns + ledgerItemFrom + ` WHERE i.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF i`
	}

	item, err := scanLedgerItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerItemNotFound
		}

		return nil, err
	}

	if err := repo.loadLineItems(ctx, q, []*domain.LedgerItem{item}); err != nil {
		return nil, err
	}

	return item, nil
}

// Filtered retrieves all ledger items matching the filter, line items
// attached, ordered by the filter's order column. The structured conditions
// run in SQL; the arbitrary condition and the empty-invoice exclusion run on
// the loaded rows.
func (repo *LedgerItemRepository) Filtered(ctx context.Context, filter domain.LedgerItemFilter) ([]*domain.LedgerItem, error) {
	defer observeQuery("ledger_items.filtered", time.Now())

	query, args := buildFilterQuery(filter)

	rows, err := repo.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.LedgerItem
	for rows.Next() {
		item, err := scanLedgerItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := repo.loadLineItems(ctx, repo.pool, items); err != nil {
		return nil, err
	}

	matched := items[:0]
	for _, item := range items {
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}

	return matched, nil
}

func buildFilterQuery(filter domain.LedgerItemFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.SentBy != "" {
		conds = append(conds, "i.sender_id = "+arg(string(filter.SentBy)))
	}
	if filter.ReceivedBy != "" {
		conds = append(conds, "i.recipient_id = "+arg(string(filter.ReceivedBy)))
	}
	if filter.SentOrReceivedBy != "" {
		p := arg(string(filter.SentOrReceivedBy))
		conds = append(conds, fmt.Sprintf("(i.sender_id = %s OR i.recipient_id = %s)", p, p))
	}
	if filter.InvolvingParty != "" {
		p := arg(string(filter.InvolvingParty))
		conds = append(conds, fmt.Sprintf("(i.sender_id = %s OR i.recipient_id = %s)", p, p))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		conds = append(conds, "i.status = ANY("+arg(statuses)+")")
	}
	if filter.Currency != "" {
		conds = append(conds, "i.currency = "+arg(string(filter.Currency)))
	}
	if filter.DueAt != nil {
		conds = append(conds, "i.due_date IS NOT NULL AND i.due_date <= "+arg(*filter.DueAt))
	}
	if filter.IssuedFrom != nil {
		conds = append(conds, "i.issue_date >= "+arg(*filter.IssuedFrom))
	}
	if filter.IssuedBefore != nil {
		conds = append(conds, "i.issue_date < "+arg(*filter.IssuedBefore))
	}

	query := `SELECT` + ledgerItemColumns + ledgerItemFrom
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf("\n\tORDER BY i.%s, i.id", filter.SafeOrderColumn())

	return query, args
}

// CreateLineItem inserts a line item within the given transaction.
func (repo *LedgerItemRepository) CreateLineItem(ctx context.Context, tx usecase.Transaction, lineItem *domain.LineItem) error {
	defer observeQuery("line_items.create", time.Now())

	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO line_items (
			id, ledger_item_id, net_amount, tax_amount, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		lineItem.ID, lineItem.LedgerItemID,
		decimalToNumeric(lineItem.NetAmount), decimalToNumeric(lineItem.TaxAmount),
		lineItem.Description,
		timeToPgTimestamptz(lineItem.CreatedAt), timeToPgTimestamptz(lineItem.UpdatedAt),
	)

	return err
}

// UpdateLineItem persists changed amounts of a line item within the given
// transaction.
func (repo *LedgerItemRepository) UpdateLineItem(ctx context.Context, tx usecase.Transaction, lineItem *domain.LineItem) error {
	defer observeQuery("line_items.update", time.Now())

	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE line_items
		SET net_amount = $2, tax_amount = $3, description = $4, updated_at = $5
		WHERE id = $1`,
		lineItem.ID,
		decimalToNumeric(lineItem.NetAmount), decimalToNumeric(lineItem.TaxAmount),
		lineItem.Description, timeToPgTimestamptz(lineItem.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLineItemNotFound
	}

	return nil
}

// loadLineItems attaches line items to the given ledger items in one query.
// Items end up with a non-nil, possibly empty slice: the association is
// always supplied on loaded records.
func (repo *LedgerItemRepository) loadLineItems(ctx context.Context, q querier, items []*domain.LedgerItem) error {
	if len(items) == 0 {
		return nil
	}

	byID := make(map[string]*domain.LedgerItem, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		item.LineItems = []domain.LineItem{}
		byID[item.ID] = item
		ids = append(ids, item.ID)
	}

	rows, err := q.Query(ctx, `
		SELECT id, ledger_item_id, net_amount, tax_amount, description, created_at, updated_at
		FROM line_items
		WHERE ledger_item_id = ANY($1)
		ORDER BY created_at, id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			li                   domain.LineItem
			net, tax             pgtype.Numeric
			createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&li.ID, &li.LedgerItemID, &net, &tax, &li.Description, &createdAt, &updatedAt); err != nil {
			return err
		}
		li.NetAmount = numericToDecimal(net)
		li.TaxAmount = numericToDecimal(tax)
		li.CreatedAt = createdAt.Time
		li.UpdatedAt = updatedAt.Time

		if parent, ok := byID[li.LedgerItemID]; ok {
			parent.LineItems = append(parent.LineItems, li)
		}
	}

	return rows.Err()
}

func scanLedgerItem(row pgx.Row) (*domain.LedgerItem, error) {
	var (
		item                       domain.LedgerItem
		senderID, recipientID      string
		currency, status           string
		total, tax                 pgtype.Numeric
		issueDate, dueDate         pgtype.Timestamptz
		createdAt, updatedAt       pgtype.Timestamptz
		metadata                   []byte
		senderName, senderAddr     string
		recipientName, recipAddr   string
	)

	err := row.Scan(
		&item.ID, &item.Kind, &senderID, &recipientID, &currency,
		&total, &tax, &status, &item.Description,
		&issueDate, &dueDate, &metadata, &createdAt, &updatedAt,
		&senderName, &senderAddr, &recipientName, &recipAddr,
	)
	if err != nil {
		return nil, err
	}

	item.SenderID = domain.PartyID(senderID)
	item.RecipientID = domain.PartyID(recipientID)
	item.Currency = domain.CurrencyCode(currency)
	item.Status = domain.Status(status)
	item.TotalAmount = numericToNullDecimal(total)
	item.TaxAmount = numericToNullDecimal(tax)
	item.IssueDate = issueDate.Time
	if dueDate.Valid {
		t := dueDate.Time
		item.DueDate = &t
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	item.Sender = &domain.PartyDetails{ID: item.SenderID, Name: senderName, Address: senderAddr}
	item.Recipient = &domain.PartyDetails{ID: item.RecipientID, Name: recipientName, Address: recipAddr}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &item.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for item %q: %w", item.ID, err)
		}
	}

	return &item, nil
}

func txQuerier(tx usecase.Transaction) querier {
	return tx.(*Tx).PgxTx()
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}

	return json.Marshal(metadata)
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func nullDecimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(d.Decimal)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToNullDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: numericToDecimal(n), Valid: true}
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return timeToPgTimestamptz(*t)
}
