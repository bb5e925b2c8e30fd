package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iho/ledgerbook/internal/domain"
)

var (
	// ErrViewpointRequired is returned when a summary is requested without
	// an explicit viewpoint party.
	ErrViewpointRequired = errors.New("account summaries require an explicit viewpoint party")
)

// SummaryOptions narrows the set of ledger items a summary is computed
// over.
type SummaryOptions struct {
	// WithStatus overrides the default status scope of closed and cleared
	// items.
	WithStatus   []domain.Status
	IssuedFrom   *time.Time
	IssuedBefore *time.Time
	// Where is an arbitrary caller-supplied condition composed with the
	// structured filter. Summaries with a Where condition bypass the cache.
	Where func(*domain.LedgerItem) bool
}

func (o SummaryOptions) statuses() []domain.Status {
	if len(o.WithStatus) > 0 {
		return o.WithStatus
	}
	return domain.InEffectStatuses()
}

// SummaryUseCase computes multi-party, multi-currency account summaries.
// Each call re-reads from the repository and produces an immutable result;
// no state is shared between calls.
type SummaryUseCase struct {
	itemRepo LedgerItemRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewSummaryUseCase creates a new SummaryUseCase. cache may be nil to
// disable summary caching.
func NewSummaryUseCase(itemRepo LedgerItemRepository, cache Cache, cacheTTL time.Duration) *SummaryUseCase {
	return &SummaryUseCase{
		itemRepo: itemRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// AccountSummary aggregates the ledger items between selfID and otherID
// (or selfID and everyone, when otherID is empty) into one summary per
// currency.
func (uc *SummaryUseCase) AccountSummary(
	ctx context.Context,
	selfID, otherID domain.PartyID,
	opts SummaryOptions,
) (map[domain.CurrencyCode]domain.AccountSummary, error) {
	if selfID == domain.SelfParty {
		return nil, ErrViewpointRequired
	}

	cacheKey := ""
	if uc.cache != nil && opts.Where == nil {
		cacheKey = summaryCacheKey(selfID, otherID, opts)
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			var summaries map[domain.CurrencyCode]domain.AccountSummary
			if err := json.Unmarshal(cached, &summaries); err == nil {
				return summaries, nil
			}
		}
	}

	items, err := uc.itemRepo.Filtered(ctx, domain.LedgerItemFilter{
		SentOrReceivedBy: selfID,
		InvolvingParty:   otherID,
		Statuses:         opts.statuses(),
		IssuedFrom:       opts.IssuedFrom,
		IssuedBefore:     opts.IssuedBefore,
		Where:            opts.Where,
	})
	if err != nil {
		return nil, err
	}

	summaries, err := domain.SummarizeByCurrency(selfID, items)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if encoded, err := json.Marshal(summaries); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, encoded, uc.cacheTTL)
		}
	}

	return summaries, nil
}

// AccountSummaries computes per-currency summaries for every counterparty
// that has an in-scope ledger item with selfID, keyed by counterparty.
func (uc *SummaryUseCase) AccountSummaries(
	ctx context.Context,
	selfID domain.PartyID,
	opts SummaryOptions,
) (map[domain.PartyID]map[domain.CurrencyCode]domain.AccountSummary, error) {
	if selfID == domain.SelfParty {
		return nil, ErrViewpointRequired
	}

	items, err := uc.itemRepo.Filtered(ctx, domain.LedgerItemFilter{
		SentOrReceivedBy: selfID,
		Statuses:         opts.statuses(),
		IssuedFrom:       opts.IssuedFrom,
		IssuedBefore:     opts.IssuedBefore,
		Where:            opts.Where,
	})
	if err != nil {
		return nil, err
	}

	byCounterparty := make(map[domain.PartyID][]*domain.LedgerItem)
	for _, li := range items {
		other := li.Counterparty(selfID)
		byCounterparty[other] = append(byCounterparty[other], li)
	}

	result := make(map[domain.PartyID]map[domain.CurrencyCode]domain.AccountSummary, len(byCounterparty))
	for other, group := range byCounterparty {
		summaries, err := domain.SummarizeByCurrency(selfID, group)
		if err != nil {
			return nil, err
		}
		result[other] = summaries
	}

	return result, nil
}

// summaryCacheKey builds a deterministic cache key from the structured
// summary conditions.
func summaryCacheKey(selfID, otherID domain.PartyID, opts SummaryOptions) string {
	statuses := make([]string, 0, len(opts.statuses()))
	for _, s := range opts.statuses() {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	from, before := "", ""
	if opts.IssuedFrom != nil {
		from = opts.IssuedFrom.UTC().Format(time.RFC3339)
	}
	if opts.IssuedBefore != nil {
		before = opts.IssuedBefore.UTC().Format(time.RFC3339)
	}

	return fmt.Sprintf("summary:%s:%s:%s:%s:%s", selfID, otherID, strings.Join(statuses, ","), from, before)
}
