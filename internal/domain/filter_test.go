package domain

import (
	"testing"
	"time"
)

func filterFixtures() []*LedgerItem {
	due := func(s string) *time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return &t
	}

	return []*LedgerItem{
		{
			ID: "a", Kind: "Invoice", SenderID: "1", RecipientID: "2",
			Currency: "GBP", Status: StatusClosed,
			IssueDate: mustTime("2008-06-30T00:00:00Z"), DueDate: due("2008-07-30T00:00:00Z"),
			LineItems: []LineItem{{NetAmount: dec("300"), TaxAmount: dec("15")}},
		},
		{
			ID: "b", Kind: "Payment", SenderID: "1", RecipientID: "2",
			Currency: "GBP", Status: StatusCleared,
			IssueDate: mustTime("2008-07-06T00:00:00Z"), DueDate: due("2008-07-06T00:00:00Z"),
			LineItems: []LineItem{},
		},
		{
			ID: "c", Kind: "Invoice", SenderID: "2", RecipientID: "1",
			Currency: "USD", Status: StatusOpen,
			IssueDate: mustTime("2009-01-01T00:00:00Z"), DueDate: due("2009-01-31T00:00:00Z"),
			LineItems: []LineItem{},
		},
		{
			ID: "d", Kind: "CreditNote", SenderID: "3", RecipientID: "1",
			Currency: "GBP", Status: StatusCancelled,
			IssueDate: mustTime("2009-02-01T00:00:00Z"),
			LineItems: []LineItem{},
		},
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func applyFilter(f LedgerItemFilter, items []*LedgerItem) []string {
	var ids []string
	for _, li := range items {
		if f.Matches(li) {
			ids = append(ids, li.ID)
		}
	}
	return ids
}

func assertIDs(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
}

func TestLedgerItemFilter_Matches(t *testing.T) {
	items := filterFixtures()

	tests := []struct {
		name     string
		filter   LedgerItemFilter
		expected []string
	}{
		{name: "empty filter matches everything", filter: LedgerItemFilter{}, expected: []string{"a", "b", "c", "d"}},
		{name: "sent by", filter: LedgerItemFilter{SentBy: "1"}, expected: []string{"a", "b"}},
		{name: "received by", filter: LedgerItemFilter{ReceivedBy: "1"}, expected: []string{"c", "d"}},
		{name: "sent or received by", filter: LedgerItemFilter{SentOrReceivedBy: "2"}, expected: []string{"a", "b", "c"}},
		{
			name:     "involving a second party",
			filter:   LedgerItemFilter{SentOrReceivedBy: "1", InvolvingParty: "3"},
			expected: []string{"d"},
		},
		{
			name:     "in effect statuses",
			filter:   LedgerItemFilter{Statuses: InEffectStatuses()},
			expected: []string{"a", "b"},
		},
		{
			name:     "open or pending",
			filter:   LedgerItemFilter{Statuses: []Status{StatusOpen, StatusPending}},
			expected: []string{"c"},
		},
		{name: "currency", filter: LedgerItemFilter{Currency: "USD"}, expected: []string{"c"}},
		{
			name:     "due at cutoff includes items due on the cutoff",
			filter:   LedgerItemFilter{DueAt: timePtr("2008-07-06T00:00:00Z")},
			expected: []string{"b"},
		},
		{
			name:     "due at excludes items without a due date",
			filter:   LedgerItemFilter{DueAt: timePtr("2010-01-01T00:00:00Z")},
			expected: []string{"a", "b", "c"},
		},
		{
			name: "issue date range",
			filter: LedgerItemFilter{
				IssuedFrom:   timePtr("2008-01-01T00:00:00Z"),
				IssuedBefore: timePtr("2009-01-01T00:00:00Z"),
			},
			expected: []string{"a", "b"},
		},
		{
			name:     "exclude empty invoices keeps payments",
			filter:   LedgerItemFilter{ExcludeEmptyInvoices: true},
			expected: []string{"a", "b"},
		},
		{
			name: "arbitrary condition composes",
			filter: LedgerItemFilter{
				SentOrReceivedBy: "1",
				Where: func(li *LedgerItem) bool {
					return li.Currency == "GBP"
				},
			},
			expected: []string{"a", "b", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, applyFilter(tt.filter, items), tt.expected)
		})
	}
}

func timePtr(s string) *time.Time {
	t := mustTime(s)
	return &t
}

func TestLedgerItemFilter_SafeOrderColumn(t *testing.T) {
	tests := []struct {
		orderBy  string
		expected string
	}{
		{orderBy: "issue_date", expected: "issue_date"},
		{orderBy: "due_date", expected: "due_date"},
		{orderBy: "", expected: "id"},
		{orderBy: "this_column_does_not_exist", expected: "id"},
		{orderBy: "id; DROP TABLE ledger_items", expected: "id"},
	}

	for _, tt := range tests {
		f := LedgerItemFilter{OrderBy: tt.orderBy}
		if got := f.SafeOrderColumn(); got != tt.expected {
			t.Errorf("OrderBy %q: expected %q, got %q", tt.orderBy, tt.expected, got)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusPending, StatusClosed, StatusCleared, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("paid").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
