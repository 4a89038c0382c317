package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gateway/internal/domain"
	"gateway/internal/sqlinline"
)

type execCall struct {
	query string
	args  []any
}

type fakeSQL struct {
	execs    []execCall
	execErr  error
	rows     []settledRow
	queryErr error
}

type settledRow struct {
	id            string
	campaignID    string
	totalAmount   int64
	donationCount int64
	settlementRef string
	createdAt     time.Time
	closedAt      *time.Time
	settledAt     *time.Time
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.execs = append(f.execs, execCall{query: query, args: args})
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if query != sqlinline.QListSettledHeads {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("unexpected args count: %d", len(args))
	}
	return &settledRowsIterator{rows: f.rows}, nil
}

type settledRowsIterator struct {
	rows []settledRow
	idx  int
}

func (it *settledRowsIterator) Next() bool {
	if it.idx >= len(it.rows) {
		return false
	}
	it.idx++
	return true
}

func (it *settledRowsIterator) Scan(dest ...any) error {
	if it.idx == 0 || it.idx > len(it.rows) {
		return pgx.ErrNoRows
	}
	row := it.rows[it.idx-1]
	if len(dest) != 8 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	*dest[0].(*string) = row.id
	*dest[1].(*string) = row.campaignID
	*dest[2].(*int64) = row.totalAmount
	*dest[3].(*int64) = row.donationCount
	*dest[4].(*string) = row.settlementRef
	*dest[5].(*time.Time) = row.createdAt
	*dest[6].(**time.Time) = row.closedAt
	*dest[7].(**time.Time) = row.settledAt
	return nil
}

func (it *settledRowsIterator) Err() error                                   { return nil }
func (it *settledRowsIterator) Close()                                       {}
func (it *settledRowsIterator) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (it *settledRowsIterator) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (it *settledRowsIterator) Values() ([]any, error)                       { return nil, nil }
func (it *settledRowsIterator) RawValues() [][]byte                          { return nil }
func (it *settledRowsIterator) Conn() *pgx.Conn                              { return nil }

func TestSaveSettlementWritesHeadAndDonations(t *testing.T) {
	sql := &fakeSQL{}
	archive := NewSettlementArchive(sql)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	head := &domain.Head{
		ID:            "hydra-head-1",
		CampaignID:    "camp1",
		Status:        domain.HeadSettled,
		TotalAmount:   300,
		DonationCount: 2,
		CreatedAt:     now.Add(-time.Hour),
		SettledAt:     &now,
		SettlementRef: "settlement-1",
	}
	donations := []domain.Donation{
		{ID: "d1", HeadID: head.ID, CampaignID: "camp1", DonorAddress: "addr1", Amount: 100},
		{ID: "d2", HeadID: head.ID, CampaignID: "camp1", DonorAddress: "addr2", Amount: 200},
	}

	if err := archive.SaveSettlement(context.Background(), head, donations); err != nil {
		t.Fatalf("SaveSettlement returned error: %v", err)
	}

	if len(sql.execs) != 3 {
		t.Fatalf("expected 3 statements (1 head + 2 donations), got %d", len(sql.execs))
	}
	if sql.execs[0].query != sqlinline.QInsertSettledHead {
		t.Fatal("first statement must insert the head")
	}
	if sql.execs[0].args[0] != "hydra-head-1" || sql.execs[0].args[4] != "settlement-1" {
		t.Fatalf("head insert args mismatch: %v", sql.execs[0].args)
	}
	for i, call := range sql.execs[1:] {
		if call.query != sqlinline.QInsertArchivedDonation {
			t.Fatalf("statement %d must insert a donation", i+1)
		}
		if call.args[0] != donations[i].ID {
			t.Fatalf("donation insert %d id mismatch: %v", i, call.args[0])
		}
	}
}

func TestSaveSettlementPropagatesErrors(t *testing.T) {
	sql := &fakeSQL{execErr: errors.New("connection refused")}
	archive := NewSettlementArchive(sql)

	err := archive.SaveSettlement(context.Background(), &domain.Head{ID: "h"}, nil)
	if err == nil {
		t.Fatal("expected an error from the failing executor")
	}
}

func TestSaveSettlementRequiresHead(t *testing.T) {
	archive := NewSettlementArchive(&fakeSQL{})
	if err := archive.SaveSettlement(context.Background(), nil, nil); err == nil {
		t.Fatal("expected an error for a nil head")
	}
}

func TestListSettlementsScansRows(t *testing.T) {
	settled := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	sql := &fakeSQL{rows: []settledRow{
		{
			id:            "hydra-head-1",
			campaignID:    "camp1",
			totalAmount:   500,
			donationCount: 3,
			settlementRef: "settlement-1",
			createdAt:     settled.Add(-2 * time.Hour),
			settledAt:     &settled,
		},
	}}
	archive := NewSettlementArchive(sql)

	items, err := archive.ListSettlements(context.Background(), "camp1", 10)
	if err != nil {
		t.Fatalf("ListSettlements returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(items))
	}
	got := items[0]
	if got.ID != "hydra-head-1" || got.SettlementRef != "settlement-1" {
		t.Fatalf("settlement mismatch: %+v", got)
	}
	if got.Status != domain.HeadSettled {
		t.Fatalf("archived head status: got %q, want %q", got.Status, domain.HeadSettled)
	}
	if got.SettledAt == nil || !got.SettledAt.Equal(settled) {
		t.Fatalf("settledAt mismatch: %v", got.SettledAt)
	}
}

func TestListSettlementsQueryError(t *testing.T) {
	sql := &fakeSQL{queryErr: errors.New("boom")}
	archive := NewSettlementArchive(sql)
	if _, err := archive.ListSettlements(context.Background(), "camp1", 10); err == nil {
		t.Fatal("expected an error from the failing query")
	}
}
