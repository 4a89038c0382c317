package repo

import (
	"context"
	"fmt"
	"time"

	"gateway/internal/domain"
	"gateway/internal/infra"
	"gateway/internal/sqlinline"
)

// SettlementArchivePG persists settled heads and their ledgers to PostgreSQL.
// Every row it writes describes terminal state, so inserts are idempotent
// (on conflict do nothing) and re-archiving a head after a partial failure
// is safe.
type SettlementArchivePG struct {
	sql infra.SQLExecutor
}

// NewSettlementArchive creates a new settlement archive over the given executor.
func NewSettlementArchive(sql infra.SQLExecutor) *SettlementArchivePG {
	return &SettlementArchivePG{sql: sql}
}

// SaveSettlement writes the settled head followed by its donations.
func (r *SettlementArchivePG) SaveSettlement(ctx context.Context, head *domain.Head, donations []domain.Donation) error {
	if head == nil {
		return fmt.Errorf("settlement archive: head is required")
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertSettledHead,
		head.ID, head.CampaignID, head.TotalAmount, head.DonationCount,
		head.SettlementRef, head.CreatedAt, head.ClosedAt, head.SettledAt)
	if err != nil {
		return fmt.Errorf("settlement archive: insert head: %w", err)
	}
	for _, d := range donations {
		_, err := r.sql.Exec(ctx, sqlinline.QInsertArchivedDonation,
			d.ID, d.HeadID, d.CampaignID, d.DonorAddress, d.DonorName, d.DonorCountry,
			d.Amount, d.CreatedAt)
		if err != nil {
			return fmt.Errorf("settlement archive: insert donation %s: %w", d.ID, err)
		}
	}
	return nil
}

// ListSettlements returns settled epochs for a campaign, newest first.
func (r *SettlementArchivePG) ListSettlements(ctx context.Context, campaignID string, limit int) ([]domain.Head, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListSettledHeads, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("settlement archive: list: %w", err)
	}
	defer rows.Close()

	var items []domain.Head
	for rows.Next() {
		var head domain.Head
		var closedAt, settledAt *time.Time
		if err := rows.Scan(&head.ID, &head.CampaignID, &head.TotalAmount, &head.DonationCount,
			&head.SettlementRef, &head.CreatedAt, &closedAt, &settledAt); err != nil {
			return nil, fmt.Errorf("settlement archive: scan: %w", err)
		}
		head.Status = domain.HeadSettled
		head.ClosedAt = closedAt
		head.SettledAt = settledAt
		items = append(items, head)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("settlement archive: rows: %w", err)
	}
	return items, nil
}

var _ domain.SettlementArchive = (*SettlementArchivePG)(nil)
