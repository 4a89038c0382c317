package domain

import "context"

// SettlementArchive persists settled epochs so the audit trail survives
// process restarts. Live heads stay in process memory; only the terminal
// state crosses this boundary.
type SettlementArchive interface {
	SaveSettlement(ctx context.Context, head *Head, donations []Donation) error
	ListSettlements(ctx context.Context, campaignID string, limit int) ([]Head, error)
}
