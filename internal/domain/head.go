package domain

import "time"

// HeadStatus is the lifecycle state of an aggregation channel epoch.
// Transitions are linear: open -> closed -> settled, no back-edges.
type HeadStatus string

const (
	HeadOpen    HeadStatus = "open"
	HeadClosed  HeadStatus = "closed"
	HeadSettled HeadStatus = "settled"
)

// Head is one off-chain aggregation channel epoch for a campaign. Counters
// are maintained transactionally alongside ledger appends, never derived by
// re-scanning the ledger.
type Head struct {
	ID            string     `json:"id"`
	CampaignID    string     `json:"campaign_id"`
	Status        HeadStatus `json:"status"`
	TotalAmount   int64      `json:"total_amount"`
	DonationCount int64      `json:"donation_count"`
	CreatedAt     time.Time  `json:"created_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
	SettlementRef string     `json:"settlement_ref,omitempty"`
}
