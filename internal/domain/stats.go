package domain

import "time"

// Stats is the polling-friendly projection of a campaign's current epoch.
// A campaign without a head projects to the zero value.
type Stats struct {
	TotalAmount    int64      `json:"total_amount"`
	DonationCount  int64      `json:"donation_count"`
	LastDonationAt *time.Time `json:"last_donation_at,omitempty"`
}
