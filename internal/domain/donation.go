package domain

import "time"

// DonationStatus tracks a donation from off-channel confirmation to the
// settlement of its owning head. Confirmation is instantaneous in this model.
type DonationStatus string

const (
	DonationConfirmed DonationStatus = "confirmed"
	DonationSettled   DonationStatus = "settled"
)

// Donation represents a single supporter contribution recorded under a head.
// Amount is in the smallest currency unit.
type Donation struct {
	ID           string         `json:"id"`
	CampaignID   string         `json:"campaign_id"`
	HeadID       string         `json:"head_id"`
	DonorAddress string         `json:"donor_address"`
	DonorName    string         `json:"donor_name,omitempty"`
	DonorCountry string         `json:"donor_country,omitempty"`
	Amount       int64          `json:"amount"`
	Status       DonationStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}
