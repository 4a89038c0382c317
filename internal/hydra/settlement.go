package hydra

import "github.com/google/uuid"

// Identifier prefixes mirror the wire-visible naming of the original
// gateway; the UUID body makes them collision resistant under concurrency.

func newHeadID() string {
	return "hydra-head-" + uuid.NewString()
}

func newDonationID() string {
	return "hydra-donation-" + uuid.NewString()
}

// newSettlementRef mints the reference standing in for the on-chain
// transaction that would confirm the aggregate. It is a placeholder for a
// real commitment, but it is genuinely unique: a head settles once, and its
// reference never changes afterwards.
func newSettlementRef() string {
	return "settlement-" + uuid.NewString()
}
