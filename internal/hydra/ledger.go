package hydra

import (
	"gateway/internal/domain"
)

// Ledger is the append-only donation sequence for a single epoch. It is not
// safe for concurrent use on its own; callers hold the owning channel lock.
type Ledger struct {
	entries []*domain.Donation
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a donation at the end of the sequence.
func (l *Ledger) Append(d *domain.Donation) {
	l.entries = append(l.entries, d)
}

// Len returns the number of recorded donations.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Last returns the most recently appended donation, or nil when empty.
func (l *Ledger) Last() *domain.Donation {
	if len(l.entries) == 0 {
		return nil
	}
	return l.entries[len(l.entries)-1]
}

// Snapshot returns a copy of every entry in insertion order. Mutating the
// result does not affect the ledger.
func (l *Ledger) Snapshot() []domain.Donation {
	out := make([]domain.Donation, 0, len(l.entries))
	for _, d := range l.entries {
		out = append(out, *d)
	}
	return out
}

// SettleAll flips every entry to the settled status. Called exactly once, as
// part of the settlement critical section of the owning head.
func (l *Ledger) SettleAll() {
	for _, d := range l.entries {
		d.Status = domain.DonationSettled
	}
}
