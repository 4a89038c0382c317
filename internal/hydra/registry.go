package hydra

import (
	"sync"
	"time"

	"gateway/internal/domain"
)

// epoch pairs a retired head with the ledger it accumulated. Settled epochs
// are kept for audit; they are never deleted in process memory.
type epoch struct {
	head   *domain.Head
	ledger *Ledger
}

// channel holds the live state for one campaign: the current head, its
// ledger, the idempotency index, and the lock that serializes every state
// transition for that campaign. Independent campaigns never contend.
type channel struct {
	mu      sync.RWMutex
	head    *domain.Head
	ledger  *Ledger
	seen    map[string]*domain.Donation
	history []epoch
}

// ensureOpenHead returns the current head if it accepts donations, minting a
// fresh epoch when the campaign has no head yet or the previous one settled.
// A closed-but-unsettled head is surfaced as-is; the caller decides how to
// report it. Caller holds ch.mu for writing.
func (ch *channel) ensureOpenHead(campaignID string, now time.Time) *domain.Head {
	if ch.head == nil || ch.head.Status == domain.HeadSettled {
		if ch.head != nil {
			ch.history = append(ch.history, epoch{head: ch.head, ledger: ch.ledger})
		}
		ch.head = &domain.Head{
			ID:         newHeadID(),
			CampaignID: campaignID,
			Status:     domain.HeadOpen,
			CreatedAt:  now,
		}
		ch.ledger = NewLedger()
	}
	return ch.head
}

// Registry maps a campaign to its current channel. It enforces the
// single-open-head invariant: head creation happens under the channel lock,
// so two concurrent callers can never both mint one.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*channel
}

func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*channel)}
}

// channelFor returns the channel container for a campaign, creating it on
// first use. The container itself carries no head until a head is minted
// under its own lock.
func (r *Registry) channelFor(campaignID string) *channel {
	r.mu.RLock()
	ch, ok := r.channels[campaignID]
	r.mu.RUnlock()
	if ok {
		return ch
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.channels[campaignID]; ok {
		return ch
	}
	ch = &channel{seen: make(map[string]*domain.Donation)}
	r.channels[campaignID] = ch
	return ch
}

// lookup returns the channel for a campaign without creating one.
func (r *Registry) lookup(campaignID string) (*channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[campaignID]
	return ch, ok
}

// campaignIDs returns a snapshot of every registered campaign.
func (r *Registry) campaignIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.channels))
	for id := range r.channels {
		ids = append(ids, id)
	}
	return ids
}
