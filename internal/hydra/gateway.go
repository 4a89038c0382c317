package hydra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gateway/internal/domain"
)

// DonationRequest carries one donation attempt into the gateway. The
// idempotency key is optional; when supplied, a retry with the same key
// returns the originally recorded donation instead of a second one.
type DonationRequest struct {
	CampaignID     string
	DonorAddress   string
	DonorName      string
	DonorCountry   string
	Amount         int64
	IdempotencyKey string
}

// Gateway is the orchestration facade over the head registry and per-epoch
// ledgers. All lifecycle transitions for one campaign are serialized by that
// campaign's channel lock; reads take the lock in read mode and copy out, so
// they never observe a half-applied donation.
type Gateway struct {
	registry *Registry
	archive  domain.SettlementArchive
	logger   zerolog.Logger
}

// NewGateway constructs a gateway. archive may be nil, in which case settled
// epochs live only in process memory.
func NewGateway(archive domain.SettlementArchive, logger zerolog.Logger) *Gateway {
	return &Gateway{
		registry: NewRegistry(),
		archive:  archive,
		logger:   logger,
	}
}

// InitializeHead opens the campaign's channel, reusing the current head when
// it is still open and minting a fresh epoch when none exists or the previous
// one settled. A closed-but-unsettled head must be settled first and is
// reported as domain.ErrHeadClosed.
func (g *Gateway) InitializeHead(ctx context.Context, campaignID string) (*domain.Head, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, fmt.Errorf("%w: campaign id required", domain.ErrValidation)
	}

	ch := g.registry.channelFor(campaignID)
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.head != nil && ch.head.Status == domain.HeadClosed {
		return nil, domain.ErrHeadClosed
	}
	head := ch.ensureOpenHead(campaignID, time.Now().UTC())
	out := *head
	return &out, nil
}

// ProcessDonation validates and records one donation against the campaign's
// current head. The head is created lazily, and a settled head is implicitly
// replaced by a fresh epoch. The returned donation's amount is reflected in
// the head counters before this call returns.
func (g *Gateway) ProcessDonation(ctx context.Context, req DonationRequest) (*domain.Donation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	ch := g.registry.channelFor(req.CampaignID)
	ch.mu.Lock()

	if req.IdempotencyKey != "" {
		if prior, ok := ch.seen[req.IdempotencyKey]; ok {
			out := *prior
			ch.mu.Unlock()
			return &out, nil
		}
	}

	if ch.head != nil && ch.head.Status == domain.HeadClosed {
		ch.mu.Unlock()
		return nil, domain.ErrHeadNotOpen
	}
	head := ch.ensureOpenHead(req.CampaignID, time.Now().UTC())

	donation := &domain.Donation{
		ID:           newDonationID(),
		CampaignID:   req.CampaignID,
		HeadID:       head.ID,
		DonorAddress: req.DonorAddress,
		DonorName:    req.DonorName,
		DonorCountry: req.DonorCountry,
		Amount:       req.Amount,
		Status:       domain.DonationConfirmed,
		CreatedAt:    time.Now().UTC(),
	}

	// Append and counter update commit together under the channel lock.
	ch.ledger.Append(donation)
	head.TotalAmount += donation.Amount
	head.DonationCount++
	if req.IdempotencyKey != "" {
		ch.seen[req.IdempotencyKey] = donation
	}

	out := *donation
	ch.mu.Unlock()

	g.logger.Debug().
		Str("campaign_id", req.CampaignID).
		Str("head_id", out.HeadID).
		Int64("amount", out.Amount).
		Msg("donation recorded")
	return &out, nil
}

// GetHeadStatus returns a snapshot of the campaign's current head, including
// a settled one that has not been superseded yet.
func (g *Gateway) GetHeadStatus(ctx context.Context, campaignID string) (*domain.Head, error) {
	ch, ok := g.registry.lookup(campaignID)
	if !ok {
		return nil, domain.ErrHeadNotFound
	}
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	if ch.head == nil {
		return nil, domain.ErrHeadNotFound
	}
	out := *ch.head
	return &out, nil
}

// ListDonations returns the current epoch's donations in insertion order.
// The result is a copy; callers cannot mutate ledger state through it.
func (g *Gateway) ListDonations(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	ch, ok := g.registry.lookup(campaignID)
	if !ok {
		return []domain.Donation{}, nil
	}
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	if ch.ledger == nil {
		return []domain.Donation{}, nil
	}
	return ch.ledger.Snapshot(), nil
}

// CloseHead stops the current head from accepting donations. Closing an
// already closed or settled head is a no-op that reports the current state,
// so duplicate close signals are harmless.
func (g *Gateway) CloseHead(ctx context.Context, campaignID string) (*domain.Head, error) {
	ch, ok := g.registry.lookup(campaignID)
	if !ok {
		return nil, domain.ErrHeadNotFound
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.head == nil {
		return nil, domain.ErrHeadNotFound
	}
	if ch.head.Status == domain.HeadOpen {
		now := time.Now().UTC()
		ch.head.Status = domain.HeadClosed
		ch.head.ClosedAt = &now
		g.logger.Info().
			Str("campaign_id", campaignID).
			Str("head_id", ch.head.ID).
			Msg("head closed")
	}
	out := *ch.head
	return &out, nil
}

// SettleHead collapses the current head into its terminal state: counters
// freeze, the settlement reference is minted, and every ledger entry flips
// to settled, all inside one critical section. An open head is implicitly
// closed first. Settling twice fails with domain.ErrAlreadySettled so a
// single head can never mint two references.
func (g *Gateway) SettleHead(ctx context.Context, campaignID string) (string, error) {
	ch, ok := g.registry.lookup(campaignID)
	if !ok {
		return "", domain.ErrHeadNotFound
	}
	ch.mu.Lock()
	if ch.head == nil {
		ch.mu.Unlock()
		return "", domain.ErrHeadNotFound
	}
	if ch.head.Status == domain.HeadSettled {
		ch.mu.Unlock()
		return "", domain.ErrAlreadySettled
	}

	now := time.Now().UTC()
	if ch.head.Status == domain.HeadOpen {
		ch.head.Status = domain.HeadClosed
		ch.head.ClosedAt = &now
	}
	ch.head.Status = domain.HeadSettled
	ch.head.SettledAt = &now
	ch.head.SettlementRef = newSettlementRef()
	ch.ledger.SettleAll()

	headCopy := *ch.head
	donations := ch.ledger.Snapshot()
	ch.mu.Unlock()

	g.logger.Info().
		Str("campaign_id", campaignID).
		Str("head_id", headCopy.ID).
		Str("settlement_ref", headCopy.SettlementRef).
		Int64("total_amount", headCopy.TotalAmount).
		Int64("donation_count", headCopy.DonationCount).
		Msg("head settled")

	// The in-memory commit above is authoritative; an archive failure is an
	// audit gap, not a settlement rollback.
	if g.archive != nil {
		if err := g.archive.SaveSettlement(ctx, &headCopy, donations); err != nil {
			g.logger.Error().Err(err).
				Str("head_id", headCopy.ID).
				Msg("failed to archive settled head")
		}
	}

	return headCopy.SettlementRef, nil
}

// RealTimeStats projects the current epoch's aggregate for polling callers.
// It is side-effect free, O(1), and returns zeros when the campaign has no
// head yet.
func (g *Gateway) RealTimeStats(ctx context.Context, campaignID string) (domain.Stats, error) {
	ch, ok := g.registry.lookup(campaignID)
	if !ok {
		return domain.Stats{}, nil
	}
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	if ch.head == nil {
		return domain.Stats{}, nil
	}
	stats := domain.Stats{
		TotalAmount:   ch.head.TotalAmount,
		DonationCount: ch.head.DonationCount,
	}
	if last := ch.ledger.Last(); last != nil {
		at := last.CreatedAt
		stats.LastDonationAt = &at
	}
	return stats, nil
}

func (r DonationRequest) validate() error {
	if strings.TrimSpace(r.CampaignID) == "" {
		return fmt.Errorf("%w: campaign id required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.DonorAddress) == "" {
		return fmt.Errorf("%w: donor address required", domain.ErrValidation)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	return nil
}
