package hydra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"gateway/internal/domain"
)

// Sweeper settles heads that have sat in the closed state longer than the
// configured grace period, so a close signal that never received its settle
// call does not park donations forever.
type Sweeper struct {
	gateway   *Gateway
	logger    zerolog.Logger
	interval  time.Duration
	grace     time.Duration
	scheduler gocron.Scheduler
}

// NewSweeper builds a sweeper running every interval. Heads closed for more
// than grace are settled.
func NewSweeper(g *Gateway, logger zerolog.Logger, interval, grace time.Duration) (*Sweeper, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sweeper: interval must be positive")
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("sweeper: create scheduler: %w", err)
	}
	s := &Sweeper{
		gateway:   g,
		logger:    logger,
		interval:  interval,
		grace:     grace,
		scheduler: scheduler,
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.Sweep),
	); err != nil {
		return nil, fmt.Errorf("sweeper: register job: %w", err)
	}
	return s, nil
}

// Start begins the background schedule.
func (s *Sweeper) Start() {
	s.scheduler.Start()
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("grace", s.grace).
		Msg("settlement sweeper started")
}

// Stop shuts the schedule down and waits for a running sweep to finish.
func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}

// Sweep runs one pass over every known campaign. It is exported so operators
// can trigger a pass out of schedule.
func (s *Sweeper) Sweep() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.grace)

	for _, campaignID := range s.gateway.registry.campaignIDs() {
		head, err := s.gateway.GetHeadStatus(ctx, campaignID)
		if err != nil {
			continue
		}
		if head.Status != domain.HeadClosed || head.ClosedAt == nil || head.ClosedAt.After(cutoff) {
			continue
		}

		ref, err := s.gateway.SettleHead(ctx, campaignID)
		if err != nil {
			// A settle that raced this sweep already did the work.
			if errors.Is(err, domain.ErrAlreadySettled) {
				continue
			}
			s.logger.Error().Err(err).
				Str("campaign_id", campaignID).
				Str("head_id", head.ID).
				Msg("sweep settlement failed")
			continue
		}
		s.logger.Info().
			Str("campaign_id", campaignID).
			Str("head_id", head.ID).
			Str("settlement_ref", ref).
			Msg("closed head swept to settlement")
	}
}
