package service

import (
	"context"
	"time"

	"hope4ever-backend/internal/repository"

	"go.uber.org/zap"
)

// WorkerService keeps campaign funding totals in step with completed
// donations.
type WorkerService struct {
	campaigns repository.CampaignStore
	events    EventPublisher
	interval  time.Duration
	logger    *zap.Logger
}

func NewWorkerService(repos *repository.Repositories, events EventPublisher, interval time.Duration, logger *zap.Logger) *WorkerService {
	return &WorkerService{
		campaigns: repos.Campaigns,
		events:    events,
		interval:  interval,
		logger:    logger,
	}
}

// Start runs the funding sync every interval until ctx is cancelled.
// A non-positive interval disables the worker.
func (w *WorkerService) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("funding worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("funding worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("funding worker stopped")
			return
		case <-ticker.C:
			if err := w.SyncFunding(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("funding sync failed", zap.Error(err))
			}
		}
	}
}

// SyncFunding recomputes raised amounts and announces newly funded campaigns
func (w *WorkerService) SyncFunding(ctx context.Context) error {
	// 1. Recompute totals and flip funded campaigns in one transaction
	result, err := w.campaigns.SyncFunding(ctx)
	if err != nil {
		return err
	}

	// 2. Announce funded campaigns
	for _, id := range result.FundedIDs {
		emit(ctx, w.events, w.logger, EventCampaignFunded, id, "", nil)
	}

	if result.Synced > 0 || len(result.FundedIDs) > 0 {
		w.logger.Info("funding synced",
			zap.Int64("campaigns_updated", result.Synced),
			zap.Int("campaigns_funded", len(result.FundedIDs)),
		)
	}
	return nil
}
