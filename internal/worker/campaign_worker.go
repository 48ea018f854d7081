package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/events"
	"github.com/la-capital/crm-service/internal/ratelimit"
	"github.com/la-capital/crm-service/internal/repository"
)

// Notifier delivers a single campaign message to one client.
type Notifier interface {
	Send(ctx context.Context, client *domain.ClientAccount, campaign *domain.Campaign) error
}

// Job is one campaign dispatch request with its resolved audience.
type Job struct {
	Campaign *domain.Campaign
	Clients  []*domain.ClientAccount
}

// ErrQueueFull is returned when the dispatch buffer cannot take more work.
var ErrQueueFull = errors.New("campaign queue full")

// CampaignWorker consumes dispatch jobs and sends one message per client,
// throttled by the shared rate limiter. Send failures skip the client and
// continue; the campaign still completes with the remaining audience.
type CampaignWorker struct {
	jobs       chan Job
	campaigns  repository.CampaignRepository
	limiter    *ratelimit.Limiter
	notifier   Notifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCampaignWorker builds the worker with a bounded job buffer.
func NewCampaignWorker(buffer int, campaigns repository.CampaignRepository, limiter *ratelimit.Limiter, notifier Notifier, dispatcher events.Dispatcher, logger *zap.Logger) *CampaignWorker {
	if buffer <= 0 {
		buffer = 64
	}
	return &CampaignWorker{
		jobs:       make(chan Job, buffer),
		campaigns:  campaigns,
		limiter:    limiter,
		notifier:   notifier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Enqueue hands a job to the worker without blocking the request.
func (w *CampaignWorker) Enqueue(job Job) error {
	select {
	case w.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start runs the consume loop until the context is canceled.
func (w *CampaignWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-w.jobs:
				w.process(ctx, job)
			}
		}
	}()
}

func (w *CampaignWorker) process(ctx context.Context, job Job) {
	sent := 0
	failed := 0

	for _, client := range job.Clients {
		if err := w.limiter.Wait(ctx, "campaign_send"); err != nil {
			w.logger.Warn("campaign dispatch interrupted",
				zap.String("campaign_id", job.Campaign.ID), zap.Error(err))
			break
		}
		if err := w.notifier.Send(ctx, client, job.Campaign); err != nil {
			failed++
			w.logger.Warn("campaign message failed",
				zap.String("campaign_id", job.Campaign.ID),
				zap.String("client_id", client.ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	if err := w.campaigns.SetStatus(ctx, job.Campaign.ID, domain.CampaignStatusEnviada, sent); err != nil {
		w.logger.Error("failed to finalize campaign status",
			zap.String("campaign_id", job.Campaign.ID), zap.Error(err))
	}

	if w.dispatcher != nil {
		_ = w.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventCampaignSent,
			Timestamp: time.Now(),
			Payload: events.CampaignSentPayload{
				CampaignID:  job.Campaign.ID,
				TotalEnvios: sent,
				Fallidos:    failed,
			},
		})
	}

	w.logger.Info("campaign dispatched",
		zap.String("campaign_id", job.Campaign.ID),
		zap.Int("sent", sent),
		zap.Int("failed", failed))
}
