package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/events"
)

// NotificationService logs domain events and acts as the campaign message
// sender. Actual WhatsApp delivery happens client-side through deep links;
// the server side records the dispatch.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCampaignCreated, n.handleCampaignCreated)
	n.dispatcher.Subscribe(events.EventCampaignSent, n.handleCampaignSent)
	n.dispatcher.Subscribe(events.EventClientRegistered, n.handleClientRegistered)
	n.dispatcher.Subscribe(events.EventTwoFactorEnabled, n.handleTwoFactorEnabled)
}

// Send implements worker.Notifier for one client of a campaign.
func (n *NotificationService) Send(ctx context.Context, client *domain.ClientAccount, campaign *domain.Campaign) error {
	n.logger.Info("campaign message",
		zap.String("campaign_id", campaign.ID),
		zap.String("client_id", client.ID),
		zap.String("telefono", client.Telefono))
	return nil
}

func (n *NotificationService) handleCampaignCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("CampaignCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleCampaignSent(ctx context.Context, event events.Event) error {
	n.logger.Info("CampaignSent", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleClientRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("ClientRegistered", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTwoFactorEnabled(ctx context.Context, event events.Event) error {
	n.logger.Info("TwoFactorEnabled", zap.Any("payload", event.Payload))
	return nil
}
