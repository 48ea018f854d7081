package service

import (
	"context"
	"time"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/events"
	"github.com/la-capital/crm-service/internal/repository"
	"github.com/la-capital/crm-service/internal/worker"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// CampaignService manages marketing campaigns and hands dispatch work to
// the background worker.
type CampaignService struct {
	campaigns  repository.CampaignRepository
	clients    repository.ClientRepository
	queue      *worker.CampaignWorker
	dispatcher events.Dispatcher
}

// NewCampaignService builds the service.
func NewCampaignService(campaigns repository.CampaignRepository, clients repository.ClientRepository, queue *worker.CampaignWorker, dispatcher events.Dispatcher) *CampaignService {
	return &CampaignService{campaigns: campaigns, clients: clients, queue: queue, dispatcher: dispatcher}
}

// List returns all campaigns, newest first.
func (s *CampaignService) List(ctx context.Context) ([]*domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

// Get loads one campaign.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

// Create stores a new draft campaign.
func (s *CampaignService) Create(ctx context.Context, nombre, mensaje string, minPuntos int) (*domain.Campaign, error) {
	campaign := &domain.Campaign{
		Nombre:    nombre,
		Mensaje:   mensaje,
		MinPuntos: minPuntos,
		Estado:    domain.CampaignStatusBorrador,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventCampaignCreated,
			Timestamp: time.Now(),
			Payload: events.CampaignCreatedPayload{
				CampaignID: campaign.ID,
				Nombre:     campaign.Nombre,
				MinPuntos:  campaign.MinPuntos,
			},
		})
	}
	return campaign, nil
}

// Update edits a draft. Campaigns already dispatched are immutable.
func (s *CampaignService) Update(ctx context.Context, id, nombre, mensaje string, minPuntos int) (*domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.Estado != domain.CampaignStatusBorrador {
		return nil, apperrors.NewConflict("La campaña ya fue enviada y no puede editarse.", nil)
	}

	campaign.Nombre = nombre
	campaign.Mensaje = mensaje
	campaign.MinPuntos = minPuntos
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete removes a campaign.
func (s *CampaignService) Delete(ctx context.Context, id string) error {
	return s.campaigns.Delete(ctx, id)
}

// Send resolves the audience and enqueues the dispatch job. The request
// returns immediately; the worker drives the rate-limited send.
func (s *CampaignService) Send(ctx context.Context, id string) (*domain.Campaign, int, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if campaign.Estado == domain.CampaignStatusEnviando {
		return nil, 0, apperrors.NewConflict("La campaña ya se está enviando.", nil)
	}

	var audience []*domain.ClientAccount
	if campaign.MinPuntos > 0 {
		audience, err = s.clients.ListByMinPoints(ctx, campaign.MinPuntos)
	} else {
		audience, err = s.clients.List(ctx)
	}
	if err != nil {
		return nil, 0, err
	}
	if len(audience) == 0 {
		return nil, 0, apperrors.NewValidationError("La campaña no tiene destinatarios.", nil)
	}

	if err := s.campaigns.SetStatus(ctx, campaign.ID, domain.CampaignStatusEnviando, campaign.TotalEnvios); err != nil {
		return nil, 0, err
	}
	campaign.Estado = domain.CampaignStatusEnviando

	if err := s.queue.Enqueue(worker.Job{Campaign: campaign, Clients: audience}); err != nil {
		// Roll the status back so the campaign can be retried by the operator.
		_ = s.campaigns.SetStatus(ctx, campaign.ID, domain.CampaignStatusBorrador, campaign.TotalEnvios)
		return nil, 0, apperrors.NewConflict("El sistema de envío está saturado, intente más tarde.", nil)
	}

	return campaign, len(audience), nil
}
