package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/ratelimit"
	"github.com/la-capital/crm-service/internal/worker"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// memCampaignRepo is safe for concurrent use: the dispatch worker updates
// status from its own goroutine.
type memCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{campaigns: map[string]*domain.Campaign{}}
}

func (m *memCampaignRepo) Create(ctx context.Context, campaign *domain.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	campaign.ID = fmt.Sprintf("campaign-%d", len(m.campaigns)+1)
	copied := *campaign
	m.campaigns[campaign.ID] = &copied
	return nil
}

func (m *memCampaignRepo) Update(ctx context.Context, campaign *domain.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns[campaign.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *campaign
	m.campaigns[campaign.ID] = &copied
	return nil
}

func (m *memCampaignRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.campaigns, id)
	return nil
}

func (m *memCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.campaigns[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memCampaignRepo) List(ctx context.Context) ([]*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Campaign, 0, len(m.campaigns))
	for _, c := range m.campaigns {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memCampaignRepo) SetStatus(ctx context.Context, id string, status domain.CampaignStatus, totalEnvios int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Estado = status
	c.TotalEnvios = totalEnvios
	return nil
}

// recordingNotifier captures every delivered message.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *recordingNotifier) Send(ctx context.Context, client *domain.ClientAccount, campaign *domain.Campaign) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, client.ID)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type campaignFixture struct {
	svc       *CampaignService
	campaigns *memCampaignRepo
	clients   *memClientRepo
	notifier  *recordingNotifier
	worker    *worker.CampaignWorker
}

func newCampaignFixture(t *testing.T, buffer int) *campaignFixture {
	t.Helper()

	campaignRepo := newMemCampaignRepo()
	clientRepo := &memClientRepo{accounts: map[string]*domain.ClientAccount{}}
	notifier := &recordingNotifier{}

	// nil redis client: the limiter admits everything, so tests run
	// without a broker.
	limiter := ratelimit.NewPerMinute(nil, 0)
	campaignWorker := worker.NewCampaignWorker(buffer, campaignRepo, limiter, notifier, nil, zap.NewNop())

	svc := NewCampaignService(campaignRepo, clientRepo, campaignWorker, nil)
	return &campaignFixture{
		svc:       svc,
		campaigns: campaignRepo,
		clients:   clientRepo,
		notifier:  notifier,
		worker:    campaignWorker,
	}
}

func (f *campaignFixture) seedClients(t *testing.T, n, puntos int) {
	t.Helper()
	for i := 0; i < n; i++ {
		client := &domain.ClientAccount{
			Nombres: fmt.Sprintf("Cliente %d", i+1),
			Email:   fmt.Sprintf("c%d@x.com", i+1),
			Puntos:  puntos,
		}
		require.NoError(t, f.clients.Create(context.Background(), client))
	}
}

func TestCampaignCreate_StartsAsDraft(t *testing.T) {
	f := newCampaignFixture(t, 0)

	campaign, err := f.svc.Create(context.Background(), "Promo tacos", "2x1 en tacos al pastor", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusBorrador, campaign.Estado)
	assert.NotEmpty(t, campaign.ID)
}

func TestCampaignUpdate_SentCampaignImmutable(t *testing.T) {
	f := newCampaignFixture(t, 0)

	campaign, err := f.svc.Create(context.Background(), "Promo", "Mensaje", 0)
	require.NoError(t, err)
	require.NoError(t, f.campaigns.SetStatus(context.Background(), campaign.ID, domain.CampaignStatusEnviada, 10))

	_, err = f.svc.Update(context.Background(), campaign.ID, "Otro nombre", "Otro mensaje", 0)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestCampaignSend_NoAudience(t *testing.T) {
	f := newCampaignFixture(t, 0)

	campaign, err := f.svc.Create(context.Background(), "Promo VIP", "Solo para clientes frecuentes", 500)
	require.NoError(t, err)

	_, _, err = f.svc.Send(context.Background(), campaign.ID)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)

	stored, err := f.campaigns.GetByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusBorrador, stored.Estado)
}

func TestCampaignSend_FiltersByMinPoints(t *testing.T) {
	f := newCampaignFixture(t, 0)
	f.seedClients(t, 3, 100)
	f.seedClients(t, 2, 600)

	campaign, err := f.svc.Create(context.Background(), "Promo VIP", "Gracias por su lealtad", 500)
	require.NoError(t, err)

	_, audience, err := f.svc.Send(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, audience, "solo los clientes con puntos suficientes reciben la campaña")
}

func TestCampaignSend_WorkerDeliversAndFinalizes(t *testing.T) {
	f := newCampaignFixture(t, 0)
	f.seedClients(t, 4, 100)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.worker.Start(ctx)

	campaign, err := f.svc.Create(context.Background(), "Promo general", "Visítenos este fin de semana", 0)
	require.NoError(t, err)

	sent, audience, err := f.svc.Send(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusEnviando, sent.Estado)
	assert.Equal(t, 4, audience)

	require.Eventually(t, func() bool {
		stored, err := f.campaigns.GetByID(context.Background(), campaign.ID)
		return err == nil && stored.Estado == domain.CampaignStatusEnviada
	}, 3*time.Second, 10*time.Millisecond, "el worker debe finalizar la campaña")

	stored, err := f.campaigns.GetByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.TotalEnvios)
	assert.Equal(t, 4, f.notifier.count())
}

func TestCampaignSend_AlreadySendingRejected(t *testing.T) {
	f := newCampaignFixture(t, 0)
	f.seedClients(t, 1, 0)

	campaign, err := f.svc.Create(context.Background(), "Promo", "Mensaje", 0)
	require.NoError(t, err)
	require.NoError(t, f.campaigns.SetStatus(context.Background(), campaign.ID, domain.CampaignStatusEnviando, 0))

	_, _, err = f.svc.Send(context.Background(), campaign.ID)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestCampaignSend_QueueFullRollsBack(t *testing.T) {
	// Buffer of one, worker never started: the first job fills the queue.
	f := newCampaignFixture(t, 1)
	f.seedClients(t, 1, 0)

	require.NoError(t, f.worker.Enqueue(worker.Job{Campaign: &domain.Campaign{ID: "relleno"}}))

	campaign, err := f.svc.Create(context.Background(), "Promo", "Mensaje", 0)
	require.NoError(t, err)

	_, _, err = f.svc.Send(context.Background(), campaign.ID)
	require.Error(t, err)

	stored, err := f.campaigns.GetByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusBorrador, stored.Estado,
		"si la cola está llena el estado vuelve a borrador")
}
