package domain

import "time"

// CampaignStatus tracks a marketing campaign through its lifecycle.
type CampaignStatus string

const (
	CampaignStatusBorrador CampaignStatus = "BORRADOR"
	CampaignStatusEnviando CampaignStatus = "ENVIANDO"
	CampaignStatusEnviada  CampaignStatus = "ENVIADA"
)

// Campaign is a WhatsApp marketing campaign targeted at loyalty clients.
// MinPuntos narrows the audience; zero means every client.
type Campaign struct {
	ID          string
	Nombre      string
	Mensaje     string
	MinPuntos   int
	Estado      CampaignStatus
	TotalEnvios int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
