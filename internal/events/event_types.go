package events

import (
	"time"

	"github.com/la-capital/crm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCampaignCreated  EventType = "campaign_created"
	EventCampaignSent     EventType = "campaign_sent"
	EventClientRegistered EventType = "client_registered"
	EventTwoFactorEnabled EventType = "two_factor_enabled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CampaignCreatedPayload payload.
type CampaignCreatedPayload struct {
	CampaignID string `json:"campaign_id"`
	Nombre     string `json:"nombre"`
	MinPuntos  int    `json:"min_puntos"`
}

// CampaignSentPayload payload.
type CampaignSentPayload struct {
	CampaignID  string `json:"campaign_id"`
	TotalEnvios int    `json:"total_envios"`
	Fallidos    int    `json:"fallidos"`
}

// ClientRegisteredPayload payload.
type ClientRegisteredPayload struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email"`
}

// TwoFactorEnabledPayload payload.
type TwoFactorEnabledPayload struct {
	StaffID string          `json:"staff_id"`
	Role    domain.RoleName `json:"role,omitempty"`
}
