package events

import (
	"time"

	"github.com/eandradeg/alltelapp/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentRegistered  EventType = "incident_registered"
	EventIncidentFinalized   EventType = "incident_finalized"
	EventSolutionSaved       EventType = "incident_solution_saved"
	EventClientCreated       EventType = "client_created"
	EventClientStatusChanged EventType = "client_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	Permisionario string      `json:"permisionario"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// IncidentRegisteredPayload payload.
type IncidentRegisteredPayload struct {
	Item        int                 `json:"item"`
	TipoReclamo string              `json:"tipo_reclamo"`
	Canal       domain.ClaimChannel `json:"canal_reclamo"`
	Reclamante  string              `json:"nombre_reclamante"`
	Provincia   string              `json:"provincia"`
}

// IncidentFinalizedPayload payload.
type IncidentFinalizedPayload struct {
	Item            int     `json:"item"`
	ResolutionHours float64 `json:"tiempo_resolucion_horas"`
	SolutionSnippet string  `json:"solution_snippet,omitempty"`
}

// SolutionSavedPayload payload.
type SolutionSavedPayload struct {
	Item int `json:"item"`
}

// ClientCreatedPayload payload.
type ClientCreatedPayload struct {
	ClientID string `json:"client_id"`
	Codigo   string `json:"codigo"`
	Cliente  string `json:"cliente"`
}

// ClientStatusChangedPayload payload.
type ClientStatusChangedPayload struct {
	ClientID  string              `json:"client_id"`
	OldStatus domain.ClientStatus `json:"old_status"`
	NewStatus domain.ClientStatus `json:"new_status"`
}
