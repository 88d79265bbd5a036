package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/events"
	"github.com/eandradeg/alltelapp/internal/repository"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

// IncidentService coordinates the incident ledger workflows.
type IncidentService struct {
	incidents  repository.IncidentRepository
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	location   *time.Location
	now        func() time.Time
}

// IncidentDependencies bundles collaborators for the incident service.
type IncidentDependencies struct {
	IncidentRepo repository.IncidentRepository
	ClientRepo   repository.ClientRepository
	Dispatcher   events.Dispatcher
	// Location is the reference timezone registration and solution
	// timestamps are expressed in.
	Location *time.Location
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// RegisterIncidentInput describes incident intake payload.
type RegisterIncidentInput struct {
	ClientID    string
	TipoReclamo string
	Canal       domain.ClaimChannel
	Descripcion string
}

// IncidentLookup describes ledger search parameters exposed to callers.
type IncidentLookup struct {
	SearchTerm  string
	PendingOnly bool
	Mes         string
	Category    domain.ClaimCategory
	TipoReclamo string
	Limit       int
	Offset      int
}

// NewIncidentService constructs the service.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		clients:    deps.ClientRepo,
		dispatcher: deps.Dispatcher,
		location:   loc,
		now:        now,
	}
}

// RegisterIncident opens a new incident for a client, snapshotting the
// client's contact data and assigning the next per-reseller item number.
func (s *IncidentService) RegisterIncident(ctx context.Context, permisionario string, input RegisterIncidentInput) (*domain.Incident, error) {
	if strings.TrimSpace(permisionario) == "" {
		return nil, apperrors.NewValidationError("permisionario required", nil)
	}
	if !domain.ValidClaimType(input.TipoReclamo) {
		return nil, apperrors.NewValidationError("tipo_reclamo must be selected from the claim catalog", map[string]any{"tipo_reclamo": input.TipoReclamo})
	}
	if !domain.ValidChannel(input.Canal) {
		return nil, apperrors.NewValidationError("canal_reclamo invalid", map[string]any{"canal_reclamo": input.Canal})
	}

	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}
	if client.Permisionario != permisionario {
		return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
	}

	registro := s.now().In(s.location)
	incident := &domain.Incident{
		Permisionario:         permisionario,
		Provincia:             client.Provincia,
		Mes:                   domain.SpanishMonth(registro.Month()),
		FechaHoraRegistro:     registro,
		NombreReclamante:      client.DisplayName(),
		TelefonoContacto:      client.Telefono,
		TipoConexion:          domain.ConnectionTypeDefault,
		TipoReclamo:           input.TipoReclamo,
		CanalReclamo:          input.Canal,
		Estado:                domain.IncidentStatusPending,
		DescripcionIncidencia: strings.TrimSpace(input.Descripcion),
	}

	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:          events.EventIncidentRegistered,
		Permisionario: permisionario,
		Payload: events.IncidentRegisteredPayload{
			Item:        incident.Item,
			TipoReclamo: incident.TipoReclamo,
			Canal:       incident.CanalReclamo,
			Reclamante:  incident.NombreReclamante,
			Provincia:   incident.Provincia,
		},
	})
	return incident, nil
}

// FindIncidents lists a reseller's incidents matching the lookup.
func (s *IncidentService) FindIncidents(ctx context.Context, permisionario string, lookup IncidentLookup) ([]domain.Incident, error) {
	if strings.TrimSpace(permisionario) == "" {
		return nil, apperrors.NewValidationError("permisionario required", nil)
	}
	incidents, err := s.incidents.ListWithFilter(ctx, repository.IncidentFilter{
		Permisionario: permisionario,
		SearchTerm:    lookup.SearchTerm,
		PendingOnly:   lookup.PendingOnly,
		Mes:           lookup.Mes,
		Category:      lookup.Category,
		TipoReclamo:   lookup.TipoReclamo,
		Limit:         lookup.Limit,
		Offset:        lookup.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return incidents, nil
}

// GetPendingByItem fetches one Pending incident by its item number.
// Finalized incidents are not reachable through this lookup.
func (s *IncidentService) GetPendingByItem(ctx context.Context, permisionario string, item int) (*domain.Incident, error) {
	incident, err := s.incidents.GetByItem(ctx, permisionario, item)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("incident", map[string]any{"item": item})
		}
		return nil, apperrors.MapError(err)
	}
	if incident.Estado != domain.IncidentStatusPending {
		return nil, apperrors.NewNotFound("pending incident", map[string]any{"item": item})
	}
	return incident, nil
}

// SaveSolution records or replaces the solution text without changing
// state. Saving the same text twice is a no-op beyond the write itself.
func (s *IncidentService) SaveSolution(ctx context.Context, permisionario string, item int, solucion string) (*domain.Incident, error) {
	incident, err := s.GetPendingByItem(ctx, permisionario, item)
	if err != nil {
		return nil, err
	}
	incident.DescripcionSolucion = solucion
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:          events.EventSolutionSaved,
		Permisionario: permisionario,
		Payload:       events.SolutionSavedPayload{Item: item},
	})
	return incident, nil
}

// Finalize transitions a Pending incident to Finalizado, stamping the
// solution time and the elapsed resolution hours. The transition is
// one-way; there is no path back to Pendiente.
func (s *IncidentService) Finalize(ctx context.Context, permisionario string, item int, solucion string) (*domain.Incident, error) {
	incident, err := s.GetPendingByItem(ctx, permisionario, item)
	if err != nil {
		return nil, err
	}
	if solucion != "" {
		incident.DescripcionSolucion = solucion
	}

	solvedAt := s.now().In(s.location)
	registro := s.inReferenceZone(incident.FechaHoraRegistro)
	hours := domain.ResolutionHours(registro, solvedAt)

	incident.Estado = domain.IncidentStatusFinalized
	incident.FechaHoraSolucion = &solvedAt
	incident.TiempoResolucionHoras = &hours

	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:          events.EventIncidentFinalized,
		Permisionario: permisionario,
		Payload: events.IncidentFinalizedPayload{
			Item:            incident.Item,
			ResolutionHours: hours,
		},
	})
	return incident, nil
}

// inReferenceZone reinterprets a stored wall-clock timestamp in the
// reference timezone. Timestamps come back from the naive DB column in
// UTC; their wall-clock fields are what the zone-less original wrote.
func (s *IncidentService) inReferenceZone(t time.Time) time.Time {
	if t.Location() == s.location {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), s.location)
}

func (s *IncidentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
