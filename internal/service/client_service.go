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

// ClientService manages a reseller's subscriber directory.
type ClientService struct {
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ClientDependencies bundles collaborators for the client service.
type ClientDependencies struct {
	ClientRepo repository.ClientRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// ClientInput carries subscriber fields for create and update.
type ClientInput struct {
	Nombres            string
	Apellidos          string
	Cliente            string
	CedulaRUC          string
	ServicioContratado domain.ContractedService
	PlanContratado     string
	Provincia          string
	Ciudad             string
	Direccion          string
	Telefono           string
	Correo             string
	FechaInscripcion   time.Time
	Estado             domain.ClientStatus
	IP                 string
}

// NewClientService constructs the service.
func NewClientService(deps ClientDependencies) *ClientService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ClientService{clients: deps.ClientRepo, dispatcher: deps.Dispatcher, now: now}
}

// CreateClient registers a subscriber and assigns its per-reseller codigo.
func (s *ClientService) CreateClient(ctx context.Context, permisionario string, input ClientInput) (*domain.Client, error) {
	if strings.TrimSpace(permisionario) == "" {
		return nil, apperrors.NewValidationError("permisionario required", nil)
	}
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	client := &domain.Client{
		Permisionario:      permisionario,
		Nombres:            strings.TrimSpace(input.Nombres),
		Apellidos:          strings.TrimSpace(input.Apellidos),
		Cliente:            strings.TrimSpace(input.Cliente),
		CedulaRUC:          strings.TrimSpace(input.CedulaRUC),
		ServicioContratado: input.ServicioContratado,
		PlanContratado:     input.PlanContratado,
		Provincia:          input.Provincia,
		Ciudad:             input.Ciudad,
		Direccion:          input.Direccion,
		Telefono:           input.Telefono,
		Correo:             strings.ToLower(strings.TrimSpace(input.Correo)),
		FechaInscripcion:   input.FechaInscripcion,
		Estado:             input.Estado,
		IP:                 input.IP,
	}
	if client.Estado == "" {
		client.Estado = domain.ClientStatusActive
	}
	if client.Cliente == "" {
		client.Cliente = client.DisplayName()
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:          events.EventClientCreated,
		Permisionario: permisionario,
		Payload: events.ClientCreatedPayload{
			ClientID: client.ID,
			Codigo:   client.Codigo,
			Cliente:  client.Cliente,
		},
	})
	return client, nil
}

// UpdateClient replaces a subscriber's editable fields. Permisionario and
// codigo never change.
func (s *ClientService) UpdateClient(ctx context.Context, permisionario, id string, input ClientInput) (*domain.Client, error) {
	client, err := s.GetClient(ctx, permisionario, id)
	if err != nil {
		return nil, err
	}
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	client.Nombres = strings.TrimSpace(input.Nombres)
	client.Apellidos = strings.TrimSpace(input.Apellidos)
	client.Cliente = strings.TrimSpace(input.Cliente)
	client.CedulaRUC = strings.TrimSpace(input.CedulaRUC)
	client.ServicioContratado = input.ServicioContratado
	client.PlanContratado = input.PlanContratado
	client.Provincia = input.Provincia
	client.Ciudad = input.Ciudad
	client.Direccion = input.Direccion
	client.Telefono = input.Telefono
	client.Correo = strings.ToLower(strings.TrimSpace(input.Correo))
	client.FechaInscripcion = input.FechaInscripcion
	if input.Estado != "" {
		client.Estado = input.Estado
	}
	client.IP = input.IP
	if client.Cliente == "" {
		client.Cliente = client.DisplayName()
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// ToggleClientStatus flips ACTIVO/INACTIVO and reports the transition.
func (s *ClientService) ToggleClientStatus(ctx context.Context, permisionario, id string) (*domain.Client, error) {
	client, err := s.GetClient(ctx, permisionario, id)
	if err != nil {
		return nil, err
	}
	old := client.Estado
	client.Estado = domain.ToggledStatus(old)
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:          events.EventClientStatusChanged,
		Permisionario: permisionario,
		Payload: events.ClientStatusChangedPayload{
			ClientID:  client.ID,
			OldStatus: old,
			NewStatus: client.Estado,
		},
	})
	return client, nil
}

// DeleteClient removes a subscriber from the directory.
func (s *ClientService) DeleteClient(ctx context.Context, permisionario, id string) error {
	if _, err := s.GetClient(ctx, permisionario, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetClient fetches one subscriber, scoped to the reseller.
func (s *ClientService) GetClient(ctx context.Context, permisionario, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if client.Permisionario != permisionario {
		return nil, apperrors.NewNotFound("client", map[string]any{"client_id": id})
	}
	return client, nil
}

// ListClients returns the reseller's full directory ordered by codigo.
func (s *ClientService) ListClients(ctx context.Context, permisionario string) ([]domain.Client, error) {
	clients, err := s.clients.ListByPermisionario(ctx, permisionario)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

// SearchClients matches name, cedula/RUC or email within the directory.
// A blank term behaves like ListClients.
func (s *ClientService) SearchClients(ctx context.Context, permisionario, term string) ([]domain.Client, error) {
	if strings.TrimSpace(term) == "" {
		return s.ListClients(ctx, permisionario)
	}
	clients, err := s.clients.Search(ctx, permisionario, term)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

func validateClientInput(input ClientInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Nombres) == "" && strings.TrimSpace(input.Cliente) == "" {
		details["nombres"] = "nombres or cliente is required"
	}
	if strings.TrimSpace(input.CedulaRUC) == "" {
		details["cedula_ruc"] = "required"
	}
	if !domain.ValidService(input.ServicioContratado) {
		details["servicio_contratado"] = "must be INTERNET, TV or INTERNET+TV"
	}
	if input.Estado != "" && !domain.ValidClientStatus(input.Estado) {
		details["estado"] = "must be ACTIVO or INACTIVO"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid client payload", details)
	}
	return nil
}

func (s *ClientService) publish(ctx context.Context, event events.Event) {
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
