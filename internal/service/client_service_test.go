package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/events"
)

// codigoClientRepo extends the in-memory client repo with per-reseller
// codigo allocation, mirroring what Create does against Postgres.
type codigoClientRepo struct {
	*memClientRepo
	mu       sync.Mutex
	counters map[string]int
}

func newCodigoClientRepo() *codigoClientRepo {
	return &codigoClientRepo{memClientRepo: newMemClientRepo(), counters: make(map[string]int)}
}

func (r *codigoClientRepo) Create(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	r.counters[client.Permisionario]++
	client.Codigo = fmt.Sprintf("%04d", r.counters[client.Permisionario])
	r.mu.Unlock()
	return r.memClientRepo.Create(ctx, client)
}

func validClientInput() ClientInput {
	return ClientInput{
		Nombres:            "María",
		Apellidos:          "Quispe",
		CedulaRUC:          "1712345678",
		ServicioContratado: domain.ServiceInternet,
		PlanContratado:     "HOGAR 50",
		Provincia:          "Pichincha",
		Ciudad:             "Quito",
		Telefono:           "0987654321",
		Correo:             "Maria.Quispe@Example.com",
		FechaInscripcion:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateClientAssignsCodigoAndDefaults(t *testing.T) {
	t.Parallel()

	repo := newCodigoClientRepo()
	svc := NewClientService(ClientDependencies{ClientRepo: repo})
	ctx := context.Background()

	first, err := svc.CreateClient(ctx, "ALLTEL", validClientInput())
	require.NoError(t, err)
	require.Equal(t, "0001", first.Codigo)
	require.Equal(t, domain.ClientStatusActive, first.Estado)
	require.Equal(t, "María Quispe", first.Cliente)
	require.Equal(t, "maria.quispe@example.com", first.Correo)

	second, err := svc.CreateClient(ctx, "ALLTEL", validClientInput())
	require.NoError(t, err)
	require.Equal(t, "0002", second.Codigo)

	// Another reseller's codes start over.
	other, err := svc.CreateClient(ctx, "OTRAEMPRESA", validClientInput())
	require.NoError(t, err)
	require.Equal(t, "0001", other.Codigo)
}

func TestCreateClientValidation(t *testing.T) {
	t.Parallel()

	svc := NewClientService(ClientDependencies{ClientRepo: newCodigoClientRepo()})
	ctx := context.Background()

	input := validClientInput()
	input.Nombres = ""
	input.Cliente = ""
	input.CedulaRUC = ""
	input.ServicioContratado = "TELEFONIA"

	_, err := svc.CreateClient(ctx, "ALLTEL", input)
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.CreateClient(ctx, "", validClientInput())
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestGetClientScopedToReseller(t *testing.T) {
	t.Parallel()

	repo := newCodigoClientRepo()
	svc := NewClientService(ClientDependencies{ClientRepo: repo})
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, "ALLTEL", validClientInput())
	require.NoError(t, err)

	found, err := svc.GetClient(ctx, "ALLTEL", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = svc.GetClient(ctx, "OTRAEMPRESA", created.ID)
	requireDomainCode(t, err, "NOT_FOUND")

	_, err = svc.GetClient(ctx, "ALLTEL", "cli-missing")
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestUpdateClientKeepsCodigo(t *testing.T) {
	t.Parallel()

	repo := newCodigoClientRepo()
	svc := NewClientService(ClientDependencies{ClientRepo: repo})
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, "ALLTEL", validClientInput())
	require.NoError(t, err)

	input := validClientInput()
	input.PlanContratado = "HOGAR 100"
	input.Cliente = "Comercial Quispe"

	updated, err := svc.UpdateClient(ctx, "ALLTEL", created.ID, input)
	require.NoError(t, err)
	require.Equal(t, created.Codigo, updated.Codigo)
	require.Equal(t, "HOGAR 100", updated.PlanContratado)
	require.Equal(t, "Comercial Quispe", updated.Cliente)
}

func TestToggleClientStatusPublishesTransition(t *testing.T) {
	t.Parallel()

	dispatcher := events.NewInMemoryDispatcher()
	var received []events.Event
	var mu sync.Mutex
	dispatcher.Subscribe(events.EventClientStatusChanged, func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		return nil
	})

	repo := newCodigoClientRepo()
	svc := NewClientService(ClientDependencies{ClientRepo: repo, Dispatcher: dispatcher})
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, "ALLTEL", validClientInput())
	require.NoError(t, err)

	toggled, err := svc.ToggleClientStatus(ctx, "ALLTEL", created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ClientStatusInactive, toggled.Estado)

	toggled, err = svc.ToggleClientStatus(ctx, "ALLTEL", created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ClientStatusActive, toggled.Estado)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	payload, ok := received[0].Payload.(events.ClientStatusChangedPayload)
	require.True(t, ok)
	require.Equal(t, domain.ClientStatusActive, payload.OldStatus)
	require.Equal(t, domain.ClientStatusInactive, payload.NewStatus)
}

func TestDeleteClient(t *testing.T) {
	t.Parallel()

	repo := newCodigoClientRepo()
	svc := NewClientService(ClientDependencies{ClientRepo: repo})
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, "ALLTEL", validClientInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClient(ctx, "ALLTEL", created.ID))

	_, err = svc.GetClient(ctx, "ALLTEL", created.ID)
	requireDomainCode(t, err, "NOT_FOUND")

	err = svc.DeleteClient(ctx, "ALLTEL", created.ID)
	requireDomainCode(t, err, "NOT_FOUND")
}
