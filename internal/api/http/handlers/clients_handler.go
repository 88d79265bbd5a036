package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/eandradeg/alltelapp/internal/api/dto"
	"github.com/eandradeg/alltelapp/internal/auth"
	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/service"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

const inscriptionDateLayout = "2006-01-02"

// ClientsHandler manages the subscriber directory endpoints.
type ClientsHandler struct {
	service *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{service: clientService}
}

// CreateClient POST /clients.
func (h *ClientsHandler) CreateClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	input, err := parseClientRequest(c)
	if err != nil {
		return err
	}
	client, err := h.service.CreateClient(c.Context(), principal.Permisionario, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clientResponse(client)})
}

// ListClients GET /clients. The optional "q" query switches to search.
func (h *ClientsHandler) ListClients(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	clients, err := h.service.SearchClients(c.Context(), principal.Permisionario, c.Query("q"))
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetClient GET /clients/:id.
func (h *ClientsHandler) GetClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	client, err := h.service.GetClient(c.Context(), principal.Permisionario, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// UpdateClient PUT /clients/:id.
func (h *ClientsHandler) UpdateClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	input, err := parseClientRequest(c)
	if err != nil {
		return err
	}
	client, err := h.service.UpdateClient(c.Context(), principal.Permisionario, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// ToggleClientStatus POST /clients/:id/toggle-status.
func (h *ClientsHandler) ToggleClientStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	client, err := h.service.ToggleClientStatus(c.Context(), principal.Permisionario, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// DeleteClient DELETE /clients/:id.
func (h *ClientsHandler) DeleteClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	if err := h.service.DeleteClient(c.Context(), principal.Permisionario, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseClientRequest(c *fiber.Ctx) (service.ClientInput, error) {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ClientInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	inscripcion := time.Now()
	if req.FechaInscripcion != "" {
		parsed, err := time.Parse(inscriptionDateLayout, req.FechaInscripcion)
		if err != nil {
			return service.ClientInput{}, apperrors.NewValidationError("fecha_de_inscripcion must be YYYY-MM-DD", nil)
		}
		inscripcion = parsed
	}
	return service.ClientInput{
		Nombres:            req.Nombres,
		Apellidos:          req.Apellidos,
		Cliente:            req.Cliente,
		CedulaRUC:          req.CedulaRUC,
		ServicioContratado: req.ServicioContratado,
		PlanContratado:     req.PlanContratado,
		Provincia:          req.Provincia,
		Ciudad:             req.Ciudad,
		Direccion:          req.Direccion,
		Telefono:           req.Telefono,
		Correo:             req.Correo,
		FechaInscripcion:   inscripcion,
		Estado:             req.Estado,
		IP:                 req.IP,
	}, nil
}

func clientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                 client.ID,
		Codigo:             client.Codigo,
		Nombres:            client.Nombres,
		Apellidos:          client.Apellidos,
		Cliente:            client.Cliente,
		CedulaRUC:          client.CedulaRUC,
		ServicioContratado: client.ServicioContratado,
		PlanContratado:     client.PlanContratado,
		Provincia:          client.Provincia,
		Ciudad:             client.Ciudad,
		Direccion:          client.Direccion,
		Telefono:           client.Telefono,
		Correo:             client.Correo,
		FechaInscripcion:   client.FechaInscripcion.Format(inscriptionDateLayout),
		Estado:             client.Estado,
		IP:                 client.IP,
		CreatedAt:          client.CreatedAt,
		UpdatedAt:          client.UpdatedAt,
	}
}
