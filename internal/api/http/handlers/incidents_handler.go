package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/eandradeg/alltelapp/internal/api/dto"
	"github.com/eandradeg/alltelapp/internal/auth"
	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/service"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

// IncidentsHandler manages the incident ledger endpoints.
type IncidentsHandler struct {
	service *service.IncidentService
}

// NewIncidentsHandler constructs handler.
func NewIncidentsHandler(incidentService *service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{service: incidentService}
}

// RegisterIncident POST /incidents.
func (h *IncidentsHandler) RegisterIncident(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	var req dto.RegisterIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" {
		return apperrors.NewValidationError("client_id required", nil)
	}

	incident, err := h.service.RegisterIncident(c.Context(), principal.Permisionario, service.RegisterIncidentInput{
		ClientID:    req.ClientID,
		TipoReclamo: req.TipoReclamo,
		Canal:       req.Canal,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": incidentResponse(incident)})
}

// ListIncidents GET /incidents.
func (h *IncidentsHandler) ListIncidents(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	incidents, err := h.service.FindIncidents(c.Context(), principal.Permisionario, parseIncidentQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.IncidentResponse, 0, len(incidents))
	for i := range incidents {
		items = append(items, incidentResponse(&incidents[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetPendingIncident GET /incidents/pending/:item.
func (h *IncidentsHandler) GetPendingIncident(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	item, err := parseItem(c)
	if err != nil {
		return err
	}
	incident, err := h.service.GetPendingByItem(c.Context(), principal.Permisionario, item)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incidentResponse(incident)})
}

// SaveSolution PUT /incidents/pending/:item/solution.
func (h *IncidentsHandler) SaveSolution(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	item, err := parseItem(c)
	if err != nil {
		return err
	}
	var req dto.SolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	incident, err := h.service.SaveSolution(c.Context(), principal.Permisionario, item, req.Descripcion)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incidentResponse(incident)})
}

// FinalizeIncident POST /incidents/pending/:item/finalize.
func (h *IncidentsHandler) FinalizeIncident(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	item, err := parseItem(c)
	if err != nil {
		return err
	}
	var req dto.SolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	incident, err := h.service.Finalize(c.Context(), principal.Permisionario, item, req.Descripcion)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incidentResponse(incident)})
}

// ClaimCatalog GET /incidents/claim-catalog. The optional "categoria"
// query narrows the catalog to one category.
func (h *IncidentsHandler) ClaimCatalog(c *fiber.Ctx) error {
	categoria := domain.ClaimCategory(c.Query("categoria"))
	return c.JSON(fiber.Map{"data": dto.ClaimCatalogResponse{
		Categoria:    categoria,
		TiposReclamo: domain.ClaimTypesFor(categoria),
	}})
}

func parseIncidentQuery(c *fiber.Ctx) service.IncidentLookup {
	lookup := service.IncidentLookup{
		SearchTerm:  c.Query("q"),
		PendingOnly: c.Query("estado") == string(domain.IncidentStatusPending),
		Mes:         c.Query("mes"),
		Category:    domain.ClaimCategory(c.Query("categoria")),
		TipoReclamo: c.Query("tipo_reclamo"),
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	lookup.Offset = (page - 1) * pageSize
	lookup.Limit = pageSize
	return lookup
}

func parseItem(c *fiber.Ctx) (int, error) {
	item, err := strconv.Atoi(c.Params("item"))
	if err != nil || item <= 0 {
		return 0, apperrors.NewValidationError("item must be a positive integer", nil)
	}
	return item, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func incidentResponse(incident *domain.Incident) dto.IncidentResponse {
	return dto.IncidentResponse{
		ID:                    incident.ID,
		Item:                  incident.Item,
		Provincia:             incident.Provincia,
		Mes:                   incident.Mes,
		FechaHoraRegistro:     incident.FechaHoraRegistro,
		NombreReclamante:      incident.NombreReclamante,
		TelefonoContacto:      incident.TelefonoContacto,
		TipoConexion:          incident.TipoConexion,
		TipoReclamo:           incident.TipoReclamo,
		Categoria:             domain.CategoryOf(incident.TipoReclamo),
		CanalReclamo:          incident.CanalReclamo,
		Estado:                incident.Estado,
		DescripcionIncidencia: incident.DescripcionIncidencia,
		DescripcionSolucion:   incident.DescripcionSolucion,
		FechaHoraSolucion:     incident.FechaHoraSolucion,
		TiempoResolucionHoras: incident.TiempoResolucionHoras,
		CreatedAt:             incident.CreatedAt,
		UpdatedAt:             incident.UpdatedAt,
	}
}
