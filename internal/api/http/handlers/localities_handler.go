package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/eandradeg/alltelapp/internal/service"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

// LocalitiesHandler serves the territorial reference lists.
type LocalitiesHandler struct {
	service *service.LocalityService
}

// NewLocalitiesHandler constructs handler.
func NewLocalitiesHandler(localityService *service.LocalityService) *LocalitiesHandler {
	return &LocalitiesHandler{service: localityService}
}

// Provinces GET /localities/provinces.
func (h *LocalitiesHandler) Provinces(c *fiber.Ctx) error {
	provinces, err := h.service.Provinces(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provinces})
}

// Cantons GET /localities/provinces/:provincia/cantons. The parameter is
// percent-decoded so province names with spaces or accents resolve.
func (h *LocalitiesHandler) Cantons(c *fiber.Ctx) error {
	provincia, err := url.PathUnescape(c.Params("provincia"))
	if err != nil || provincia == "" {
		return apperrors.NewValidationError("provincia required", nil)
	}
	cantons, err := h.service.Cantons(c.Context(), provincia)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cantons})
}
