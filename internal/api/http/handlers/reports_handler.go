package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eandradeg/alltelapp/internal/api/dto"
	"github.com/eandradeg/alltelapp/internal/auth"
	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/service"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves the regulator reporting endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Rows GET /reports/incidents.
func (h *ReportsHandler) Rows(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	rows, err := h.service.BuildReport(c.Context(), principal.Permisionario, parseReportQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.ReportRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, reportRowResponse(row))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	summary, err := h.service.Summary(c.Context(), principal.Permisionario, parseReportQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponse(summary)})
}

// ExportExcel GET /reports/incidents/export.
func (h *ReportsHandler) ExportExcel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator account required")
	}
	payload, filename, err := h.service.ExportExcel(c.Context(), principal.Permisionario, parseReportQuery(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}

func parseReportQuery(c *fiber.Ctx) service.ReportFilter {
	return service.ReportFilter{
		Category: domain.ClaimCategory(c.Query("categoria")),
		Mes:      c.Query("mes"),
	}
}

func reportRowResponse(row service.ReportRow) dto.ReportRowResponse {
	return dto.ReportRowResponse{
		Item:                  row.Item,
		Provincia:             row.Provincia,
		Mes:                   row.Mes,
		FechaHoraRegistro:     row.FechaHoraRegistro,
		NombreReclamante:      row.NombreReclamante,
		TelefonoContacto:      row.TelefonoContacto,
		TipoConexion:          row.TipoConexion,
		TipoReclamo:           row.TipoReclamo,
		CanalReclamo:          row.CanalReclamo,
		Estado:                row.Estado,
		DescripcionIncidencia: row.DescripcionIncidencia,
		DescripcionSolucion:   row.DescripcionSolucion,
		FechaHoraSolucion:     row.FechaHoraSolucion,
		TiempoResolucion:      row.TiempoResolucion,
	}
}

func summaryResponse(summary *service.ReportSummary) dto.ReportSummaryResponse {
	byType := make([]dto.TypeAggregateResponse, 0, len(summary.PorTipoReclamo))
	for _, agg := range summary.PorTipoReclamo {
		byType = append(byType, dto.TypeAggregateResponse{
			TipoReclamo: agg.TipoReclamo,
			Categoria:   agg.Categoria,
			Total:       agg.Total,
			Finalizadas: agg.Finalizadas,
		})
	}
	byProvince := make([]dto.ProvinceAggregateResponse, 0, len(summary.PorProvincia))
	for _, agg := range summary.PorProvincia {
		byProvince = append(byProvince, dto.ProvinceAggregateResponse{
			Provincia: agg.Provincia,
			Total:     agg.Total,
		})
	}
	return dto.ReportSummaryResponse{
		Total:          summary.Total,
		Pendientes:     summary.Pendientes,
		Finalizadas:    summary.Finalizadas,
		PromedioHoras:  summary.PromedioHoras,
		MaximoHoras:    summary.MaximoHoras,
		MinimoHoras:    summary.MinimoHoras,
		PorTipoReclamo: byType,
		PorProvincia:   byProvince,
	}
}
