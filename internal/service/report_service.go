package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/eandradeg/alltelapp/internal/domain"
	"github.com/eandradeg/alltelapp/internal/repository"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

const reportTimeLayout = "02/01/2006 15:04"

// reportHeaders carries the regulator's column titles, in column order.
var reportHeaders = []string{
	"ITEM",
	"PROVINCIA",
	"MES",
	"FECHA Y HORA DE REGISTRO",
	"NOMBRE DEL RECLAMANTE",
	"TELÉFONO DE CONTACTO",
	"TIPO DE CONEXIÓN",
	"TIPO DE RECLAMO",
	"CANAL DE RECLAMO",
	"ESTADO",
	"DESCRIPCIÓN DE LA INCIDENCIA",
	"DESCRIPCIÓN DE LA SOLUCIÓN",
	"FECHA Y HORA DE SOLUCIÓN",
	"TIEMPO DE RESOLUCIÓN (HORAS)",
}

// ReportService aggregates the incident ledger for regulator reporting.
type ReportService struct {
	incidents repository.IncidentRepository
	logger    *zap.Logger
	now       func() time.Time
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	IncidentRepo repository.IncidentRepository
	Logger       *zap.Logger
	Now          func() time.Time
}

// ReportFilter narrows the reporting window.
type ReportFilter struct {
	Category domain.ClaimCategory
	Mes      string
}

// ReportRow is one ledger line rendered with the regulator's formats.
type ReportRow struct {
	Item                  int
	Provincia             string
	Mes                   string
	FechaHoraRegistro     string
	NombreReclamante      string
	TelefonoContacto      string
	TipoConexion          string
	TipoReclamo           string
	CanalReclamo          string
	Estado                string
	DescripcionIncidencia string
	DescripcionSolucion   string
	FechaHoraSolucion     string
	TiempoResolucion      string
}

// TypeAggregate counts incidents of one claim type.
type TypeAggregate struct {
	TipoReclamo string
	Categoria   domain.ClaimCategory
	Total       int
	Finalizadas int
}

// ProvinceAggregate counts incidents registered in one province.
type ProvinceAggregate struct {
	Provincia string
	Total     int
}

// ReportSummary holds the headline numbers for a reporting window.
type ReportSummary struct {
	Total          int
	Pendientes     int
	Finalizadas    int
	PromedioHoras  float64
	MaximoHoras    float64
	MinimoHoras    float64
	PorTipoReclamo []TypeAggregate
	PorProvincia   []ProvinceAggregate
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ReportService{incidents: deps.IncidentRepo, logger: logger, now: now}
}

// BuildReport renders the reseller's ledger as regulator-formatted rows.
func (s *ReportService) BuildReport(ctx context.Context, permisionario string, filter ReportFilter) ([]ReportRow, error) {
	incidents, err := s.fetch(ctx, permisionario, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]ReportRow, 0, len(incidents))
	for i := range incidents {
		rows = append(rows, toReportRow(&incidents[i]))
	}
	return rows, nil
}

// Summary computes headline statistics over the reporting window.
// Resolution-hour aggregates consider finalized incidents only.
func (s *ReportService) Summary(ctx context.Context, permisionario string, filter ReportFilter) (*ReportSummary, error) {
	incidents, err := s.fetch(ctx, permisionario, filter)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{Total: len(incidents)}
	byType := map[string]*TypeAggregate{}
	byProvince := map[string]int{}

	var sum float64
	for i := range incidents {
		inc := &incidents[i]
		byProvince[inc.Provincia]++

		agg, ok := byType[inc.TipoReclamo]
		if !ok {
			agg = &TypeAggregate{TipoReclamo: inc.TipoReclamo, Categoria: domain.CategoryOf(inc.TipoReclamo)}
			byType[inc.TipoReclamo] = agg
		}
		agg.Total++

		if inc.Estado != domain.IncidentStatusFinalized {
			summary.Pendientes++
			continue
		}
		summary.Finalizadas++
		agg.Finalizadas++
		if inc.TiempoResolucionHoras == nil {
			continue
		}
		hours := *inc.TiempoResolucionHoras
		sum += hours
		if summary.Finalizadas == 1 {
			summary.MaximoHoras = hours
			summary.MinimoHoras = hours
			continue
		}
		if hours > summary.MaximoHoras {
			summary.MaximoHoras = hours
		}
		if hours < summary.MinimoHoras {
			summary.MinimoHoras = hours
		}
	}
	if summary.Finalizadas > 0 {
		summary.PromedioHoras = roundHours(sum / float64(summary.Finalizadas))
	}

	for _, agg := range byType {
		summary.PorTipoReclamo = append(summary.PorTipoReclamo, *agg)
	}
	sort.Slice(summary.PorTipoReclamo, func(i, j int) bool {
		if summary.PorTipoReclamo[i].Total != summary.PorTipoReclamo[j].Total {
			return summary.PorTipoReclamo[i].Total > summary.PorTipoReclamo[j].Total
		}
		return summary.PorTipoReclamo[i].TipoReclamo < summary.PorTipoReclamo[j].TipoReclamo
	})

	for provincia, total := range byProvince {
		summary.PorProvincia = append(summary.PorProvincia, ProvinceAggregate{Provincia: provincia, Total: total})
	}
	sort.Slice(summary.PorProvincia, func(i, j int) bool {
		if summary.PorProvincia[i].Total != summary.PorProvincia[j].Total {
			return summary.PorProvincia[i].Total > summary.PorProvincia[j].Total
		}
		return summary.PorProvincia[i].Provincia < summary.PorProvincia[j].Provincia
	})

	return summary, nil
}

// ExportExcel builds the downloadable workbook: the full ledger, the
// headline summary and the per-province distribution, one sheet each.
func (s *ReportService) ExportExcel(ctx context.Context, permisionario string, filter ReportFilter) ([]byte, string, error) {
	rows, err := s.BuildReport(ctx, permisionario, filter)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.Summary(ctx, permisionario, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("closing workbook", zap.Error(err))
		}
	}()

	const ledgerSheet = "Reporte Completo"
	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, "", apperrors.NewInternalError("rename report sheet", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, "", apperrors.NewInternalError("build header style", err)
	}

	if err := s.writeLedgerSheet(f, ledgerSheet, headerStyle, rows); err != nil {
		return nil, "", err
	}
	if err := s.writeSummarySheet(f, headerStyle, permisionario, summary); err != nil {
		return nil, "", err
	}
	if err := s.writeProvinceSheet(f, headerStyle, summary); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperrors.NewInternalError("serialize workbook", err)
	}

	filename := fmt.Sprintf("reporte_incidencias_%s_%s.xlsx",
		sanitizeFilename(permisionario), s.now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func (s *ReportService) writeLedgerSheet(f *excelize.File, sheet string, headerStyle int, rows []ReportRow) error {
	for col, title := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return apperrors.NewInternalError("resolve header cell", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return apperrors.NewInternalError("write header cell", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", endHeader, headerStyle); err != nil {
		return apperrors.NewInternalError("style header row", err)
	}

	for i, row := range rows {
		values := []any{
			row.Item,
			row.Provincia,
			row.Mes,
			row.FechaHoraRegistro,
			row.NombreReclamante,
			row.TelefonoContacto,
			row.TipoConexion,
			row.TipoReclamo,
			row.CanalReclamo,
			row.Estado,
			row.DescripcionIncidencia,
			row.DescripcionSolucion,
			row.FechaHoraSolucion,
			row.TiempoResolucion,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return apperrors.NewInternalError("resolve ledger cell", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return apperrors.NewInternalError("write ledger cell", err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "J", 22)
	_ = f.SetColWidth(sheet, "K", "L", 40)
	_ = f.SetColWidth(sheet, "M", "N", 24)
	return nil
}

func (s *ReportService) writeSummarySheet(f *excelize.File, headerStyle int, permisionario string, summary *ReportSummary) error {
	const sheet = "Resumen"
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewInternalError("create summary sheet", err)
	}

	lines := [][2]any{
		{"PERMISIONARIO", permisionario},
		{"TOTAL DE INCIDENCIAS", summary.Total},
		{"PENDIENTES", summary.Pendientes},
		{"FINALIZADAS", summary.Finalizadas},
		{"TIEMPO PROMEDIO DE RESOLUCIÓN (HORAS)", summary.PromedioHoras},
		{"TIEMPO MÁXIMO DE RESOLUCIÓN (HORAS)", summary.MaximoHoras},
		{"TIEMPO MÍNIMO DE RESOLUCIÓN (HORAS)", summary.MinimoHoras},
	}
	for i, line := range lines {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), line[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), line[1])
	}
	if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("A%d", len(lines)), headerStyle); err != nil {
		return apperrors.NewInternalError("style summary labels", err)
	}

	start := len(lines) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", start), "TIPO DE RECLAMO")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", start), "CATEGORÍA")
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", start), "TOTAL")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", start), "FINALIZADAS")
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", start), fmt.Sprintf("D%d", start), headerStyle); err != nil {
		return apperrors.NewInternalError("style summary table header", err)
	}
	for i, agg := range summary.PorTipoReclamo {
		row := start + 1 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), agg.TipoReclamo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(agg.Categoria))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), agg.Total)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), agg.Finalizadas)
	}

	_ = f.SetColWidth(sheet, "A", "A", 50)
	_ = f.SetColWidth(sheet, "B", "D", 22)
	return nil
}

func (s *ReportService) writeProvinceSheet(f *excelize.File, headerStyle int, summary *ReportSummary) error {
	const sheet = "Distribución por Provincia"
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewInternalError("create province sheet", err)
	}

	_ = f.SetCellValue(sheet, "A1", "PROVINCIA")
	_ = f.SetCellValue(sheet, "B1", "TOTAL DE INCIDENCIAS")
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return apperrors.NewInternalError("style province header", err)
	}
	for i, agg := range summary.PorProvincia {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), agg.Provincia)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), agg.Total)
	}

	_ = f.SetColWidth(sheet, "A", "B", 26)
	return nil
}

func (s *ReportService) fetch(ctx context.Context, permisionario string, filter ReportFilter) ([]domain.Incident, error) {
	if strings.TrimSpace(permisionario) == "" {
		return nil, apperrors.NewValidationError("permisionario required", nil)
	}
	incidents, err := s.incidents.ListWithFilter(ctx, repository.IncidentFilter{
		Permisionario: permisionario,
		Mes:           filter.Mes,
		Category:      filter.Category,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return incidents, nil
}

func toReportRow(inc *domain.Incident) ReportRow {
	row := ReportRow{
		Item:                  inc.Item,
		Provincia:             inc.Provincia,
		Mes:                   inc.Mes,
		FechaHoraRegistro:     inc.FechaHoraRegistro.Format(reportTimeLayout),
		NombreReclamante:      inc.NombreReclamante,
		TelefonoContacto:      inc.TelefonoContacto,
		TipoConexion:          inc.TipoConexion,
		TipoReclamo:           inc.TipoReclamo,
		CanalReclamo:          string(inc.CanalReclamo),
		Estado:                string(inc.Estado),
		DescripcionIncidencia: inc.DescripcionIncidencia,
		DescripcionSolucion:   inc.DescripcionSolucion,
	}
	if inc.FechaHoraSolucion != nil {
		row.FechaHoraSolucion = inc.FechaHoraSolucion.Format(reportTimeLayout)
	}
	if inc.TiempoResolucionHoras != nil {
		row.TiempoResolucion = fmt.Sprintf("%.2f", *inc.TiempoResolucionHoras)
	}
	return row
}

func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return replacer.Replace(strings.TrimSpace(name))
}
