package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eandradeg/alltelapp/internal/domain"
)

func hoursPtr(v float64) *float64 { return &v }

func seedReportRepo() *memIncidentRepo {
	repo := newMemIncidentRepo(newCounterAllocator())
	registro := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	solucion := registro.Add(3 * time.Hour)

	repo.incidents = []*domain.Incident{
		{
			ID: "inc-1", Item: 1, Permisionario: "ALLTEL", Provincia: "Pichincha",
			Mes: "Julio", FechaHoraRegistro: registro, NombreReclamante: "Juan Pérez",
			TipoConexion: domain.ConnectionTypeDefault,
			TipoReclamo:  "INTERRUPCIÓN DEL SERVICIO", CanalReclamo: domain.ChannelPhone,
			Estado:            domain.IncidentStatusFinalized,
			FechaHoraSolucion: &solucion, TiempoResolucionHoras: hoursPtr(3.0),
		},
		{
			ID: "inc-2", Item: 2, Permisionario: "ALLTEL", Provincia: "Pichincha",
			Mes: "Julio", FechaHoraRegistro: registro, NombreReclamante: "María Quispe",
			TipoConexion: domain.ConnectionTypeDefault,
			TipoReclamo:  "INTERRUPCIÓN DEL SERVICIO", CanalReclamo: domain.ChannelWeb,
			Estado:            domain.IncidentStatusFinalized,
			FechaHoraSolucion: &solucion, TiempoResolucionHoras: hoursPtr(7.5),
		},
		{
			ID: "inc-3", Item: 3, Permisionario: "ALLTEL", Provincia: "Guayas",
			Mes: "Julio", FechaHoraRegistro: registro, NombreReclamante: "Carlos Vera",
			TipoConexion: domain.ConnectionTypeDefault,
			TipoReclamo:  "NO PROCEDENTES", CanalReclamo: domain.ChannelInPerson,
			Estado: domain.IncidentStatusPending,
		},
		{
			ID: "inc-4", Item: 1, Permisionario: "OTRAEMPRESA", Provincia: "Azuay",
			Mes: "Julio", FechaHoraRegistro: registro, NombreReclamante: "Otro Cliente",
			TipoConexion: domain.ConnectionTypeDefault,
			TipoReclamo:  "CAPACIDAD DE CANAL", CanalReclamo: domain.ChannelEmail,
			Estado: domain.IncidentStatusPending,
		},
	}
	return repo
}

func TestReportSummary(t *testing.T) {
	t.Parallel()

	svc := NewReportService(ReportDependencies{IncidentRepo: seedReportRepo()})

	summary, err := svc.Summary(context.Background(), "ALLTEL", ReportFilter{})
	require.NoError(t, err)

	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.Pendientes)
	require.Equal(t, 2, summary.Finalizadas)
	require.Equal(t, 5.25, summary.PromedioHoras)
	require.Equal(t, 7.5, summary.MaximoHoras)
	require.Equal(t, 3.0, summary.MinimoHoras)

	require.Len(t, summary.PorTipoReclamo, 2)
	require.Equal(t, "INTERRUPCIÓN DEL SERVICIO", summary.PorTipoReclamo[0].TipoReclamo)
	require.Equal(t, domain.CategoryRepairs, summary.PorTipoReclamo[0].Categoria)
	require.Equal(t, 2, summary.PorTipoReclamo[0].Total)
	require.Equal(t, 2, summary.PorTipoReclamo[0].Finalizadas)

	require.Len(t, summary.PorProvincia, 2)
	require.Equal(t, "Pichincha", summary.PorProvincia[0].Provincia)
	require.Equal(t, 2, summary.PorProvincia[0].Total)
}

func TestReportSummaryEmptyLedger(t *testing.T) {
	t.Parallel()

	svc := NewReportService(ReportDependencies{IncidentRepo: newMemIncidentRepo(newCounterAllocator())})

	summary, err := svc.Summary(context.Background(), "ALLTEL", ReportFilter{})
	require.NoError(t, err)
	require.Equal(t, 0, summary.Total)
	require.Equal(t, 0.0, summary.PromedioHoras)
	require.Equal(t, 0.0, summary.MaximoHoras)
	require.Equal(t, 0.0, summary.MinimoHoras)
	require.Empty(t, summary.PorTipoReclamo)
}

func TestBuildReportFormatsRows(t *testing.T) {
	t.Parallel()

	svc := NewReportService(ReportDependencies{IncidentRepo: seedReportRepo()})

	rows, err := svc.BuildReport(context.Background(), "ALLTEL", ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	require.Equal(t, 1, first.Item)
	require.Equal(t, "01/07/2025 09:00", first.FechaHoraRegistro)
	require.Equal(t, "01/07/2025 12:00", first.FechaHoraSolucion)
	require.Equal(t, "3.00", first.TiempoResolucion)
	require.Equal(t, "Finalizado", first.Estado)

	pending := rows[2]
	require.Equal(t, "", pending.FechaHoraSolucion)
	require.Equal(t, "", pending.TiempoResolucion)
	require.Equal(t, "Pendiente", pending.Estado)
}

func TestBuildReportFiltersByCategory(t *testing.T) {
	t.Parallel()

	svc := NewReportService(ReportDependencies{IncidentRepo: seedReportRepo()})

	rows, err := svc.BuildReport(context.Background(), "ALLTEL", ReportFilter{Category: domain.CategoryOther})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "NO PROCEDENTES", rows[0].TipoReclamo)
}

func TestExportExcelWorkbookStructure(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.August, 30, 10, 0, 0, 0, time.UTC)
	svc := NewReportService(ReportDependencies{
		IncidentRepo: seedReportRepo(),
		Now:          func() time.Time { return now },
	})

	payload, filename, err := svc.ExportExcel(context.Background(), "ALLTEL", ReportFilter{})
	require.NoError(t, err)
	require.Equal(t, "reporte_incidencias_ALLTEL_20250830_100000.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t,
		[]string{"Reporte Completo", "Resumen", "Distribución por Provincia"},
		f.GetSheetList())

	header, err := f.GetCellValue("Reporte Completo", "A1")
	require.NoError(t, err)
	require.Equal(t, "ITEM", header)

	estado, err := f.GetCellValue("Reporte Completo", "J2")
	require.NoError(t, err)
	require.Equal(t, "Finalizado", estado)

	total, err := f.GetCellValue("Resumen", "B2")
	require.NoError(t, err)
	require.Equal(t, "3", total)

	province, err := f.GetCellValue("Distribución por Provincia", "A2")
	require.NoError(t, err)
	require.Equal(t, "Pichincha", province)
}
