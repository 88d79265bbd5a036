package dto

import "github.com/eandradeg/alltelapp/internal/domain"

// ReportRowResponse is one regulator-formatted ledger line.
type ReportRowResponse struct {
	Item                  int    `json:"item"`
	Provincia             string `json:"provincia"`
	Mes                   string `json:"mes"`
	FechaHoraRegistro     string `json:"fecha_hora_registro"`
	NombreReclamante      string `json:"nombre_reclamante"`
	TelefonoContacto      string `json:"telefono_contacto"`
	TipoConexion          string `json:"tipo_conexion"`
	TipoReclamo           string `json:"tipo_reclamo"`
	CanalReclamo          string `json:"canal_reclamo"`
	Estado                string `json:"estado"`
	DescripcionIncidencia string `json:"descripcion_incidencia"`
	DescripcionSolucion   string `json:"descripcion_solucion"`
	FechaHoraSolucion     string `json:"fecha_hora_solucion"`
	TiempoResolucion      string `json:"tiempo_resolucion_horas"`
}

// TypeAggregateResponse counts incidents of one claim type.
type TypeAggregateResponse struct {
	TipoReclamo string               `json:"tipo_reclamo"`
	Categoria   domain.ClaimCategory `json:"categoria"`
	Total       int                  `json:"total"`
	Finalizadas int                  `json:"finalizadas"`
}

// ProvinceAggregateResponse counts incidents per province.
type ProvinceAggregateResponse struct {
	Provincia string `json:"provincia"`
	Total     int    `json:"total"`
}

// ReportSummaryResponse carries headline statistics.
type ReportSummaryResponse struct {
	Total          int                         `json:"total"`
	Pendientes     int                         `json:"pendientes"`
	Finalizadas    int                         `json:"finalizadas"`
	PromedioHoras  float64                     `json:"tiempo_promedio_horas"`
	MaximoHoras    float64                     `json:"tiempo_maximo_horas"`
	MinimoHoras    float64                     `json:"tiempo_minimo_horas"`
	PorTipoReclamo []TypeAggregateResponse     `json:"por_tipo_reclamo"`
	PorProvincia   []ProvinceAggregateResponse `json:"por_provincia"`
}
