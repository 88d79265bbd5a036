package dto

import (
	"time"

	"github.com/eandradeg/alltelapp/internal/domain"
)

// RegisterIncidentRequest payload.
type RegisterIncidentRequest struct {
	ClientID    string              `json:"client_id"`
	TipoReclamo string              `json:"tipo_reclamo"`
	Canal       domain.ClaimChannel `json:"canal_reclamo"`
	Descripcion string              `json:"descripcion_incidencia"`
}

// SolutionRequest payload for saving or finalizing a solution.
type SolutionRequest struct {
	Descripcion string `json:"descripcion_solucion"`
}

// IncidentResponse representation.
type IncidentResponse struct {
	ID                    string                `json:"id"`
	Item                  int                   `json:"item"`
	Provincia             string                `json:"provincia"`
	Mes                   string                `json:"mes"`
	FechaHoraRegistro     time.Time             `json:"fecha_hora_registro"`
	NombreReclamante      string                `json:"nombre_reclamante"`
	TelefonoContacto      string                `json:"telefono_contacto"`
	TipoConexion          string                `json:"tipo_conexion"`
	TipoReclamo           string                `json:"tipo_reclamo"`
	Categoria             domain.ClaimCategory  `json:"categoria"`
	CanalReclamo          domain.ClaimChannel   `json:"canal_reclamo"`
	Estado                domain.IncidentStatus `json:"estado"`
	DescripcionIncidencia string                `json:"descripcion_incidencia"`
	DescripcionSolucion   string                `json:"descripcion_solucion"`
	FechaHoraSolucion     *time.Time            `json:"fecha_hora_solucion"`
	TiempoResolucionHoras *float64              `json:"tiempo_resolucion_horas"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// ClaimCatalogResponse lists the claim types of one category.
type ClaimCatalogResponse struct {
	Categoria    domain.ClaimCategory `json:"categoria"`
	TiposReclamo []string             `json:"tipos_reclamo"`
}
