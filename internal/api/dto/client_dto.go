package dto

import (
	"time"

	"github.com/eandradeg/alltelapp/internal/domain"
)

// ClientRequest payload for create and update.
type ClientRequest struct {
	Nombres            string                   `json:"nombres"`
	Apellidos          string                   `json:"apellidos"`
	Cliente            string                   `json:"cliente"`
	CedulaRUC          string                   `json:"cedula_ruc"`
	ServicioContratado domain.ContractedService `json:"servicio_contratado"`
	PlanContratado     string                   `json:"plan_contratado"`
	Provincia          string                   `json:"provincia"`
	Ciudad             string                   `json:"ciudad"`
	Direccion          string                   `json:"direccion"`
	Telefono           string                   `json:"telefono"`
	Correo             string                   `json:"correo"`
	FechaInscripcion   string                   `json:"fecha_de_inscripcion"`
	Estado             domain.ClientStatus      `json:"estado"`
	IP                 string                   `json:"ip"`
}

// ClientResponse representation.
type ClientResponse struct {
	ID                 string                   `json:"id"`
	Codigo             string                   `json:"codigo"`
	Nombres            string                   `json:"nombres"`
	Apellidos          string                   `json:"apellidos"`
	Cliente            string                   `json:"cliente"`
	CedulaRUC          string                   `json:"cedula_ruc"`
	ServicioContratado domain.ContractedService `json:"servicio_contratado"`
	PlanContratado     string                   `json:"plan_contratado"`
	Provincia          string                   `json:"provincia"`
	Ciudad             string                   `json:"ciudad"`
	Direccion          string                   `json:"direccion"`
	Telefono           string                   `json:"telefono"`
	Correo             string                   `json:"correo"`
	FechaInscripcion   string                   `json:"fecha_de_inscripcion"`
	Estado             domain.ClientStatus      `json:"estado"`
	IP                 string                   `json:"ip"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}
