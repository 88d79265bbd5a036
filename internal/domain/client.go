package domain

import (
	"strings"
	"time"
)

// ClientStatus represents lifecycle states for a subscriber.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVO"
	ClientStatusInactive ClientStatus = "INACTIVO"
)

// ContractedService enumerates the services a reseller offers.
type ContractedService string

const (
	ServiceInternet   ContractedService = "INTERNET"
	ServiceTV         ContractedService = "TV"
	ServiceInternetTV ContractedService = "INTERNET+TV"
)

// Client is the domain model for a reseller's subscriber.
// Permisionario is a scoping filter column, not a security boundary.
type Client struct {
	ID                 string
	Permisionario      string
	Codigo             string
	Nombres            string
	Apellidos          string
	Cliente            string
	CedulaRUC          string
	ServicioContratado ContractedService
	PlanContratado     string
	Provincia          string
	Ciudad             string
	Direccion          string
	Telefono           string
	Correo             string
	FechaInscripcion   time.Time
	Estado             ClientStatus
	IP                 string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DisplayName resolves the combined client name: an explicit "cliente"
// value wins, otherwise nombres + apellidos.
func (c *Client) DisplayName() string {
	if name := strings.TrimSpace(c.Cliente); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(c.Nombres) + " " + strings.TrimSpace(c.Apellidos))
}

// ValidService reports whether the value is one of the contracted service kinds.
func ValidService(s ContractedService) bool {
	switch s {
	case ServiceInternet, ServiceTV, ServiceInternetTV:
		return true
	}
	return false
}

// ValidClientStatus reports whether the value is a known subscriber state.
func ValidClientStatus(s ClientStatus) bool {
	return s == ClientStatusActive || s == ClientStatusInactive
}

// ToggledStatus returns the opposite subscriber state.
func ToggledStatus(s ClientStatus) ClientStatus {
	if s == ClientStatusActive {
		return ClientStatusInactive
	}
	return ClientStatusActive
}
