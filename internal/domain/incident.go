package domain

import (
	"math"
	"time"
)

// IncidentStatus enumerates lifecycle states for incidents. The
// transition is one-way: Pendiente -> Finalizado, no reopening.
type IncidentStatus string

const (
	IncidentStatusPending   IncidentStatus = "Pendiente"
	IncidentStatusFinalized IncidentStatus = "Finalizado"
)

// ClaimCategory groups the regulator's claim catalog.
type ClaimCategory string

const (
	CategoryRepairs  ClaimCategory = "Reparación de Averías"
	CategoryGeneral  ClaimCategory = "Reclamos Generales"
	CategoryOther    ClaimCategory = "Otros"
	CategoryUnlisted ClaimCategory = ""
)

// ClaimChannel enumerates intake channels.
type ClaimChannel string

const (
	ChannelInPerson ClaimChannel = "PERSONALIZADO"
	ChannelPhone    ClaimChannel = "TELEFÓNICO"
	ChannelLetter   ClaimChannel = "OFICIO"
	ChannelEmail    ClaimChannel = "CORREO ELECTRÓNICO"
	ChannelWeb      ClaimChannel = "PÁGINA WEB"
)

// ConnectionTypeDefault is stamped on every incident; the resellers only
// operate non-switched links.
const ConnectionTypeDefault = "NO CONMUTADA"

// claimCatalog maps every reportable claim type to its category.
var claimCatalog = map[string]ClaimCategory{
	"INDISPONIBILIDAD DEL SERVICIO":                            CategoryRepairs,
	"INTERRUPCIÓN DEL SERVICIO":                                CategoryRepairs,
	"DESCONEXIÓN O SUSPENSIÓN ERRÓNEA DEL SERVICIO":            CategoryRepairs,
	"DEGRADACIÓN DEL SERVICIO":                                 CategoryRepairs,
	"LIMITACIONES Y RESTRICCIONES DE USO DE APLICACIONES O DEL SERVICIO EN GENERAL SIN CONSENTIMIENTO DEL CLIENTE": CategoryRepairs,
	"ACTIVACIÓN DEL SERVICIO EN TÉRMINOS DISTINTOS A LO FIJADO EN EL CONTRATO DE PRESTACIÓN DEL SERVICIO":          CategoryGeneral,
	"REACTIVACIÓN DEL SERVICIO EN PLAZOS DISTINTOS A LOS FIJADOS EN EL CONTRATO DE PRESTACIÓN DEL SERVICIO":        CategoryGeneral,
	"INCUMPLIMIENTO DE LAS CLÁUSULAS CONTRACTUALES PACTADAS":                                                       CategoryGeneral,
	"SUSPENSIÓN DEL SERVICIO SIN FUNDAMENTO LEGAL O CONTRACTUAL":                                                   CategoryGeneral,
	"NO TRAMITACIÓN DE SOLICITUD DE TERMINACIÓN DEL SERVICIO":                                                      CategoryGeneral,
	"CAPACIDAD DE CANAL": CategoryOther,
	"NO PROCEDENTES":     CategoryOther,
}

// Incident is the ledger row for a reported issue ("TiemPro" in the
// regulator's nomenclature). Snapshot fields are copied from the Client
// at creation time and never re-synced.
type Incident struct {
	ID                    string
	Item                  int
	Permisionario         string
	Provincia             string
	Mes                   string
	FechaHoraRegistro     time.Time
	NombreReclamante      string
	TelefonoContacto      string
	TipoConexion          string
	TipoReclamo           string
	CanalReclamo          ClaimChannel
	Estado                IncidentStatus
	DescripcionIncidencia string
	DescripcionSolucion   string
	FechaHoraSolucion     *time.Time
	TiempoResolucionHoras *float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ValidClaimType reports whether the type belongs to the fixed catalog.
func ValidClaimType(tipo string) bool {
	_, ok := claimCatalog[tipo]
	return ok
}

// CategoryOf returns the catalog category for a claim type, or
// CategoryUnlisted for unknown values.
func CategoryOf(tipo string) ClaimCategory {
	return claimCatalog[tipo]
}

// ClaimTypesFor lists catalog members of one category, or the whole
// catalog for CategoryUnlisted.
func ClaimTypesFor(cat ClaimCategory) []string {
	types := make([]string, 0, len(claimCatalog))
	for tipo, c := range claimCatalog {
		if cat == CategoryUnlisted || c == cat {
			types = append(types, tipo)
		}
	}
	return types
}

// ValidChannel reports whether the value is a known intake channel.
func ValidChannel(c ClaimChannel) bool {
	switch c {
	case ChannelInPerson, ChannelPhone, ChannelLetter, ChannelEmail, ChannelWeb:
		return true
	}
	return false
}

var spanishMonths = [...]string{
	time.January:   "Enero",
	time.February:  "Febrero",
	time.March:     "Marzo",
	time.April:     "Abril",
	time.May:       "Mayo",
	time.June:      "Junio",
	time.July:      "Julio",
	time.August:    "Agosto",
	time.September: "Septiembre",
	time.October:   "Octubre",
	time.November:  "Noviembre",
	time.December:  "Diciembre",
}

// SpanishMonth names a month in Spanish. Indexed by time.Month so the
// result never depends on the runtime locale.
func SpanishMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m]
}

// ResolutionHours computes elapsed hours between registration and
// solution, rounded to two decimals.
func ResolutionHours(registro, solucion time.Time) float64 {
	hours := solucion.Sub(registro).Hours()
	return math.Round(hours*100) / 100
}
