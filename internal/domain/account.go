package domain

import "time"

// AccountStatus represents lifecycle states for an operator account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVO"
	AccountStatusInactive AccountStatus = "INACTIVO"
)

// Account is an operator login. Each account belongs to exactly one
// permisionario; the reseller key travels in the auth token and scopes
// every client and incident operation.
type Account struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Permisionario string
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
