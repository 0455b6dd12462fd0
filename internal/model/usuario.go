package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles del sistema. Rol is the single source of truth for permissions:
// capability checks happen once per operation entry point, never by
// composing boolean permission chains.
const (
	RolAdmin    = "ADMIN"
	RolEmpleado = "EMPLEADO"
	RolInvitado = "INVITADO"
)

// Usuario is an employee (or guest operator) account. Deactivated instead of
// deleted: Turno rows keep a protective reference to their opener.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'EMPLEADO'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
