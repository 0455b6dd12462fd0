package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoHabitacion classifies rooms (sencilla, doble, suite).
type TipoHabitacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion string
	Activo      bool `gorm:"not null;default:true"`
}

// TableName overrides GORM's default pluralization.
func (TipoHabitacion) TableName() string { return "tipos_habitacion" }

// Habitacion is a physical room. Activa gates whether new estancias may
// reference it; rooms are deactivated, never deleted.
type Habitacion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero int       `gorm:"uniqueIndex;not null"`
	TipoID uuid.UUID `gorm:"type:uuid;not null"`
	Activa bool      `gorm:"not null;default:true"`

	FechaCreacion time.Time `gorm:"autoCreateTime"`

	Tipo *TipoHabitacion `gorm:"foreignKey:TipoID"`
}

// TableName overrides GORM's default pluralization.
func (Habitacion) TableName() string { return "habitaciones" }
