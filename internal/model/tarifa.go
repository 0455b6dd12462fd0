package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tarifa prices a stay of a fixed duration for one room type
// (ej: "3 horas", "6 horas", "Noche completa").
// Nocturnal tariffs carry a validity window; diurnal ones must not.
type Tarifa struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null;uniqueIndex:uq_tarifa_nombre_tipo"`
	// Horas is the base duration the tariff covers.
	Horas  int             `gorm:"not null"`
	Precio decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	EsNocturna         bool `gorm:"not null;default:false"`
	HoraInicioNocturna *string
	HoraFinNocturna    *string

	TipoHabitacionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_tarifa_nombre_tipo"`
	Activa           bool      `gorm:"not null;default:true"`

	FechaCreacion time.Time `gorm:"autoCreateTime"`

	TipoHabitacion *TipoHabitacion `gorm:"foreignKey:TipoHabitacionID"`
}
