package model

import (
	"time"

	"github.com/google/uuid"
)

// Estancia tracks one room occupancy from check-in to check-out.
// States: abierta (Activa=true) → cerrada (terminal, no re-opening).
// At most one active Estancia per room; the partial unique index
// uq_estancias_habitacion_activa is the authority.
//
// TurnoCierre may differ from TurnoInicio: a stay opened on the day shift is
// routinely closed on the night shift.
type Estancia struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HabitacionID uuid.UUID `gorm:"type:uuid;not null;index"`
	TarifaID     uuid.UUID `gorm:"type:uuid;not null"`

	TurnoInicioID uuid.UUID  `gorm:"type:uuid;not null;index"`
	TurnoCierreID *uuid.UUID `gorm:"type:uuid"`

	HoraEntrada time.Time `gorm:"not null"`
	// HoraSalidaProgramada = entrada + tarifa.horas, extended by horas extra.
	HoraSalidaProgramada time.Time `gorm:"not null"`
	HoraSalidaReal       *time.Time

	Activa bool `gorm:"not null;default:true"`

	Habitacion *Habitacion `gorm:"foreignKey:HabitacionID"`
	Tarifa     *Tarifa     `gorm:"foreignKey:TarifaID"`
}
