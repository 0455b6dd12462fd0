package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de turno.
const (
	TurnoDia   = "DIA"
	TurnoNoche = "NOCHE"
)

// Turno is the top-level accounting container: a bounded period of employee
// responsibility for the cash register. At most one Turno is active in the
// entire system, enforced by the partial unique index uq_turnos_activo
// (see infra.applySchemaPatches), not just by the application pre-check.
//
// A Turno is never deleted: MovimientoCaja and Estancia rows reference it
// protectively.
type Turno struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	TipoTurno string    `gorm:"type:varchar(10);not null"`

	FechaInicio time.Time `gorm:"not null"`
	FechaFin    *time.Time
	Activo      bool `gorm:"not null;default:true"`

	// CajaInicial is the opening cash float (>= 0), fixed at open time.
	CajaInicial decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Computed at close, absent while active.
	SueldoReportado   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	EfectivoEsperado  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	EfectivoReportado *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Diferencia        *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CajaFinal         *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Usuario     *Usuario         `gorm:"foreignKey:UsuarioID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:TurnoID"`
}
