package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	MovimientoEstancia = "ESTANCIA"
	MovimientoExtra    = "EXTRA"
	MovimientoProducto = "PRODUCTO"
)

// Metodos de pago. TARJETA is intentionally not supported.
const (
	PagoEfectivo      = "EFECTIVO"
	PagoTransferencia = "TRANSFERENCIA"
)

// MovimientoCaja is one immutable entry in the cash ledger. Entries are only
// ever created by the service that originates them (abrir estancia, horas
// extra, venta de producto) and are NEVER updated or deleted; the audit
// trail is the accounting source of truth at shift close.
//
// Tipo ESTANCIA/EXTRA requires EstanciaID; tipo PRODUCTO requires ProductoID.
type MovimientoCaja struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo       string          `gorm:"type:varchar(20);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`

	EstanciaID *uuid.UUID `gorm:"type:uuid;index"`
	ProductoID *uuid.UUID `gorm:"type:uuid"`
	// Cantidad only applies to tipo PRODUCTO.
	Cantidad *int

	Fecha time.Time `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoCaja) TableName() string { return "movimientos_caja" }
