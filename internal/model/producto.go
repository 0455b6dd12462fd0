package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable item (minibar, snacks). Stock is decremented
// atomically on sale with an insufficient-stock guard; it can never go
// negative.
type Producto struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string          `gorm:"uniqueIndex;not null"`
	Precio decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock  int             `gorm:"not null;default:0"`
	Activo bool            `gorm:"not null;default:true"`

	FechaCreacion time.Time `gorm:"autoCreateTime"`
}
