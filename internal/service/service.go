// Package service implements the business operations of the hostal backend.
// Services validate inputs, resolve the entities a decision needs, and apply
// every resulting write inside a single transaction. Entities are
// immutable-after-creation except for the explicit state transitions defined
// here; validation lives in these functions, never on the models.
package service

import (
	"context"

	"hostalpos/internal/apierror"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// Caller identifies the authenticated principal on whose behalf an operation
// runs. Built by the HTTP layer from JWT claims.
type Caller struct {
	ID       uuid.UUID
	Username string
	Rol      string
}

func (c Caller) EsAdmin() bool { return c.Rol == model.RolAdmin }

// ── Capabilities ─────────────────────────────────────────────────────────────
// One explicit capability check per operation entry point, replacing ad-hoc
// role comparisons scattered through handlers.

type capacidad int

const (
	capOperarTurno capacidad = iota // abrir y cerrar turnos
	capOperarCaja                   // estancias, horas extra, ventas
	capVerReportes
	capAdministrarCatalogo
)

var capacidadesPorRol = map[string][]capacidad{
	model.RolAdmin:    {capOperarTurno, capOperarCaja, capVerReportes, capAdministrarCatalogo},
	model.RolEmpleado: {capOperarTurno, capOperarCaja, capVerReportes},
	model.RolInvitado: {capOperarTurno, capOperarCaja},
}

func tieneCapacidad(rol string, c capacidad) bool {
	for _, cap := range capacidadesPorRol[rol] {
		if cap == c {
			return true
		}
	}
	return false
}

// ── Transaction helper ───────────────────────────────────────────────────────

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Ledger entry validation ──────────────────────────────────────────────────

// validarMovimiento is the single gate every ledger entry passes before being
// written. Pure function: no I/O, typed errors only.
func validarMovimiento(m *model.MovimientoCaja) error {
	if !m.Monto.IsPositive() {
		return apierror.Validation("el monto del movimiento debe ser mayor a cero")
	}
	if m.MetodoPago != model.PagoEfectivo && m.MetodoPago != model.PagoTransferencia {
		return apierror.Validation("metodo de pago invalido")
	}
	switch m.Tipo {
	case model.MovimientoEstancia, model.MovimientoExtra:
		if m.EstanciaID == nil {
			return apierror.Validation("movimiento de estancia sin estancia asociada")
		}
	case model.MovimientoProducto:
		if m.ProductoID == nil {
			return apierror.Validation("movimiento de producto sin producto asociado")
		}
	default:
		return apierror.Validation("tipo de movimiento invalido")
	}
	return nil
}
