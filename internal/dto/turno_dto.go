package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IniciarTurnoRequest struct {
	TipoTurno   string          `json:"tipo_turno"   validate:"required,oneof=DIA NOCHE"`
	CajaInicial decimal.Decimal `json:"caja_inicial" validate:"min=0"`
}

type CerrarTurnoRequest struct {
	EfectivoReportado decimal.Decimal `json:"efectivo_reportado" validate:"min=0"`
	SueldoReportado   decimal.Decimal `json:"sueldo_reportado"   validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TurnoResponse struct {
	ID          string          `json:"id"`
	Empleado    string          `json:"empleado"`
	TipoTurno   string          `json:"tipo_turno"`
	FechaInicio string          `json:"fecha_inicio"`
	FechaFin    *string         `json:"fecha_fin"`
	Activo      bool            `json:"activo"`
	CajaInicial decimal.Decimal `json:"caja_inicial"`

	SueldoReportado   *decimal.Decimal `json:"sueldo_reportado,omitempty"`
	EfectivoEsperado  *decimal.Decimal `json:"efectivo_esperado,omitempty"`
	EfectivoReportado *decimal.Decimal `json:"efectivo_reportado,omitempty"`
	Diferencia        *decimal.Decimal `json:"diferencia,omitempty"`
	CajaFinal         *decimal.Decimal `json:"caja_final,omitempty"`
}

// CierreTurnoResponse is the close-shift result: the reconciled shift plus
// the informational no-revenue flag.
type CierreTurnoResponse struct {
	Turno         TurnoResponse   `json:"turno"`
	TotalEfectivo decimal.Decimal `json:"total_efectivo"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	SinIngresos   bool            `json:"sin_ingresos"`
}

type MovimientoResponse struct {
	ID         string          `json:"id"`
	TurnoID    string          `json:"turno_id"`
	Tipo       string          `json:"tipo"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	EstanciaID *string         `json:"estancia_id,omitempty"`
	ProductoID *string         `json:"producto_id,omitempty"`
	Cantidad   *int            `json:"cantidad,omitempty"`
	Fecha      string          `json:"fecha"`
}
