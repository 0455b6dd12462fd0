package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirEstanciaRequest struct {
	HabitacionID string `json:"habitacion_id" validate:"required,uuid"`
	TarifaID     string `json:"tarifa_id"     validate:"required,uuid"`
	MetodoPago   string `json:"metodo_pago"   validate:"required,oneof=EFECTIVO TRANSFERENCIA"`
}

type HorasExtraRequest struct {
	Horas      int             `json:"horas"       validate:"required,gt=0"`
	PrecioHora decimal.Decimal `json:"precio_hora" validate:"min=0"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=EFECTIVO TRANSFERENCIA"`
}

type CerrarEstanciaRequest struct {
	// HoraSalidaReal defaults to the server clock when omitted (RFC 3339).
	HoraSalidaReal *string `json:"hora_salida_real"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstanciaResponse struct {
	ID                   string  `json:"id"`
	Habitacion           int     `json:"habitacion"`
	Tarifa               string  `json:"tarifa"`
	TurnoInicioID        string  `json:"turno_inicio_id"`
	TurnoCierreID        *string `json:"turno_cierre_id,omitempty"`
	HoraEntrada          string  `json:"hora_entrada"`
	HoraSalidaProgramada string  `json:"hora_salida_programada"`
	HoraSalidaReal       *string `json:"hora_salida_real,omitempty"`
	Activa               bool    `json:"activa"`
}
