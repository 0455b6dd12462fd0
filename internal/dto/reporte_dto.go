package dto

import "github.com/shopspring/decimal"

// ReporteTurnoRow is one shift in the per-shift report. The totals are
// re-derived from the ledger; for closed shifts they reproduce the close-time
// arithmetic exactly.
type ReporteTurnoRow struct {
	TurnoID            string          `json:"turno_id"`
	Empleado           string          `json:"empleado"`
	TipoTurno          string          `json:"tipo_turno"`
	FechaInicio        string          `json:"fecha_inicio"`
	FechaFin           *string         `json:"fecha_fin"`
	CajaInicial        decimal.Decimal `json:"caja_inicial"`
	TotalEfectivo      decimal.Decimal `json:"total_efectivo"`
	TotalTransferencia decimal.Decimal `json:"total_transferencia"`
	TotalIngresos      decimal.Decimal `json:"total_ingresos"`
	Sueldo             *decimal.Decimal `json:"sueldo"`
	EfectivoEsperado   *decimal.Decimal `json:"efectivo_esperado"`
	EfectivoReportado  *decimal.Decimal `json:"efectivo_reportado"`
	Diferencia         *decimal.Decimal `json:"diferencia"`
	SinIngresos        bool            `json:"sin_ingresos"`
}

// ReporteEmpleadoRow aggregates every shift of one employee.
type ReporteEmpleadoRow struct {
	EmpleadoID         string          `json:"empleado_id"`
	Empleado           string          `json:"empleado"`
	Turnos             int             `json:"turnos"`
	TurnosSinIngresos  int             `json:"turnos_sin_ingresos"`
	TotalEfectivo      decimal.Decimal `json:"total_efectivo"`
	TotalTransferencia decimal.Decimal `json:"total_transferencia"`
	TotalIngresos      decimal.Decimal `json:"total_ingresos"`
	TotalSueldos       decimal.Decimal `json:"total_sueldos"`
	TotalDiferencias   decimal.Decimal `json:"total_diferencias"`
}

// ResumenDiarioResponse aggregates all shifts started on one date.
type ResumenDiarioResponse struct {
	Fecha              string          `json:"fecha"`
	Turnos             int             `json:"turnos"`
	TurnosSinIngresos  int             `json:"turnos_sin_ingresos"`
	TotalEfectivo      decimal.Decimal `json:"total_efectivo"`
	TotalTransferencia decimal.Decimal `json:"total_transferencia"`
	TotalIngresos      decimal.Decimal `json:"total_ingresos"`
	TotalSueldos       decimal.Decimal `json:"total_sueldos"`
	TotalDiferencias   decimal.Decimal `json:"total_diferencias"`
}
