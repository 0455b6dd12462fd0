package service

import (
	"context"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReporteService produces read-only projections over shifts and the cash
// ledger. It never writes; re-deriving a closed shift's totals from the
// ledger reproduces the close-time arithmetic exactly.
type ReporteService interface {
	ReporteTurnos(ctx context.Context, caller Caller, desde, hasta *time.Time) ([]dto.ReporteTurnoRow, error)
	ReportePorEmpleado(ctx context.Context, caller Caller) ([]dto.ReporteEmpleadoRow, error)
	ResumenDiario(ctx context.Context, caller Caller, fecha *time.Time) (*dto.ResumenDiarioResponse, error)
	// ReporteTurno builds the single-shift row used by the async PDF job.
	ReporteTurno(ctx context.Context, turnoID uuid.UUID) (*dto.ReporteTurnoRow, error)
}

type reporteService struct {
	turno repository.TurnoRepository
	caja  repository.CajaRepository
}

func NewReporteService(turno repository.TurnoRepository, caja repository.CajaRepository) ReporteService {
	return &reporteService{turno: turno, caja: caja}
}

// ── ReporteTurnos ────────────────────────────────────────────────────────────

func (s *reporteService) ReporteTurnos(ctx context.Context, caller Caller, desde, hasta *time.Time) ([]dto.ReporteTurnoRow, error) {
	if !tieneCapacidad(caller.Rol, capVerReportes) {
		return nil, apierror.Permission("no tiene permiso para ver reportes")
	}

	f := repository.TurnoFilter{Desde: desde, Hasta: hasta}
	if !caller.EsAdmin() {
		f.UsuarioID = &caller.ID
	}
	turnos, err := s.turno.List(ctx, f)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.ReporteTurnoRow, 0, len(turnos))
	for i := range turnos {
		row, err := s.filaTurno(ctx, &turnos[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

// ── ReportePorEmpleado ───────────────────────────────────────────────────────

func (s *reporteService) ReportePorEmpleado(ctx context.Context, caller Caller) ([]dto.ReporteEmpleadoRow, error) {
	if !caller.EsAdmin() {
		return nil, apierror.Permission("solo el administrador puede ver el reporte por empleado")
	}

	turnos, err := s.turno.List(ctx, repository.TurnoFilter{})
	if err != nil {
		return nil, err
	}

	porEmpleado := make(map[uuid.UUID]*dto.ReporteEmpleadoRow)
	orden := make([]uuid.UUID, 0)

	for i := range turnos {
		t := &turnos[i]
		row, ok := porEmpleado[t.UsuarioID]
		if !ok {
			row = &dto.ReporteEmpleadoRow{
				EmpleadoID:         t.UsuarioID.String(),
				Empleado:           nombreUsuario(t),
				TotalEfectivo:      decimal.Zero,
				TotalTransferencia: decimal.Zero,
				TotalIngresos:      decimal.Zero,
				TotalSueldos:       decimal.Zero,
				TotalDiferencias:   decimal.Zero,
			}
			porEmpleado[t.UsuarioID] = row
			orden = append(orden, t.UsuarioID)
		}

		sums, err := s.caja.SumPorMetodo(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		movs, err := s.caja.CountMovimientos(ctx, t.ID)
		if err != nil {
			return nil, err
		}

		efectivo := sumaODefault(sums, model.PagoEfectivo)
		transferencia := sumaODefault(sums, model.PagoTransferencia)

		row.Turnos++
		if movs == 0 {
			row.TurnosSinIngresos++
		}
		row.TotalEfectivo = row.TotalEfectivo.Add(efectivo)
		row.TotalTransferencia = row.TotalTransferencia.Add(transferencia)
		row.TotalIngresos = row.TotalIngresos.Add(efectivo).Add(transferencia)
		if t.SueldoReportado != nil {
			row.TotalSueldos = row.TotalSueldos.Add(*t.SueldoReportado)
		}
		if t.Diferencia != nil {
			row.TotalDiferencias = row.TotalDiferencias.Add(*t.Diferencia)
		}
	}

	rows := make([]dto.ReporteEmpleadoRow, 0, len(orden))
	for _, id := range orden {
		rows = append(rows, *porEmpleado[id])
	}
	return rows, nil
}

// ── ResumenDiario ────────────────────────────────────────────────────────────

func (s *reporteService) ResumenDiario(ctx context.Context, caller Caller, fecha *time.Time) (*dto.ResumenDiarioResponse, error) {
	if !caller.EsAdmin() {
		return nil, apierror.Permission("solo el administrador puede ver el resumen diario")
	}

	dia := time.Now()
	if fecha != nil {
		dia = *fecha
	}
	desde := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	hasta := desde.Add(24 * time.Hour)

	turnos, err := s.turno.List(ctx, repository.TurnoFilter{Desde: &desde, Hasta: &hasta})
	if err != nil {
		return nil, err
	}

	resumen := &dto.ResumenDiarioResponse{
		Fecha:              desde.Format("2006-01-02"),
		Turnos:             len(turnos),
		TotalEfectivo:      decimal.Zero,
		TotalTransferencia: decimal.Zero,
		TotalIngresos:      decimal.Zero,
		TotalSueldos:       decimal.Zero,
		TotalDiferencias:   decimal.Zero,
	}

	for i := range turnos {
		t := &turnos[i]
		sums, err := s.caja.SumPorMetodo(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		movs, err := s.caja.CountMovimientos(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if movs == 0 {
			resumen.TurnosSinIngresos++
		}
		efectivo := sumaODefault(sums, model.PagoEfectivo)
		transferencia := sumaODefault(sums, model.PagoTransferencia)
		resumen.TotalEfectivo = resumen.TotalEfectivo.Add(efectivo)
		resumen.TotalTransferencia = resumen.TotalTransferencia.Add(transferencia)
		resumen.TotalIngresos = resumen.TotalIngresos.Add(efectivo).Add(transferencia)
		if t.SueldoReportado != nil {
			resumen.TotalSueldos = resumen.TotalSueldos.Add(*t.SueldoReportado)
		}
		if t.Diferencia != nil {
			resumen.TotalDiferencias = resumen.TotalDiferencias.Add(*t.Diferencia)
		}
	}
	return resumen, nil
}

// ── ReporteTurno ─────────────────────────────────────────────────────────────

func (s *reporteService) ReporteTurno(ctx context.Context, turnoID uuid.UUID) (*dto.ReporteTurnoRow, error) {
	turno, err := s.turno.FindByID(ctx, turnoID)
	if err != nil {
		return nil, apierror.NotFound("turno no encontrado")
	}
	return s.filaTurno(ctx, turno)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *reporteService) filaTurno(ctx context.Context, t *model.Turno) (*dto.ReporteTurnoRow, error) {
	sums, err := s.caja.SumPorMetodo(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	movs, err := s.caja.CountMovimientos(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	efectivo := sumaODefault(sums, model.PagoEfectivo)
	transferencia := sumaODefault(sums, model.PagoTransferencia)

	row := &dto.ReporteTurnoRow{
		TurnoID:            t.ID.String(),
		Empleado:           nombreUsuario(t),
		TipoTurno:          t.TipoTurno,
		FechaInicio:        t.FechaInicio.Format(time.RFC3339),
		CajaInicial:        t.CajaInicial,
		TotalEfectivo:      efectivo,
		TotalTransferencia: transferencia,
		TotalIngresos:      efectivo.Add(transferencia),
		Sueldo:             t.SueldoReportado,
		EfectivoEsperado:   t.EfectivoEsperado,
		EfectivoReportado:  t.EfectivoReportado,
		Diferencia:         t.Diferencia,
		SinIngresos:        movs == 0,
	}
	if t.FechaFin != nil {
		f := t.FechaFin.Format(time.RFC3339)
		row.FechaFin = &f
	}
	return row, nil
}
