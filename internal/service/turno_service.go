package service

import (
	"context"
	"errors"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TurnoService interface {
	Iniciar(ctx context.Context, caller Caller, req dto.IniciarTurnoRequest) (*dto.TurnoResponse, error)
	Cerrar(ctx context.Context, caller Caller, req dto.CerrarTurnoRequest) (*dto.CierreTurnoResponse, error)
	// Activo returns the single system-wide active shift, or NotFound.
	Activo(ctx context.Context) (*dto.TurnoResponse, error)
	Listar(ctx context.Context, caller Caller, f repository.TurnoFilter) ([]dto.TurnoResponse, error)
	ListarMovimientos(ctx context.Context, turnoID uuid.UUID) ([]dto.MovimientoResponse, error)
}

// CierreListener is notified after a shift closes successfully. Used to
// enqueue the async report job; nil is a valid no-op.
type CierreListener interface {
	TurnoCerrado(ctx context.Context, turnoID uuid.UUID)
}

type turnoService struct {
	repo     repository.TurnoRepository
	caja     repository.CajaRepository
	listener CierreListener
}

func NewTurnoService(repo repository.TurnoRepository, caja repository.CajaRepository, listener CierreListener) TurnoService {
	return &turnoService{repo: repo, caja: caja, listener: listener}
}

// ── Iniciar ──────────────────────────────────────────────────────────────────

func (s *turnoService) Iniciar(ctx context.Context, caller Caller, req dto.IniciarTurnoRequest) (*dto.TurnoResponse, error) {
	if !tieneCapacidad(caller.Rol, capOperarTurno) {
		return nil, apierror.Permission("no tiene permiso para abrir turnos")
	}
	if req.TipoTurno != model.TurnoDia && req.TipoTurno != model.TurnoNoche {
		return nil, apierror.Validation("tipo de turno invalido")
	}
	if req.CajaInicial.IsNegative() {
		return nil, apierror.Validation("la caja inicial no puede ser negativa")
	}

	// Friendly pre-check. The partial unique index is the authority: two
	// requests racing past this check cannot both insert.
	if _, err := s.repo.FindActivo(ctx); err == nil {
		return nil, apierror.Conflict("ya existe un turno activo")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	turno := &model.Turno{
		UsuarioID:   caller.ID,
		TipoTurno:   req.TipoTurno,
		FechaInicio: time.Now(),
		Activo:      true,
		CajaInicial: req.CajaInicial,
	}
	if err := s.repo.Create(ctx, turno); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe un turno activo")
		}
		return nil, err
	}

	resp := turnoToResponse(turno, caller.Username)
	return &resp, nil
}

// ── Cerrar ───────────────────────────────────────────────────────────────────
// Policy: a shift can only be closed by its opener. The shift load, the
// ledger sums it decides on, and the active→closed flip share one
// transaction: the FOR UPDATE read serializes concurrent closes, and the
// activo guard in CerrarTx rejects the loser.

func (s *turnoService) Cerrar(ctx context.Context, caller Caller, req dto.CerrarTurnoRequest) (*dto.CierreTurnoResponse, error) {
	if !tieneCapacidad(caller.Rol, capOperarTurno) {
		return nil, apierror.Permission("no tiene permiso para cerrar turnos")
	}
	if req.EfectivoReportado.IsNegative() {
		return nil, apierror.Validation("el efectivo reportado no puede ser negativo")
	}
	if req.SueldoReportado.IsNegative() {
		return nil, apierror.Validation("el sueldo reportado no puede ser negativo")
	}

	var (
		resp    *dto.CierreTurnoResponse
		turnoID uuid.UUID
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		turno, err := s.repo.FindActivoTx(tx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("no hay un turno activo")
			}
			return err
		}
		if turno.UsuarioID != caller.ID {
			return apierror.Permission("el turno solo puede cerrarlo quien lo abrio")
		}

		sums, err := s.caja.SumPorMetodoTx(tx, turno.ID)
		if err != nil {
			return err
		}
		totalMovs, err := s.caja.CountMovimientosTx(tx, turno.ID)
		if err != nil {
			return err
		}

		totalEfectivo := sums[model.PagoEfectivo]
		totalIngresos := totalEfectivo.Add(sums[model.PagoTransferencia])

		esperado := turno.CajaInicial.Add(totalEfectivo).Sub(req.SueldoReportado)
		diferencia := req.EfectivoReportado.Sub(esperado)

		ahora := time.Now()
		turno.FechaFin = &ahora
		turno.Activo = false
		turno.SueldoReportado = &req.SueldoReportado
		turno.EfectivoEsperado = &esperado
		turno.EfectivoReportado = &req.EfectivoReportado
		turno.Diferencia = &diferencia
		turno.CajaFinal = &req.EfectivoReportado

		if err := s.repo.CerrarTx(tx, turno); err != nil {
			if errors.Is(err, repository.ErrTurnoYaCerrado) {
				return apierror.Conflict("el turno ya fue cerrado")
			}
			return err
		}

		turnoID = turno.ID
		resp = &dto.CierreTurnoResponse{
			Turno:         turnoToResponse(turno, caller.Username),
			TotalEfectivo: totalEfectivo,
			TotalIngresos: totalIngresos,
			// Informational only; a shift with zero movements closes normally.
			SinIngresos: totalMovs == 0,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.listener != nil {
		s.listener.TurnoCerrado(ctx, turnoID)
	}
	return resp, nil
}

// ── Lookups ──────────────────────────────────────────────────────────────────

func (s *turnoService) Activo(ctx context.Context) (*dto.TurnoResponse, error) {
	turno, err := s.repo.FindActivo(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("no hay un turno activo")
		}
		return nil, err
	}
	resp := turnoToResponse(turno, nombreUsuario(turno))
	return &resp, nil
}

func (s *turnoService) Listar(ctx context.Context, caller Caller, f repository.TurnoFilter) ([]dto.TurnoResponse, error) {
	// ADMIN sees every shift; everyone else only their own.
	if !caller.EsAdmin() {
		f.UsuarioID = &caller.ID
	}
	turnos, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TurnoResponse, len(turnos))
	for i := range turnos {
		resp[i] = turnoToResponse(&turnos[i], nombreUsuario(&turnos[i]))
	}
	return resp, nil
}

func (s *turnoService) ListarMovimientos(ctx context.Context, turnoID uuid.UUID) ([]dto.MovimientoResponse, error) {
	if _, err := s.repo.FindByID(ctx, turnoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("turno no encontrado")
		}
		return nil, err
	}
	movs, err := s.caja.ListMovimientos(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoResponse, len(movs))
	for i, m := range movs {
		resp[i] = movimientoToResponse(&m)
	}
	return resp, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func nombreUsuario(t *model.Turno) string {
	if t.Usuario != nil {
		return t.Usuario.Username
	}
	return ""
}

func turnoToResponse(t *model.Turno, empleado string) dto.TurnoResponse {
	resp := dto.TurnoResponse{
		ID:          t.ID.String(),
		Empleado:    empleado,
		TipoTurno:   t.TipoTurno,
		FechaInicio: t.FechaInicio.Format(time.RFC3339),
		Activo:      t.Activo,
		CajaInicial: t.CajaInicial,

		SueldoReportado:   t.SueldoReportado,
		EfectivoEsperado:  t.EfectivoEsperado,
		EfectivoReportado: t.EfectivoReportado,
		Diferencia:        t.Diferencia,
		CajaFinal:         t.CajaFinal,
	}
	if t.FechaFin != nil {
		f := t.FechaFin.Format(time.RFC3339)
		resp.FechaFin = &f
	}
	return resp
}

func movimientoToResponse(m *model.MovimientoCaja) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:         m.ID.String(),
		TurnoID:    m.TurnoID.String(),
		Tipo:       m.Tipo,
		Monto:      m.Monto,
		MetodoPago: m.MetodoPago,
		Cantidad:   m.Cantidad,
		Fecha:      m.Fecha.Format(time.RFC3339),
	}
	if m.EstanciaID != nil {
		id := m.EstanciaID.String()
		resp.EstanciaID = &id
	}
	if m.ProductoID != nil {
		id := m.ProductoID.String()
		resp.ProductoID = &id
	}
	return resp
}

// sumaODefault is used by reporting to treat an absent method as zero.
func sumaODefault(sums map[string]decimal.Decimal, metodo string) decimal.Decimal {
	if v, ok := sums[metodo]; ok {
		return v
	}
	return decimal.Zero
}
