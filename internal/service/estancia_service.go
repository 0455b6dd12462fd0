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
	"gorm.io/gorm"
)

type EstanciaService interface {
	Abrir(ctx context.Context, caller Caller, req dto.AbrirEstanciaRequest) (*dto.EstanciaResponse, error)
	AgregarHorasExtra(ctx context.Context, caller Caller, estanciaID uuid.UUID, req dto.HorasExtraRequest) (*dto.EstanciaResponse, error)
	Cerrar(ctx context.Context, caller Caller, estanciaID uuid.UUID, req dto.CerrarEstanciaRequest) (*dto.EstanciaResponse, error)
	ListarActivas(ctx context.Context) ([]dto.EstanciaResponse, error)
}

// PanelInvalidator drops the cached occupancy board after a stay opens or
// closes. Nil is a valid no-op (unit tests, cache disabled).
type PanelInvalidator interface {
	Invalidar(ctx context.Context)
}

type estanciaService struct {
	repo        repository.EstanciaRepository
	habitacion  repository.HabitacionRepository
	tarifa      repository.TarifaRepository
	turno       repository.TurnoRepository
	caja        repository.CajaRepository
	panel       PanelInvalidator
}

func NewEstanciaService(
	repo repository.EstanciaRepository,
	habitacion repository.HabitacionRepository,
	tarifa repository.TarifaRepository,
	turno repository.TurnoRepository,
	caja repository.CajaRepository,
	panel PanelInvalidator,
) EstanciaService {
	return &estanciaService{
		repo:       repo,
		habitacion: habitacion,
		tarifa:     tarifa,
		turno:      turno,
		caja:       caja,
		panel:      panel,
	}
}

// turnoActivo resolves the single active shift or fails with Conflict; every
// cash-generating operation requires one. Friendly pre-check only: the write
// path re-resolves inside its transaction via turnoEnTx.
func (s *estanciaService) turnoActivo(ctx context.Context) (*model.Turno, error) {
	turno, err := s.turno.FindActivo(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflict("no hay un turno activo")
		}
		return nil, err
	}
	return turno, nil
}

// turnoEnTx re-resolves the active shift inside the transaction, holding a
// shared row lock until commit: a concurrent close either waits for this
// write or already flipped the shift, in which case the operation conflicts.
func (s *estanciaService) turnoEnTx(tx *gorm.DB) (*model.Turno, error) {
	turno, err := s.turno.FindActivoCompartidoTx(tx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflict("no hay un turno activo")
		}
		return nil, err
	}
	return turno, nil
}

// ── Abrir ────────────────────────────────────────────────────────────────────
// Creates the stay and its base-charge ledger entry in one transaction: a
// failure in either rolls back both.

func (s *estanciaService) Abrir(ctx context.Context, caller Caller, req dto.AbrirEstanciaRequest) (*dto.EstanciaResponse, error) {
	if !tieneCapacidad(caller.Rol, capOperarCaja) {
		return nil, apierror.Permission("no tiene permiso para abrir estancias")
	}

	if _, err := s.turnoActivo(ctx); err != nil {
		return nil, err
	}

	habitacionID, err := uuid.Parse(req.HabitacionID)
	if err != nil {
		return nil, apierror.Validation("habitacion_id invalido")
	}
	tarifaID, err := uuid.Parse(req.TarifaID)
	if err != nil {
		return nil, apierror.Validation("tarifa_id invalido")
	}

	habitacion, err := s.habitacion.FindByID(ctx, habitacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("habitacion no encontrada")
		}
		return nil, err
	}
	if !habitacion.Activa {
		return nil, apierror.Conflict("la habitacion no esta activa")
	}

	tarifa, err := s.tarifa.FindByID(ctx, tarifaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("tarifa no encontrada")
		}
		return nil, err
	}
	if !tarifa.Activa {
		return nil, apierror.Conflict("la tarifa no esta activa")
	}

	// Friendly pre-check; the partial unique index on (habitacion_id) WHERE
	// activa is the authority under concurrency.
	if _, err := s.repo.FindActivaPorHabitacion(ctx, habitacionID); err == nil {
		return nil, apierror.Conflict("la habitacion ya esta ocupada")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entrada := time.Now()
	var estancia *model.Estancia
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		turno, err := s.turnoEnTx(tx)
		if err != nil {
			return err
		}
		estancia = &model.Estancia{
			HabitacionID:         habitacionID,
			TarifaID:             tarifaID,
			TurnoInicioID:        turno.ID,
			HoraEntrada:          entrada,
			HoraSalidaProgramada: entrada.Add(time.Duration(tarifa.Horas) * time.Hour),
			Activa:               true,
		}
		if err := s.repo.CreateTx(tx, estancia); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierror.Conflict("la habitacion ya esta ocupada")
			}
			return err
		}
		mov := &model.MovimientoCaja{
			TurnoID:    turno.ID,
			Tipo:       model.MovimientoEstancia,
			Monto:      tarifa.Precio,
			MetodoPago: req.MetodoPago,
			EstanciaID: &estancia.ID,
		}
		if err := validarMovimiento(mov); err != nil {
			return err
		}
		return s.caja.CreateMovimientoTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.panel != nil {
		s.panel.Invalidar(ctx)
	}

	estancia.Habitacion = habitacion
	estancia.Tarifa = tarifa
	resp := estanciaToResponse(estancia)
	return &resp, nil
}

// ── AgregarHorasExtra ────────────────────────────────────────────────────────
// Extends the scheduled checkout and records the charge; both writes share a
// transaction.

func (s *estanciaService) AgregarHorasExtra(ctx context.Context, caller Caller, estanciaID uuid.UUID, req dto.HorasExtraRequest) (*dto.EstanciaResponse, error) {
	if !tieneCapacidad(caller.Rol, capOperarCaja) {
		return nil, apierror.Permission("no tiene permiso para agregar horas extra")
	}
	if req.Horas <= 0 {
		return nil, apierror.Validation("las horas extra deben ser mayores a cero")
	}
	if req.PrecioHora.IsNegative() {
		return nil, apierror.Validation("el precio por hora no puede ser negativo")
	}

	if _, err := s.turnoActivo(ctx); err != nil {
		return nil, err
	}

	estancia, err := s.repo.FindByID(ctx, estanciaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("estancia no encontrada")
		}
		return nil, err
	}
	if !estancia.Activa {
		return nil, apierror.Conflict("la estancia ya esta cerrada")
	}

	total := req.PrecioHora.Mul(decimalFromInt(req.Horas))
	estancia.HoraSalidaProgramada = estancia.HoraSalidaProgramada.Add(time.Duration(req.Horas) * time.Hour)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		turno, err := s.turnoEnTx(tx)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateTx(tx, estancia); err != nil {
			return err
		}
		mov := &model.MovimientoCaja{
			TurnoID:    turno.ID,
			Tipo:       model.MovimientoExtra,
			Monto:      total,
			MetodoPago: req.MetodoPago,
			EstanciaID: &estancia.ID,
		}
		if err := validarMovimiento(mov); err != nil {
			return err
		}
		return s.caja.CreateMovimientoTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := estanciaToResponse(estancia)
	return &resp, nil
}

// ── Cerrar ───────────────────────────────────────────────────────────────────
// Pure status change: the stay's charges were recorded at open / extra-hours
// time. The closing shift may differ from the opening one: a stay opened on
// the day shift closes on the night shift routinely.

func (s *estanciaService) Cerrar(ctx context.Context, caller Caller, estanciaID uuid.UUID, req dto.CerrarEstanciaRequest) (*dto.EstanciaResponse, error) {
	if !tieneCapacidad(caller.Rol, capOperarCaja) {
		return nil, apierror.Permission("no tiene permiso para cerrar estancias")
	}

	if _, err := s.turnoActivo(ctx); err != nil {
		return nil, err
	}

	estancia, err := s.repo.FindByID(ctx, estanciaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("estancia no encontrada")
		}
		return nil, err
	}
	if !estancia.Activa {
		return nil, apierror.Conflict("la estancia ya esta cerrada")
	}

	salida := time.Now()
	if req.HoraSalidaReal != nil {
		parsed, err := time.Parse(time.RFC3339, *req.HoraSalidaReal)
		if err != nil {
			return nil, apierror.Validation("hora_salida_real invalida (se espera RFC 3339)")
		}
		salida = parsed
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		turno, err := s.turnoEnTx(tx)
		if err != nil {
			return err
		}
		estancia.HoraSalidaReal = &salida
		estancia.TurnoCierreID = &turno.ID
		estancia.Activa = false
		return s.repo.UpdateTx(tx, estancia)
	}); err != nil {
		return nil, err
	}

	if s.panel != nil {
		s.panel.Invalidar(ctx)
	}

	resp := estanciaToResponse(estancia)
	return &resp, nil
}

func (s *estanciaService) ListarActivas(ctx context.Context) ([]dto.EstanciaResponse, error) {
	estancias, err := s.repo.ListActivas(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EstanciaResponse, len(estancias))
	for i := range estancias {
		resp[i] = estanciaToResponse(&estancias[i])
	}
	return resp, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func estanciaToResponse(e *model.Estancia) dto.EstanciaResponse {
	resp := dto.EstanciaResponse{
		ID:                   e.ID.String(),
		TurnoInicioID:        e.TurnoInicioID.String(),
		HoraEntrada:          e.HoraEntrada.Format(time.RFC3339),
		HoraSalidaProgramada: e.HoraSalidaProgramada.Format(time.RFC3339),
		Activa:               e.Activa,
	}
	if e.Habitacion != nil {
		resp.Habitacion = e.Habitacion.Numero
	}
	if e.Tarifa != nil {
		resp.Tarifa = e.Tarifa.Nombre
	}
	if e.TurnoCierreID != nil {
		id := e.TurnoCierreID.String()
		resp.TurnoCierreID = &id
	}
	if e.HoraSalidaReal != nil {
		t := e.HoraSalidaReal.Format(time.RFC3339)
		resp.HoraSalidaReal = &t
	}
	return resp
}
