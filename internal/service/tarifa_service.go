package service

import (
	"context"
	"errors"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TarifaService interface {
	Crear(ctx context.Context, req dto.CrearTarifaRequest) (*dto.TarifaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.TarifaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type tarifaService struct {
	repo       repository.TarifaRepository
	habitacion repository.HabitacionRepository
}

func NewTarifaService(repo repository.TarifaRepository, habitacion repository.HabitacionRepository) TarifaService {
	return &tarifaService{repo: repo, habitacion: habitacion}
}

func (s *tarifaService) Crear(ctx context.Context, req dto.CrearTarifaRequest) (*dto.TarifaResponse, error) {
	if req.Horas <= 0 {
		return nil, apierror.Validation("las horas de la tarifa deben ser mayores a cero")
	}
	if !req.Precio.IsPositive() {
		return nil, apierror.Validation("el precio debe ser mayor a cero")
	}
	// Nocturnal tariffs carry the time window; diurnal ones must not.
	if req.EsNocturna {
		if req.HoraInicioNocturna == nil || req.HoraFinNocturna == nil {
			return nil, apierror.Validation("las tarifas nocturnas deben tener horario definido")
		}
	} else if req.HoraInicioNocturna != nil || req.HoraFinNocturna != nil {
		return nil, apierror.Validation("las tarifas diurnas no deben tener horario nocturno")
	}

	tipoID, err := uuid.Parse(req.TipoHabitacionID)
	if err != nil {
		return nil, apierror.Validation("tipo_habitacion_id invalido")
	}
	tipo, err := s.habitacion.FindTipoByID(ctx, tipoID)
	if err != nil {
		return nil, apierror.NotFound("tipo de habitacion no encontrado")
	}
	if !tipo.Activo {
		return nil, apierror.Conflict("no se puede asignar una tarifa a un tipo de habitacion inactivo")
	}

	tarifa := &model.Tarifa{
		Nombre:             req.Nombre,
		Horas:              req.Horas,
		Precio:             req.Precio,
		EsNocturna:         req.EsNocturna,
		HoraInicioNocturna: req.HoraInicioNocturna,
		HoraFinNocturna:    req.HoraFinNocturna,
		TipoHabitacionID:   tipoID,
		Activa:             true,
	}
	if err := s.repo.Create(ctx, tarifa); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe una tarifa con ese nombre para este tipo de habitacion")
		}
		return nil, err
	}

	tarifa.TipoHabitacion = tipo
	resp := tarifaToResponse(tarifa)
	return &resp, nil
}

func (s *tarifaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.TarifaResponse, error) {
	tarifas, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TarifaResponse, len(tarifas))
	for i := range tarifas {
		resp[i] = tarifaToResponse(&tarifas[i])
	}
	return resp, nil
}

func (s *tarifaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("tarifa no encontrada")
	}
	return s.repo.SetActiva(ctx, id, false)
}

func (s *tarifaService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("tarifa no encontrada")
	}
	return s.repo.SetActiva(ctx, id, true)
}

func tarifaToResponse(t *model.Tarifa) dto.TarifaResponse {
	tipo := ""
	if t.TipoHabitacion != nil {
		tipo = t.TipoHabitacion.Nombre
	}
	return dto.TarifaResponse{
		ID:                 t.ID.String(),
		Nombre:             t.Nombre,
		Horas:              t.Horas,
		Precio:             t.Precio,
		EsNocturna:         t.EsNocturna,
		HoraInicioNocturna: t.HoraInicioNocturna,
		HoraFinNocturna:    t.HoraFinNocturna,
		TipoHabitacion:     tipo,
		Activa:             t.Activa,
	}
}
