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

type HabitacionService interface {
	CrearTipo(ctx context.Context, req dto.CrearTipoHabitacionRequest) (*dto.TipoHabitacionResponse, error)
	ListarTipos(ctx context.Context) ([]dto.TipoHabitacionResponse, error)
	DesactivarTipo(ctx context.Context, id uuid.UUID) error

	Crear(ctx context.Context, req dto.CrearHabitacionRequest) (*dto.HabitacionResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.HabitacionResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type habitacionService struct {
	repo     repository.HabitacionRepository
	estancia repository.EstanciaRepository
}

func NewHabitacionService(repo repository.HabitacionRepository, estancia repository.EstanciaRepository) HabitacionService {
	return &habitacionService{repo: repo, estancia: estancia}
}

// ── Tipos de habitacion ──────────────────────────────────────────────────────

func (s *habitacionService) CrearTipo(ctx context.Context, req dto.CrearTipoHabitacionRequest) (*dto.TipoHabitacionResponse, error) {
	tipo := &model.TipoHabitacion{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.CreateTipo(ctx, tipo); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe un tipo de habitacion con ese nombre")
		}
		return nil, err
	}
	return &dto.TipoHabitacionResponse{
		ID: tipo.ID.String(), Nombre: tipo.Nombre,
		Descripcion: tipo.Descripcion, Activo: tipo.Activo,
	}, nil
}

func (s *habitacionService) ListarTipos(ctx context.Context) ([]dto.TipoHabitacionResponse, error) {
	tipos, err := s.repo.ListTipos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoHabitacionResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = dto.TipoHabitacionResponse{
			ID: t.ID.String(), Nombre: t.Nombre,
			Descripcion: t.Descripcion, Activo: t.Activo,
		}
	}
	return resp, nil
}

func (s *habitacionService) DesactivarTipo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindTipoByID(ctx, id); err != nil {
		return apierror.NotFound("tipo de habitacion no encontrado")
	}
	return s.repo.SetTipoActivo(ctx, id, false)
}

// ── Habitaciones ─────────────────────────────────────────────────────────────

func (s *habitacionService) Crear(ctx context.Context, req dto.CrearHabitacionRequest) (*dto.HabitacionResponse, error) {
	tipoID, err := uuid.Parse(req.TipoID)
	if err != nil {
		return nil, apierror.Validation("tipo_id invalido")
	}
	tipo, err := s.repo.FindTipoByID(ctx, tipoID)
	if err != nil {
		return nil, apierror.NotFound("tipo de habitacion no encontrado")
	}
	if !tipo.Activo {
		return nil, apierror.Conflict("no se puede asignar una habitacion a un tipo inactivo")
	}

	habitacion := &model.Habitacion{Numero: req.Numero, TipoID: tipoID, Activa: true}
	if err := s.repo.Create(ctx, habitacion); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe una habitacion con ese numero")
		}
		return nil, err
	}
	return &dto.HabitacionResponse{
		ID: habitacion.ID.String(), Numero: habitacion.Numero,
		Tipo: tipo.Nombre, Activa: habitacion.Activa,
	}, nil
}

func (s *habitacionService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.HabitacionResponse, error) {
	habitaciones, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HabitacionResponse, len(habitaciones))
	for i, h := range habitaciones {
		tipo := ""
		if h.Tipo != nil {
			tipo = h.Tipo.Nombre
		}
		resp[i] = dto.HabitacionResponse{
			ID: h.ID.String(), Numero: h.Numero, Tipo: tipo, Activa: h.Activa,
		}
	}
	return resp, nil
}

// Desactivar blocks while the room is occupied; the active stay holds a
// protective reference.
func (s *habitacionService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("habitacion no encontrada")
	}
	if _, err := s.estancia.FindActivaPorHabitacion(ctx, id); err == nil {
		return apierror.Conflict("la habitacion tiene una estancia activa")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.repo.SetActiva(ctx, id, false)
}

func (s *habitacionService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("habitacion no encontrada")
	}
	return s.repo.SetActiva(ctx, id, true)
}
