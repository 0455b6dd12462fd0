package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitacionRepository interface {
	Create(ctx context.Context, h *model.Habitacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Habitacion, error)
	SetActiva(ctx context.Context, id uuid.UUID, activa bool) error

	CreateTipo(ctx context.Context, t *model.TipoHabitacion) error
	FindTipoByID(ctx context.Context, id uuid.UUID) (*model.TipoHabitacion, error)
	ListTipos(ctx context.Context) ([]model.TipoHabitacion, error)
	SetTipoActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type habitacionRepo struct{ db *gorm.DB }

func NewHabitacionRepository(db *gorm.DB) HabitacionRepository { return &habitacionRepo{db: db} }

func (r *habitacionRepo) Create(ctx context.Context, h *model.Habitacion) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *habitacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error) {
	var h model.Habitacion
	err := r.db.WithContext(ctx).Preload("Tipo").First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *habitacionRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Habitacion, error) {
	q := r.db.WithContext(ctx).Preload("Tipo").Order("numero ASC")
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	var habitaciones []model.Habitacion
	err := q.Find(&habitaciones).Error
	return habitaciones, err
}

func (r *habitacionRepo) SetActiva(ctx context.Context, id uuid.UUID, activa bool) error {
	return r.db.WithContext(ctx).Model(&model.Habitacion{}).
		Where("id = ?", id).Update("activa", activa).Error
}

func (r *habitacionRepo) CreateTipo(ctx context.Context, t *model.TipoHabitacion) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *habitacionRepo) FindTipoByID(ctx context.Context, id uuid.UUID) (*model.TipoHabitacion, error) {
	var t model.TipoHabitacion
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *habitacionRepo) ListTipos(ctx context.Context) ([]model.TipoHabitacion, error) {
	var tipos []model.TipoHabitacion
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *habitacionRepo) SetTipoActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.TipoHabitacion{}).
		Where("id = ?", id).Update("activo", activo).Error
}
