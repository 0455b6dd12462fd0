package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TarifaRepository interface {
	Create(ctx context.Context, t *model.Tarifa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tarifa, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Tarifa, error)
	Update(ctx context.Context, t *model.Tarifa) error
	SetActiva(ctx context.Context, id uuid.UUID, activa bool) error
}

type tarifaRepo struct{ db *gorm.DB }

func NewTarifaRepository(db *gorm.DB) TarifaRepository { return &tarifaRepo{db: db} }

func (r *tarifaRepo) Create(ctx context.Context, t *model.Tarifa) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tarifaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tarifa, error) {
	var t model.Tarifa
	err := r.db.WithContext(ctx).Preload("TipoHabitacion").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tarifaRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Tarifa, error) {
	q := r.db.WithContext(ctx).Preload("TipoHabitacion").Order("nombre ASC")
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	var tarifas []model.Tarifa
	err := q.Find(&tarifas).Error
	return tarifas, err
}

func (r *tarifaRepo) Update(ctx context.Context, t *model.Tarifa) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tarifaRepo) SetActiva(ctx context.Context, id uuid.UUID, activa bool) error {
	return r.db.WithContext(ctx).Model(&model.Tarifa{}).
		Where("id = ?", id).Update("activa", activa).Error
}
