package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstanciaRepository interface {
	// CreateTx inserts a stay inside a sale transaction. The partial unique
	// index uq_estancias_habitacion_activa rejects a second active stay for
	// the same room with a duplicate-key error.
	CreateTx(tx *gorm.DB, e *model.Estancia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Estancia, error)
	FindActivaPorHabitacion(ctx context.Context, habitacionID uuid.UUID) (*model.Estancia, error)
	ListActivas(ctx context.Context) ([]model.Estancia, error)
	ListPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Estancia, error)
	UpdateTx(tx *gorm.DB, e *model.Estancia) error
	DB() *gorm.DB
}

type estanciaRepo struct{ db *gorm.DB }

func NewEstanciaRepository(db *gorm.DB) EstanciaRepository { return &estanciaRepo{db: db} }

func (r *estanciaRepo) CreateTx(tx *gorm.DB, e *model.Estancia) error {
	return tx.Create(e).Error
}

func (r *estanciaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Estancia, error) {
	var e model.Estancia
	err := r.db.WithContext(ctx).Preload("Habitacion").Preload("Tarifa").First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estanciaRepo) FindActivaPorHabitacion(ctx context.Context, habitacionID uuid.UUID) (*model.Estancia, error) {
	var e model.Estancia
	err := r.db.WithContext(ctx).
		Where("habitacion_id = ? AND activa = true", habitacionID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estanciaRepo) ListActivas(ctx context.Context) ([]model.Estancia, error) {
	var estancias []model.Estancia
	err := r.db.WithContext(ctx).
		Preload("Habitacion").Preload("Tarifa").
		Where("activa = true").
		Order("hora_entrada ASC").
		Find(&estancias).Error
	return estancias, err
}

func (r *estanciaRepo) ListPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Estancia, error) {
	var estancias []model.Estancia
	err := r.db.WithContext(ctx).
		Preload("Habitacion").Preload("Tarifa").
		Where("turno_inicio_id = ?", turnoID).
		Order("hora_entrada ASC").
		Find(&estancias).Error
	return estancias, err
}

func (r *estanciaRepo) UpdateTx(tx *gorm.DB, e *model.Estancia) error {
	return tx.Save(e).Error
}

func (r *estanciaRepo) DB() *gorm.DB { return r.db }
