package repository

import (
	"context"
	"errors"
	"time"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTurnoYaCerrado reports a close that lost the race: the shift was already
// flipped by a concurrent transaction.
var ErrTurnoYaCerrado = errors.New("turno ya cerrado")

// TurnoFilter narrows the admin shift listing.
type TurnoFilter struct {
	UsuarioID *uuid.UUID
	Activo    *bool
	Desde     *time.Time
	Hasta     *time.Time
}

type TurnoRepository interface {
	// Create inserts a new shift. The partial unique index uq_turnos_activo
	// makes a second concurrent insert fail with a duplicate-key error.
	Create(ctx context.Context, t *model.Turno) error
	FindActivo(ctx context.Context) (*model.Turno, error)
	// FindActivoTx loads the active shift inside tx with FOR UPDATE. Cerrar
	// uses it so concurrent closes serialize on the row.
	FindActivoTx(tx *gorm.DB) (*model.Turno, error)
	// FindActivoCompartidoTx takes a shared row lock. Movement writers hold it
	// until their transaction commits, so a concurrent close either waits for
	// the movement or already flipped the shift, never both.
	FindActivoCompartidoTx(tx *gorm.DB) (*model.Turno, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	// CerrarTx persists the computed close fields with an activo guard in the
	// WHERE clause; zero rows affected means the close lost the race.
	CerrarTx(tx *gorm.DB, t *model.Turno) error
	List(ctx context.Context, f TurnoFilter) ([]model.Turno, error)
	DB() *gorm.DB
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindActivo(ctx context.Context) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Preload("Usuario").Where("activo = true").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) FindActivoTx(tx *gorm.DB) (*model.Turno, error) {
	var t model.Turno
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("activo = true").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) FindActivoCompartidoTx(tx *gorm.DB) (*model.Turno, error) {
	var t model.Turno
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Where("activo = true").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Preload("Usuario").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) CerrarTx(tx *gorm.DB, t *model.Turno) error {
	res := tx.Model(&model.Turno{}).
		Where("id = ? AND activo = true", t.ID).
		Updates(map[string]interface{}{
			"activo":             false,
			"fecha_fin":          t.FechaFin,
			"sueldo_reportado":   t.SueldoReportado,
			"efectivo_esperado":  t.EfectivoEsperado,
			"efectivo_reportado": t.EfectivoReportado,
			"diferencia":         t.Diferencia,
			"caja_final":         t.CajaFinal,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTurnoYaCerrado
	}
	return nil
}

func (r *turnoRepo) List(ctx context.Context, f TurnoFilter) ([]model.Turno, error) {
	q := r.db.WithContext(ctx).Preload("Usuario").Order("fecha_inicio DESC")
	if f.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *f.UsuarioID)
	}
	if f.Activo != nil {
		q = q.Where("activo = ?", *f.Activo)
	}
	if f.Desde != nil {
		q = q.Where("fecha_inicio >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha_inicio < ?", *f.Hasta)
	}
	var turnos []model.Turno
	err := q.Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) DB() *gorm.DB { return r.db }
