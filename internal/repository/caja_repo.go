package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaRepository persists the append-only cash ledger. There is deliberately
// no Update or Delete: movements are immutable once written.
type CajaRepository interface {
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error)
	// SumPorMetodo returns SUM(monto) grouped by metodo_pago for one shift.
	// Absent methods map to zero.
	SumPorMetodo(ctx context.Context, turnoID uuid.UUID) (map[string]decimal.Decimal, error)
	CountMovimientos(ctx context.Context, turnoID uuid.UUID) (int64, error)
	// SumPorMetodoTx and CountMovimientosTx run the same aggregates inside a
	// transaction; the close decides on them and must not see later inserts.
	SumPorMetodoTx(tx *gorm.DB, turnoID uuid.UUID) (map[string]decimal.Decimal, error)
	CountMovimientosTx(tx *gorm.DB, turnoID uuid.UUID) (int64, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("turno_id = ?", turnoID).
		Order("fecha ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) SumPorMetodo(ctx context.Context, turnoID uuid.UUID) (map[string]decimal.Decimal, error) {
	return sumPorMetodo(r.db.WithContext(ctx), turnoID)
}

func (r *cajaRepo) SumPorMetodoTx(tx *gorm.DB, turnoID uuid.UUID) (map[string]decimal.Decimal, error) {
	return sumPorMetodo(tx, turnoID)
}

func (r *cajaRepo) CountMovimientos(ctx context.Context, turnoID uuid.UUID) (int64, error) {
	return countMovimientos(r.db.WithContext(ctx), turnoID)
}

func (r *cajaRepo) CountMovimientosTx(tx *gorm.DB, turnoID uuid.UUID) (int64, error) {
	return countMovimientos(tx, turnoID)
}

func sumPorMetodo(db *gorm.DB, turnoID uuid.UUID) (map[string]decimal.Decimal, error) {
	type row struct {
		MetodoPago string
		Total      decimal.Decimal
	}
	var rows []row
	err := db.
		Model(&model.MovimientoCaja{}).
		Select("metodo_pago, COALESCE(SUM(monto), 0) AS total").
		Where("turno_id = ?", turnoID).
		Group("metodo_pago").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := map[string]decimal.Decimal{
		model.PagoEfectivo:      decimal.Zero,
		model.PagoTransferencia: decimal.Zero,
	}
	for _, r := range rows {
		sums[r.MetodoPago] = r.Total
	}
	return sums, nil
}

func countMovimientos(db *gorm.DB, turnoID uuid.UUID) (int64, error) {
	var n int64
	err := db.
		Model(&model.MovimientoCaja{}).
		Where("turno_id = ?", turnoID).
		Count(&n).Error
	return n, err
}
