package infra

import (
	"fmt"

	"hostalpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique indexes).
//
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey;
// the service layer maps those to the same Conflict its pre-checks raise.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the schema. Also used by integration tests against a
// throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.TipoHabitacion{},
		&model.Habitacion{},
		&model.Tarifa{},
		&model.Producto{},
		&model.Turno{},
		&model.Estancia{},
		&model.MovimientoCaja{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The two partial unique indexes are the authority for the single-active-shift
// and one-active-stay-per-room rules; the application pre-checks exist only to
// produce friendlier errors without a round trip to the constraint.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// at most one active shift in the whole system
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_turnos_activo') THEN
		    CREATE UNIQUE INDEX uq_turnos_activo ON turnos (activo) WHERE activo;
		  END IF;
		END $$`,
		// at most one active stay per room
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_estancias_habitacion_activa') THEN
		    CREATE UNIQUE INDEX uq_estancias_habitacion_activa ON estancias (habitacion_id) WHERE activa;
		  END IF;
		END $$`,
		// ledger queries are always per shift, oldest first
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimientos_caja_turno_fecha') THEN
		    CREATE INDEX idx_movimientos_caja_turno_fecha ON movimientos_caja (turno_id, fecha);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
