package infra

import (
	"fmt"

	"stockledger/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches for the
// pieces GORM cannot express (CHECK constraints, sequence floors).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

// RunMigrations creates the schema and applies the constraint patches.
// Also used by the integration test suite against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Supplier{},
		&model.Product{},
		&model.StockTransaction{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
// Each statement uses existence guards so re-running on an already-patched DB
// is a no-op.
//
// The non-negative stock CHECK is the store-level half of the invariant guard:
// even a raw UPDATE that bypasses ProductRepository.ApplyStockDeltaTx cannot
// leave stock_qty below zero.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"non-negative stock guard", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_stock_qty_non_negative') THEN
    ALTER TABLE products
      ADD CONSTRAINT chk_products_stock_qty_non_negative CHECK (stock_qty >= 0);
  END IF;
END $$`},
		{"strictly positive ledger quantity", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_stock_transactions_quantity_positive') THEN
    ALTER TABLE stock_transactions
      ADD CONSTRAINT chk_stock_transactions_quantity_positive CHECK (quantity > 0);
  END IF;
END $$`},
		// Product ids start above the supplier range. Cosmetic, but seed data
		// and the demo fixtures rely on the 1001+ numbering.
		{"product id sequence floor", `
DO $$ BEGIN
  IF (SELECT last_value FROM products_id_seq) < 1000 THEN
    PERFORM setval('products_id_seq', 1000, true);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
