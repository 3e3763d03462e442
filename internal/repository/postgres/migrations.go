package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		email VARCHAR(128) NOT NULL UNIQUE,
		password_hash VARCHAR(256) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'USER'
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id SERIAL PRIMARY KEY,
		supplier_id INTEGER NOT NULL REFERENCES users(id),
		make VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		fuel_type VARCHAR(50) NOT NULL,
		mileage INTEGER NOT NULL,
		daily_price_cents INTEGER NOT NULL,
		image_path VARCHAR(255) NOT NULL DEFAULT '',
		is_assigned BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS mission_requests (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS rental_offers (
		id SERIAL PRIMARY KEY,
		mission_id INTEGER NOT NULL UNIQUE REFERENCES mission_requests(id),
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		supplier_id INTEGER NOT NULL REFERENCES users(id),
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id SERIAL PRIMARY KEY,
		mission_id INTEGER NOT NULL REFERENCES mission_requests(id),
		offer_id INTEGER REFERENCES rental_offers(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
		signed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_vehicle_status ON contracts (vehicle_id, status);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_end_date ON contracts (end_date) WHERE status = 'ACTIVE';`,
	`CREATE INDEX IF NOT EXISTS idx_missions_status ON mission_requests (status);`,
	`CREATE INDEX IF NOT EXISTS idx_offers_supplier ON rental_offers (supplier_id);`,
}

// Migrate applies the schema idempotently. Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrationStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
