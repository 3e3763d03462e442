package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, supplier_id, make, model, fuel_type, mileage, daily_price_cents, image_path, is_assigned`

func scanVehicle(row interface{ Scan(...any) error }, v *domain.Vehicle) error {
	return row.Scan(&v.ID, &v.SupplierID, &v.Make, &v.Model, &v.FuelType, &v.Mileage, &v.DailyPriceCents, &v.ImagePath, &v.IsAssigned)
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (supplier_id, make, model, fuel_type, mileage, daily_price_cents, image_path, is_assigned)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, v.SupplierID, v.Make, v.Model, v.FuelType, v.Mileage, v.DailyPriceCents, v.ImagePath).Scan(&v.ID)
	return storeErr(err)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	if err := scanVehicle(r.db.QueryRowContext(ctx, query, id), v); err != nil {
		return nil, notFoundOr(err, "vehicle %d not found", id)
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, fuel_type=$3, mileage=$4, daily_price_cents=$5, image_path=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, v.Make, v.Model, v.FuelType, v.Mileage, v.DailyPriceCents, v.ImagePath, v.ID)
	if err != nil {
		return storeErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFoundOr(sql.ErrNoRows, "vehicle %d not found", v.ID)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return storeErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFoundOr(sql.ErrNoRows, "vehicle %d not found", id)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`
	return r.queryVehicles(ctx, query)
}

func (r *vehicleRepository) ListBySupplier(ctx context.Context, supplierID int32) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE supplier_id = $1 ORDER BY id`
	return r.queryVehicles(ctx, query, supplierID)
}

func (r *vehicleRepository) ListAvailable(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE is_assigned = FALSE`
	args := []interface{}{}
	argIdx := 1

	if filter.SupplierID != nil {
		query += fmt.Sprintf(" AND supplier_id = $%d", argIdx)
		args = append(args, *filter.SupplierID)
		argIdx++
	}
	if filter.MaxPriceCents != nil {
		query += fmt.Sprintf(" AND daily_price_cents <= $%d", argIdx)
		args = append(args, *filter.MaxPriceCents)
		argIdx++
	}
	if filter.FuelType != "" {
		query += fmt.Sprintf(" AND fuel_type = $%d", argIdx)
		args = append(args, filter.FuelType)
		argIdx++
	}
	if filter.Make != "" {
		query += fmt.Sprintf(" AND make ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Make+"%")
		argIdx++
	}
	query += " ORDER BY id"

	return r.queryVehicles(ctx, query, args...)
}

func (r *vehicleRepository) queryVehicles(ctx context.Context, query string, args ...interface{}) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, storeErr(err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, storeErr(rows.Err())
}
