package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"

	"github.com/lib/pq"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const (
	contractColumns          = `id, mission_id, offer_id, user_id, vehicle_id, start_date, end_date, status, signed_at`
	contractColumnsQualified = `c.id, c.mission_id, c.offer_id, c.user_id, c.vehicle_id, c.start_date, c.end_date, c.status, c.signed_at`
)

func scanContract(row interface{ Scan(...any) error }, c *domain.Contract) error {
	return row.Scan(&c.ID, &c.MissionID, &c.OfferID, &c.UserID, &c.VehicleID, &c.StartDate, &c.EndDate, &c.Status, &c.SignedAt)
}

// CreateAssigning runs the conflict check, the insert, and the vehicle flag
// flip in one transaction. The vehicle row is locked first so two concurrent
// generations for the same vehicle serialize on it; the second one then sees
// the first one's committed contract in the overlap check.
func (r *contractRepository) CreateAssigning(ctx context.Context, c *domain.Contract) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback()

	var isAssigned bool
	err = tx.QueryRowContext(ctx, `SELECT is_assigned FROM vehicles WHERE id = $1 FOR UPDATE`, c.VehicleID).Scan(&isAssigned)
	if err != nil {
		return notFoundOr(err, "vehicle %d not found", c.VehicleID)
	}

	// Inclusive-boundary overlap: [a,b] and [c,d] collide iff a <= d && c <= b.
	var overlapping int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contracts WHERE vehicle_id = $1 AND status = $2 AND start_date <= $4 AND $3 <= end_date`,
		c.VehicleID, domain.ContractStatusActive, c.StartDate, c.EndDate,
	).Scan(&overlapping)
	if err != nil {
		return storeErr(err)
	}
	if overlapping > 0 {
		return apperr.Conflict("vehicle %d is already assigned during this period", c.VehicleID)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO contracts (mission_id, offer_id, user_id, vehicle_id, start_date, end_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, signed_at`,
		c.MissionID, c.OfferID, c.UserID, c.VehicleID, c.StartDate, c.EndDate, c.Status,
	).Scan(&c.ID, &c.SignedAt)
	if err != nil {
		return storeErr(err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE vehicles SET is_assigned = TRUE WHERE id = $1`, c.VehicleID); err != nil {
		return storeErr(err)
	}

	return storeErr(tx.Commit())
}

func (r *contractRepository) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	c := &domain.Contract{}
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	if err := scanContract(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, notFoundOr(err, "contract %d not found", id)
	}
	return c, nil
}

func (r *contractRepository) GetDetails(ctx context.Context, id int32) (*domain.ContractDetails, error) {
	contract, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &domain.ContractDetails{Contract: *contract}

	err = scanVehicle(r.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, contract.VehicleID), &d.Vehicle)
	if err != nil {
		return nil, notFoundOr(err, "vehicle %d not found", contract.VehicleID)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role FROM users WHERE id = $1`, contract.UserID,
	).Scan(&d.User.ID, &d.User.Name, &d.User.Email, &d.User.PasswordHash, &d.User.Role)
	if err != nil {
		return nil, notFoundOr(err, "user %d not found", contract.UserID)
	}

	supplier := &domain.User{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role FROM users WHERE id = $1`, d.Vehicle.SupplierID,
	).Scan(&supplier.ID, &supplier.Name, &supplier.Email, &supplier.PasswordHash, &supplier.Role)
	switch {
	case err == nil:
		d.Supplier = supplier
	case errors.Is(err, sql.ErrNoRows):
		// Supplier account removed; the contract detail is still valid.
	default:
		return nil, storeErr(err)
	}

	return d, nil
}

// Terminate closes one ACTIVE contract. The vehicle flag is recomputed from
// the remaining ACTIVE contracts so back-to-back assignments stay correct.
func (r *contractRepository) Terminate(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback()

	var vehicleID int32
	var status domain.ContractStatus
	err = tx.QueryRowContext(ctx, `SELECT vehicle_id, status FROM contracts WHERE id = $1 FOR UPDATE`, id).Scan(&vehicleID, &status)
	if err != nil {
		return notFoundOr(err, "contract %d not found", id)
	}
	if status != domain.ContractStatusActive {
		return apperr.InvalidState("contract %d is not active: %s", id, status)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE contracts SET status = $1 WHERE id = $2`, domain.ContractStatusTerminated, id); err != nil {
		return storeErr(err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vehicles v SET is_assigned = EXISTS (SELECT 1 FROM contracts c WHERE c.vehicle_id = v.id AND c.status = $1) WHERE v.id = $2`,
		domain.ContractStatusActive, vehicleID)
	if err != nil {
		return storeErr(err)
	}

	return storeErr(tx.Commit())
}

// TerminateExpired is the reclaimer's store operation: one transaction per
// run, idempotent, a run with nothing to do commits an empty transaction.
func (r *contractRepository) TerminateExpired(ctx context.Context, today time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr(err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`UPDATE contracts SET status = $1 WHERE status = $2 AND end_date < $3 RETURNING vehicle_id`,
		domain.ContractStatusTerminated, domain.ContractStatusActive, today,
	)
	if err != nil {
		return 0, storeErr(err)
	}

	var vehicleIDs []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, storeErr(err)
		}
		vehicleIDs = append(vehicleIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, storeErr(err)
	}

	if len(vehicleIDs) > 0 {
		// Release only vehicles with no other ACTIVE contract remaining.
		_, err = tx.ExecContext(ctx,
			`UPDATE vehicles v SET is_assigned = FALSE
			 WHERE v.id = ANY($1)
			   AND NOT EXISTS (SELECT 1 FROM contracts c WHERE c.vehicle_id = v.id AND c.status = $2)`,
			pq.Array(vehicleIDs), domain.ContractStatusActive)
		if err != nil {
			return 0, storeErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr(err)
	}
	return len(vehicleIDs), nil
}

func (r *contractRepository) List(ctx context.Context) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY signed_at DESC`
	return r.queryContracts(ctx, query)
}

func (r *contractRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE user_id = $1 ORDER BY signed_at DESC`
	return r.queryContracts(ctx, query, userID)
}

func (r *contractRepository) ListBySupplier(ctx context.Context, supplierID int32) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumnsQualified + ` FROM contracts c
	          JOIN vehicles v ON c.vehicle_id = v.id
	          WHERE v.supplier_id = $1 ORDER BY c.signed_at DESC`
	return r.queryContracts(ctx, query, supplierID)
}

func (r *contractRepository) Search(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumnsQualified + ` FROM contracts c JOIN vehicles v ON c.vehicle_id = v.id WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND c.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.SupplierID != nil {
		query += fmt.Sprintf(" AND v.supplier_id = $%d", argIdx)
		args = append(args, *filter.SupplierID)
		argIdx++
	}
	if filter.StartFrom != nil && filter.EndUntil != nil {
		query += fmt.Sprintf(" AND c.start_date >= $%d AND c.end_date <= $%d", argIdx, argIdx+1)
		args = append(args, *filter.StartFrom, *filter.EndUntil)
		argIdx += 2
	}
	query += " ORDER BY c.signed_at DESC"

	return r.queryContracts(ctx, query, args...)
}

func (r *contractRepository) queryContracts(ctx context.Context, query string, args ...interface{}) ([]domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := scanContract(rows, &c); err != nil {
			return nil, storeErr(err)
		}
		contracts = append(contracts, c)
	}
	return contracts, storeErr(rows.Err())
}
