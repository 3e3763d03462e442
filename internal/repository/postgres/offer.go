package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, mission_id, vehicle_id, supplier_id, status, created_at`

func scanOffer(row interface{ Scan(...any) error }, o *domain.RentalOffer) error {
	return row.Scan(&o.ID, &o.MissionID, &o.VehicleID, &o.SupplierID, &o.Status, &o.CreatedAt)
}

func (r *offerRepository) Create(ctx context.Context, o *domain.RentalOffer) error {
	query := `INSERT INTO rental_offers (mission_id, vehicle_id, supplier_id, status)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, o.MissionID, o.VehicleID, o.SupplierID, o.Status).Scan(&o.ID, &o.CreatedAt)
	if apperr.IsKind(storeErr(err), apperr.KindConflict) {
		return apperr.Conflict("an offer already exists for mission %d", o.MissionID)
	}
	return storeErr(err)
}

func (r *offerRepository) GetByID(ctx context.Context, id int32) (*domain.RentalOffer, error) {
	o := &domain.RentalOffer{}
	query := `SELECT ` + offerColumns + ` FROM rental_offers WHERE id = $1`
	if err := scanOffer(r.db.QueryRowContext(ctx, query, id), o); err != nil {
		return nil, notFoundOr(err, "offer %d not found", id)
	}
	return o, nil
}

func (r *offerRepository) Decide(ctx context.Context, id int32, status domain.OfferStatus) error {
	query := `UPDATE rental_offers SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, status, id, domain.OfferStatusPending)
	if err != nil {
		return storeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		var current domain.OfferStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM rental_offers WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("offer %d not found", id)
		}
		if err != nil {
			return storeErr(err)
		}
		return apperr.InvalidState("offer %d already decided: %s", id, current)
	}
	return nil
}

func (r *offerRepository) ListBySupplier(ctx context.Context, supplierID int32) ([]domain.RentalOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM rental_offers WHERE supplier_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var offers []domain.RentalOffer
	for rows.Next() {
		var o domain.RentalOffer
		if err := scanOffer(rows, &o); err != nil {
			return nil, storeErr(err)
		}
		offers = append(offers, o)
	}
	return offers, storeErr(rows.Err())
}
