package postgres

import (
	"database/sql"
	"errors"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.MissionRepository
	repository.OfferRepository
	repository.ContractRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		VehicleRepository:  NewVehicleRepository(db),
		MissionRepository:  NewMissionRepository(db),
		OfferRepository:    NewOfferRepository(db),
		ContractRepository: NewContractRepository(db),
		StatsRepository:    NewStatsRepository(db),
	}
}

// storeErr maps driver failures into the shared taxonomy. Unique and
// exclusion violations become conflicts; anything else is a transient
// store failure whose detail stays out of caller-visible messages.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation", "exclusion_violation":
			return apperr.Conflict("already exists")
		}
	}
	return apperr.Unavailable(err)
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(format, args...)
	}
	return storeErr(err)
}
