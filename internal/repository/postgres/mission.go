package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

type missionRepository struct {
	db *sql.DB
}

func NewMissionRepository(db *sql.DB) repository.MissionRepository {
	return &missionRepository{db: db}
}

const missionColumns = `id, user_id, vehicle_id, start_date, end_date, reason, status, created_at`

func scanMission(row interface{ Scan(...any) error }, m *domain.MissionRequest) error {
	return row.Scan(&m.ID, &m.UserID, &m.VehicleID, &m.StartDate, &m.EndDate, &m.Reason, &m.Status, &m.CreatedAt)
}

func (r *missionRepository) Create(ctx context.Context, m *domain.MissionRequest) error {
	query := `INSERT INTO mission_requests (user_id, vehicle_id, start_date, end_date, reason, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, m.UserID, m.VehicleID, m.StartDate, m.EndDate, m.Reason, m.Status).Scan(&m.ID, &m.CreatedAt)
	return storeErr(err)
}

func (r *missionRepository) GetByID(ctx context.Context, id int32) (*domain.MissionRequest, error) {
	m := &domain.MissionRequest{}
	query := `SELECT ` + missionColumns + ` FROM mission_requests WHERE id = $1`
	if err := scanMission(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		return nil, notFoundOr(err, "mission %d not found", id)
	}
	return m, nil
}

// Decide guards the PENDING precondition in the UPDATE itself so that two
// concurrent decisions cannot both take effect.
func (r *missionRepository) Decide(ctx context.Context, id int32, status domain.MissionStatus) error {
	query := `UPDATE mission_requests SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, status, id, domain.MissionStatusPending)
	if err != nil {
		return storeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		// Either the mission does not exist or it was already decided.
		var current domain.MissionStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM mission_requests WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("mission %d not found", id)
		}
		if err != nil {
			return storeErr(err)
		}
		return apperr.InvalidState("mission %d already decided: %s", id, current)
	}
	return nil
}

func (r *missionRepository) ListAll(ctx context.Context) ([]domain.MissionRequest, error) {
	query := `SELECT ` + missionColumns + ` FROM mission_requests ORDER BY created_at DESC`
	return r.queryMissions(ctx, query)
}

func (r *missionRepository) ListByUser(ctx context.Context, userID int32) ([]domain.MissionRequest, error) {
	query := `SELECT ` + missionColumns + ` FROM mission_requests WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryMissions(ctx, query, userID)
}

func (r *missionRepository) ListApprovedWithoutContract(ctx context.Context) ([]domain.MissionRequest, error) {
	query := `SELECT ` + missionColumns + ` FROM mission_requests m
	          WHERE m.status = $1
	            AND NOT EXISTS (SELECT 1 FROM contracts c WHERE c.mission_id = m.id)
	          ORDER BY m.created_at`
	return r.queryMissions(ctx, query, domain.MissionStatusApproved)
}

func (r *missionRepository) queryMissions(ctx context.Context, query string, args ...interface{}) ([]domain.MissionRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var missions []domain.MissionRequest
	for rows.Next() {
		var m domain.MissionRequest
		if err := scanMission(rows, &m); err != nil {
			return nil, storeErr(err)
		}
		missions = append(missions, m)
	}
	return missions, storeErr(rows.Err())
}
