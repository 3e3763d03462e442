package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository/postgres"
)

func TestMissionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMissionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mission := &domain.MissionRequest{
			UserID:    1,
			VehicleID: 2,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			Reason:    "client visit",
			Status:    domain.MissionStatusPending,
		}

		mock.ExpectQuery("INSERT INTO mission_requests").
			WithArgs(mission.UserID, mission.VehicleID, mission.StartDate, mission.EndDate, mission.Reason, string(mission.Status)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))

		err := repo.Create(ctx, mission)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), mission.ID)
	})
}

func TestMissionRepository_Decide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMissionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE mission_requests SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(string(domain.MissionStatusApproved), int32(7), string(domain.MissionStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Decide(ctx, 7, domain.MissionStatusApproved)
		assert.NoError(t, err)
	})

	t.Run("Already decided", func(t *testing.T) {
		mock.ExpectExec("UPDATE mission_requests SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(string(domain.MissionStatusRejected), int32(7), string(domain.MissionStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM mission_requests WHERE id = \\$1").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED"))

		err := repo.Decide(ctx, 7, domain.MissionStatusRejected)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
		assert.Contains(t, err.Error(), "APPROVED")
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE mission_requests SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(string(domain.MissionStatusApproved), int32(404), string(domain.MissionStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM mission_requests WHERE id = \\$1").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		err := repo.Decide(ctx, 404, domain.MissionStatusApproved)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestMissionRepository_ListApprovedWithoutContract(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMissionRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "start_date", "end_date", "reason", "status", "created_at"}).
		AddRow(7, 1, 2, time.Now(), time.Now(), "client visit", "APPROVED", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM mission_requests m").
		WithArgs(string(domain.MissionStatusApproved)).
		WillReturnRows(rows)

	missions, err := repo.ListApprovedWithoutContract(ctx)
	assert.NoError(t, err)
	assert.Len(t, missions, 1)
	assert.Equal(t, domain.MissionStatusApproved, missions[0].Status)
}
