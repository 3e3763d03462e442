package jobs_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"fleetrental-backend/internal/config"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/jobs"
	"fleetrental-backend/internal/repository/postgres"
)

// dateArg matches only a time.Time with no clock component. The reclaim
// predicate is a strict date comparison, so a timestamp with hours on it
// would terminate contracts on their final day.
type dateArg struct{}

func (dateArg) Match(v driver.Value) bool {
	t, ok := v.(time.Time)
	return ok && t.Equal(t.Truncate(24*time.Hour))
}

func newRunner(t *testing.T) (*jobs.JobRunner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeoutSeconds = 5
	return jobs.NewJobRunner(postgres.NewStore(db), cfg), mock
}

func TestRunReclaimExpired(t *testing.T) {
	t.Run("Quiet day is a no-op", func(t *testing.T) {
		runner, mock := newRunner(t)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE contracts SET status = \\$1 WHERE status = \\$2 AND end_date < \\$3 RETURNING vehicle_id").
			WithArgs(string(domain.ContractStatusTerminated), string(domain.ContractStatusActive), dateArg{}).
			WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}))
		mock.ExpectCommit()

		count, err := runner.RunReclaimExpired(context.Background())
		assert.NoError(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reclaims past-due contracts with a date argument", func(t *testing.T) {
		runner, mock := newRunner(t)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE contracts SET status = \\$1 WHERE status = \\$2 AND end_date < \\$3 RETURNING vehicle_id").
			WithArgs(string(domain.ContractStatusTerminated), string(domain.ContractStatusActive), dateArg{}).
			WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}).AddRow(int32(4)))
		mock.ExpectExec("UPDATE vehicles v SET is_assigned = FALSE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		count, err := runner.RunReclaimExpired(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Store failure surfaces", func(t *testing.T) {
		runner, mock := newRunner(t)

		mock.ExpectBegin().WillReturnError(assert.AnError)

		_, err := runner.RunReclaimExpired(context.Background())
		assert.Error(t, err)
	})
}
