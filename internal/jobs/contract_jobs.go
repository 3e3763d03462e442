package jobs

import (
	"context"
	"time"

	"fleetrental-backend/internal/logger"
)

// ReclaimExpiredContracts terminates ACTIVE contracts whose end date has
// passed and releases their vehicles. Cron entry point; returns nothing.
func (jr *JobRunner) ReclaimExpiredContracts() {
	jr.runWithRecovery("ReclaimExpiredContracts", func() {
		if _, err := jr.RunReclaimExpired(context.Background()); err != nil {
			logger.Error("Failed to reclaim expired contracts", "error", err)
		}
	})
}

// RunReclaimExpired performs one reclaim pass and reports the number of
// contracts terminated. Zero is a normal outcome on a quiet day; only a
// store failure is an error.
func (jr *JobRunner) RunReclaimExpired(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, jr.config.Database.QueryTimeout())
	defer cancel()

	// Compare dates, not timestamps: a contract is expired only once its
	// end date is strictly before today, so a rental stays live through
	// its final day no matter when the job fires.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	count, err := jr.store.TerminateExpired(ctx, today)
	if err != nil {
		return 0, err
	}

	if count == 0 {
		logger.Info("No expired contracts to reclaim")
	} else {
		logger.Info("Reclaimed expired contracts", "count", count)
	}
	return count, nil
}
