package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Snapshot(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_assigned) FROM vehicles`,
	).Scan(&stats.TotalVehicles, &stats.AssignedVehicles)
	if err != nil {
		return nil, storeErr(err)
	}
	stats.UnassignedVehicles = stats.TotalVehicles - stats.AssignedVehicles

	year, month := now.Year(), int(now.Month())

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(end_date - start_date), 0) FROM contracts
		 WHERE EXTRACT(MONTH FROM signed_at) = $1 AND EXTRACT(YEAR FROM signed_at) = $2`,
		month, year,
	).Scan(&stats.ContractsThisMonth, &stats.RentedDaysThisMonth)
	if err != nil {
		return nil, storeErr(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT EXTRACT(MONTH FROM signed_at)::int, COALESCE(SUM(end_date - start_date), 0)
		 FROM contracts WHERE EXTRACT(YEAR FROM signed_at) = $1
		 GROUP BY 1 ORDER BY 1`,
		year,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	daysByMonth := make(map[int]int32)
	for rows.Next() {
		var m int
		var days int32
		if err := rows.Scan(&m, &days); err != nil {
			return nil, storeErr(err)
		}
		daysByMonth[m] = days
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	for m := 1; m <= 12; m++ {
		label := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("Jan")
		stats.MonthlyRentedDays = append(stats.MonthlyRentedDays, domain.MonthRentedDays{Month: label, Days: daysByMonth[m]})
	}

	makeRows, err := r.db.QueryContext(ctx,
		`SELECT v.make, COUNT(c.id) FROM vehicles v
		 JOIN contracts c ON c.vehicle_id = v.id
		 GROUP BY v.make ORDER BY COUNT(c.id) DESC LIMIT 5`,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	defer makeRows.Close()

	for makeRows.Next() {
		var mc domain.MakeCount
		if err := makeRows.Scan(&mc.Make, &mc.Count); err != nil {
			return nil, storeErr(err)
		}
		stats.TopMakes = append(stats.TopMakes, mc)
	}
	return stats, storeErr(makeRows.Err())
}
