package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository/postgres"
)

func TestOfferRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOfferRepository(db)
	ctx := context.Background()

	offer := &domain.RentalOffer{MissionID: 7, VehicleID: 2, SupplierID: 10, Status: domain.OfferStatusPending}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rental_offers").
			WithArgs(offer.MissionID, offer.VehicleID, offer.SupplierID, string(offer.Status)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))

		err := repo.Create(ctx, offer)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), offer.ID)
	})

	t.Run("Second offer for mission conflicts", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rental_offers").
			WithArgs(offer.MissionID, offer.VehicleID, offer.SupplierID, string(offer.Status)).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, offer)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		assert.Contains(t, err.Error(), "mission 7")
	})
}

func TestOfferRepository_Decide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOfferRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_offers SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(string(domain.OfferStatusAccepted), int32(3), string(domain.OfferStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Decide(ctx, 3, domain.OfferStatusAccepted)
		assert.NoError(t, err)
	})

	t.Run("Already decided", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_offers SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(string(domain.OfferStatusRejected), int32(3), string(domain.OfferStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM rental_offers WHERE id = \\$1").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACCEPTED"))

		err := repo.Decide(ctx, 3, domain.OfferStatusRejected)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	})
}
