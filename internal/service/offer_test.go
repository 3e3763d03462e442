package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/notify"
	"fleetrental-backend/internal/service"
)

func newOfferService(offerRepo *MockOfferRepo, missionRepo *MockMissionRepo, vehicleRepo *MockVehicleRepo, userRepo *MockUserRepo) service.OfferService {
	return service.NewOfferService(offerRepo, missionRepo, vehicleRepo, userRepo, notify.NewDispatcher(nil, 8, 1))
}

func TestOfferService_Open(t *testing.T) {
	ctx := context.Background()
	adminID := int32(5)
	missionID := int32(7)
	supplierID := int32(10)

	admin := &domain.User{ID: adminID, Role: domain.RoleFleetAdmin}
	supplier := &domain.User{ID: supplierID, Name: "Garage", Email: "garage@test.com", Role: domain.RoleSupplier}
	mission := &domain.MissionRequest{
		ID:        missionID,
		UserID:    1,
		VehicleID: 2,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		Status:    domain.MissionStatusApproved,
	}
	vehicle := &domain.Vehicle{ID: 2, SupplierID: supplierID, Make: "Renault", Model: "Clio"}

	t.Run("Success", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newOfferService(offerRepo, missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, adminID).Return(admin, nil)
		missionRepo.On("GetByID", ctx, missionID).Return(mission, nil)
		vehicleRepo.On("GetByID", ctx, mission.VehicleID).Return(vehicle, nil)
		offerRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOffer")).Return(nil)
		userRepo.On("GetByID", ctx, supplierID).Return(supplier, nil)

		offer, err := svc.Open(ctx, missionID, adminID)
		assert.NoError(t, err)
		assert.NotNil(t, offer)
		assert.Equal(t, supplierID, offer.SupplierID)
		assert.Equal(t, missionID, offer.MissionID)
		assert.Equal(t, domain.OfferStatusPending, offer.Status)
	})

	t.Run("Mission not approved", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newOfferService(offerRepo, missionRepo, vehicleRepo, userRepo)

		pending := &domain.MissionRequest{ID: missionID, Status: domain.MissionStatusPending}
		userRepo.On("GetByID", ctx, adminID).Return(admin, nil)
		missionRepo.On("GetByID", ctx, missionID).Return(pending, nil)

		offer, err := svc.Open(ctx, missionID, adminID)
		assert.Nil(t, offer)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
		offerRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Second offer conflicts", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newOfferService(offerRepo, missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, adminID).Return(admin, nil)
		missionRepo.On("GetByID", ctx, missionID).Return(mission, nil)
		vehicleRepo.On("GetByID", ctx, mission.VehicleID).Return(vehicle, nil)
		offerRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOffer")).
			Return(apperr.Conflict("an offer already exists for mission %d", missionID))

		offer, err := svc.Open(ctx, missionID, adminID)
		assert.Nil(t, offer)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})
}

func TestOfferService_Decide(t *testing.T) {
	ctx := context.Background()
	offerID := int32(3)
	supplierID := int32(10)

	supplier := &domain.User{ID: supplierID, Name: "Garage", Email: "garage@test.com", Role: domain.RoleSupplier}
	offer := &domain.RentalOffer{ID: offerID, MissionID: 7, VehicleID: 2, SupplierID: supplierID, Status: domain.OfferStatusPending}
	mission := &domain.MissionRequest{ID: 7, UserID: 1, StartDate: time.Now(), EndDate: time.Now()}
	requester := &domain.User{ID: 1, Name: "Alice", Email: "alice@test.com"}

	t.Run("Accept", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newOfferService(offerRepo, missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, supplierID).Return(supplier, nil)
		offerRepo.On("GetByID", ctx, offerID).Return(offer, nil)
		offerRepo.On("Decide", ctx, offerID, domain.OfferStatusAccepted).Return(nil)
		missionRepo.On("GetByID", ctx, offer.MissionID).Return(mission, nil)
		userRepo.On("GetByID", ctx, requester.ID).Return(requester, nil)

		decided, err := svc.Decide(ctx, offerID, domain.OfferDecisionAccept, supplierID)
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferStatusAccepted, decided.Status)
	})

	t.Run("Wrong supplier", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newOfferService(offerRepo, missionRepo, vehicleRepo, userRepo)

		other := &domain.User{ID: 99, Role: domain.RoleSupplier}
		userRepo.On("GetByID", ctx, int32(99)).Return(other, nil)
		offerRepo.On("GetByID", ctx, offerID).Return(offer, nil)

		decided, err := svc.Decide(ctx, offerID, domain.OfferDecisionAccept, 99)
		assert.Nil(t, decided)
		assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
		offerRepo.AssertNotCalled(t, "Decide")
	})

	t.Run("Already decided", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newOfferService(offerRepo, missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, supplierID).Return(supplier, nil)
		offerRepo.On("GetByID", ctx, offerID).Return(offer, nil)
		offerRepo.On("Decide", ctx, offerID, domain.OfferStatusRejected).
			Return(apperr.InvalidState("offer %d already decided: ACCEPTED", offerID))

		decided, err := svc.Decide(ctx, offerID, domain.OfferDecisionReject, supplierID)
		assert.Nil(t, decided)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	})
}
