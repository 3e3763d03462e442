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

func newMissionService(missionRepo *MockMissionRepo, vehicleRepo *MockVehicleRepo, userRepo *MockUserRepo) service.MissionService {
	return service.NewMissionService(missionRepo, vehicleRepo, userRepo, notify.NewDispatcher(nil, 8, 1))
}

func TestMissionService_Submit(t *testing.T) {
	ctx := context.Background()
	userID := int32(1)
	vehicleID := int32(2)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	requester := &domain.User{ID: userID, Name: "Alice", Email: "alice@test.com", Role: domain.RoleUser}
	vehicle := &domain.Vehicle{ID: vehicleID, SupplierID: 10, Make: "Renault", Model: "Clio"}

	t.Run("Success", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, userID).Return(requester, nil)
		vehicleRepo.On("GetByID", ctx, vehicleID).Return(vehicle, nil)
		missionRepo.On("Create", ctx, mock.AnythingOfType("*domain.MissionRequest")).Return(nil)

		mission, err := svc.Submit(ctx, userID, vehicleID, start, end, "client visit")
		assert.NoError(t, err)
		assert.NotNil(t, mission)
		assert.Equal(t, domain.MissionStatusPending, mission.Status)
		assert.Equal(t, userID, mission.UserID)
		assert.Equal(t, vehicleID, mission.VehicleID)
	})

	t.Run("End before start", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, userID).Return(requester, nil)

		mission, err := svc.Submit(ctx, userID, vehicleID, end, start, "client visit")
		assert.Nil(t, mission)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		missionRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Unknown vehicle", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, userID).Return(requester, nil)
		vehicleRepo.On("GetByID", ctx, vehicleID).Return(nil, apperr.NotFound("vehicle %d not found", vehicleID))

		mission, err := svc.Submit(ctx, userID, vehicleID, start, end, "client visit")
		assert.Nil(t, mission)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("Supplier cannot submit", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Role: domain.RoleSupplier}, nil)

		mission, err := svc.Submit(ctx, userID, vehicleID, start, end, "client visit")
		assert.Nil(t, mission)
		assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	})
}

func TestMissionService_Decide(t *testing.T) {
	ctx := context.Background()
	adminID := int32(5)
	missionID := int32(7)

	admin := &domain.User{ID: adminID, Role: domain.RoleFleetAdmin}
	requester := &domain.User{ID: 1, Name: "Alice", Email: "alice@test.com", Role: domain.RoleUser}

	t.Run("Approve", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		decided := &domain.MissionRequest{ID: missionID, UserID: requester.ID, Status: domain.MissionStatusApproved}
		userRepo.On("GetByID", ctx, adminID).Return(admin, nil)
		missionRepo.On("Decide", ctx, missionID, domain.MissionStatusApproved).Return(nil)
		missionRepo.On("GetByID", ctx, missionID).Return(decided, nil)
		userRepo.On("GetByID", ctx, requester.ID).Return(requester, nil)

		mission, err := svc.Decide(ctx, missionID, domain.MissionDecisionApprove, adminID)
		assert.NoError(t, err)
		assert.Equal(t, domain.MissionStatusApproved, mission.Status)
	})

	t.Run("Already decided", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, adminID).Return(admin, nil)
		missionRepo.On("Decide", ctx, missionID, domain.MissionStatusRejected).
			Return(apperr.InvalidState("mission %d already decided: APPROVED", missionID))

		mission, err := svc.Decide(ctx, missionID, domain.MissionDecisionReject, adminID)
		assert.Nil(t, mission)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	})

	t.Run("Non-admin refused", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, adminID).Return(requester, nil)

		mission, err := svc.Decide(ctx, missionID, domain.MissionDecisionApprove, adminID)
		assert.Nil(t, mission)
		assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
		missionRepo.AssertNotCalled(t, "Decide")
	})

	t.Run("Unknown decision", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		vehicleRepo := new(MockVehicleRepo)
		userRepo := new(MockUserRepo)
		svc := newMissionService(missionRepo, vehicleRepo, userRepo)

		userRepo.On("GetByID", ctx, adminID).Return(admin, nil)

		mission, err := svc.Decide(ctx, missionID, domain.MissionDecision("MAYBE"), adminID)
		assert.Nil(t, mission)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}
