package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/notify"
	"fleetrental-backend/internal/repository"
)

type missionService struct {
	missionRepo repository.MissionRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	dispatcher  *notify.Dispatcher
	gate        roleGate
}

func NewMissionService(
	missionRepo repository.MissionRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	dispatcher *notify.Dispatcher,
) MissionService {
	return &missionService{
		missionRepo: missionRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		gate:        newRoleGate(userRepo),
	}
}

func (s *missionService) Submit(ctx context.Context, userID, vehicleID int32, startDate, endDate time.Time, reason string) (*domain.MissionRequest, error) {
	user, err := s.gate.require(ctx, userID, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, apperr.Validation("start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, apperr.Validation("end date precedes start date")
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Validation("vehicle %d does not exist", vehicleID)
		}
		return nil, err
	}

	mission := &domain.MissionRequest{
		UserID:    user.ID,
		VehicleID: vehicleID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
		Status:    domain.MissionStatusPending,
	}
	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *missionService) Decide(ctx context.Context, missionID int32, decision domain.MissionDecision, adminID int32) (*domain.MissionRequest, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}

	var status domain.MissionStatus
	switch decision {
	case domain.MissionDecisionApprove:
		status = domain.MissionStatusApproved
	case domain.MissionDecisionReject:
		status = domain.MissionStatusRejected
	default:
		return nil, apperr.Validation("unknown decision %q", decision)
	}

	if err := s.missionRepo.Decide(ctx, missionID, status); err != nil {
		return nil, err
	}
	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	// Outcome notification is best-effort and decoupled from the decision.
	if requester, err := s.userRepo.GetByID(ctx, mission.UserID); err == nil {
		s.dispatcher.Enqueue(notify.Message{
			To:      requester.Email,
			ToName:  requester.Name,
			Subject: "Mission request update",
			Body: fmt.Sprintf("Hello %s,\n\nYour mission request from %s to %s has been %s.\n\nBest regards,\nThe Fleet Team",
				requester.Name,
				mission.StartDate.Format("2006-01-02"),
				mission.EndDate.Format("2006-01-02"),
				strings.ToLower(string(mission.Status))),
		})
	}

	return mission, nil
}

func (s *missionService) ListAll(ctx context.Context, adminID int32) ([]domain.MissionRequest, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}
	return s.missionRepo.ListAll(ctx)
}

func (s *missionService) ListMine(ctx context.Context, userID int32) ([]domain.MissionRequest, error) {
	user, err := s.gate.require(ctx, userID, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.missionRepo.ListByUser(ctx, user.ID)
}

func (s *missionService) ListApprovedWithoutContract(ctx context.Context, adminID int32) ([]domain.MissionRequest, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}
	return s.missionRepo.ListApprovedWithoutContract(ctx)
}
