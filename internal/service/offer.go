package service

import (
	"context"
	"fmt"
	"strings"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/notify"
	"fleetrental-backend/internal/repository"
)

type offerService struct {
	offerRepo   repository.OfferRepository
	missionRepo repository.MissionRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	dispatcher  *notify.Dispatcher
	gate        roleGate
}

func NewOfferService(
	offerRepo repository.OfferRepository,
	missionRepo repository.MissionRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	dispatcher *notify.Dispatcher,
) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		missionRepo: missionRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		gate:        newRoleGate(userRepo),
	}
}

// Open creates a PENDING offer for an approved mission. The supplier is
// derived from the mission's vehicle, never picked by the caller.
func (s *offerService) Open(ctx context.Context, missionID, adminID int32) (*domain.RentalOffer, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}

	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.Status != domain.MissionStatusApproved {
		return nil, apperr.InvalidState("mission %d is %s, only approved missions can be offered", missionID, mission.Status)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, mission.VehicleID)
	if err != nil {
		return nil, err
	}

	offer := &domain.RentalOffer{
		MissionID:  mission.ID,
		VehicleID:  vehicle.ID,
		SupplierID: vehicle.SupplierID,
		Status:     domain.OfferStatusPending,
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	if supplier, err := s.userRepo.GetByID(ctx, vehicle.SupplierID); err == nil {
		s.dispatcher.Enqueue(notify.Message{
			To:      supplier.Email,
			ToName:  supplier.Name,
			Subject: "New rental offer",
			Body: fmt.Sprintf("Hello %s,\n\nA rental offer for your %s %s (from %s to %s) awaits your decision.\n\nBest regards,\nThe Fleet Team",
				supplier.Name, vehicle.Make, vehicle.Model,
				mission.StartDate.Format("2006-01-02"),
				mission.EndDate.Format("2006-01-02")),
		})
	}

	return offer, nil
}

func (s *offerService) Decide(ctx context.Context, offerID int32, decision domain.OfferDecision, supplierID int32) (*domain.RentalOffer, error) {
	supplier, err := s.gate.require(ctx, supplierID, domain.RoleSupplier)
	if err != nil {
		return nil, err
	}

	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.SupplierID != supplier.ID {
		return nil, apperr.Authorization("offer %d is addressed to another supplier", offerID)
	}

	var status domain.OfferStatus
	switch decision {
	case domain.OfferDecisionAccept:
		status = domain.OfferStatusAccepted
	case domain.OfferDecisionReject:
		status = domain.OfferStatusRejected
	default:
		return nil, apperr.Validation("unknown decision %q", decision)
	}

	if err := s.offerRepo.Decide(ctx, offerID, status); err != nil {
		return nil, err
	}
	offer.Status = status

	if mission, err := s.missionRepo.GetByID(ctx, offer.MissionID); err == nil {
		if requester, err := s.userRepo.GetByID(ctx, mission.UserID); err == nil {
			s.dispatcher.Enqueue(notify.Message{
				To:      requester.Email,
				ToName:  requester.Name,
				Subject: "Rental offer update",
				Body: fmt.Sprintf("Hello %s,\n\nThe supplier has %s the rental offer for your mission from %s to %s.\n\nBest regards,\nThe Fleet Team",
					requester.Name,
					strings.ToLower(string(status)),
					mission.StartDate.Format("2006-01-02"),
					mission.EndDate.Format("2006-01-02")),
			})
		}
	}

	return offer, nil
}

func (s *offerService) ListReceived(ctx context.Context, supplierID int32) ([]domain.RentalOffer, error) {
	supplier, err := s.gate.require(ctx, supplierID, domain.RoleSupplier)
	if err != nil {
		return nil, err
	}
	return s.offerRepo.ListBySupplier(ctx, supplier.ID)
}
