package service

import (
	"context"
	"fmt"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/notify"
	"fleetrental-backend/internal/repository"
)

type contractService struct {
	contractRepo repository.ContractRepository
	offerRepo    repository.OfferRepository
	missionRepo  repository.MissionRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	dispatcher   *notify.Dispatcher
	gate         roleGate
}

func NewContractService(
	contractRepo repository.ContractRepository,
	offerRepo repository.OfferRepository,
	missionRepo repository.MissionRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	dispatcher *notify.Dispatcher,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		offerRepo:    offerRepo,
		missionRepo:  missionRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		gate:         newRoleGate(userRepo),
	}
}

// GenerateFromOffer signs a contract from an accepted offer. The dates
// come from the originating mission; the overlap check and the vehicle
// assignment happen atomically in the store.
func (s *contractService) GenerateFromOffer(ctx context.Context, offerID, adminID int32) (*domain.Contract, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}

	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.Status != domain.OfferStatusAccepted {
		return nil, apperr.InvalidState("offer %d is %s, only accepted offers produce contracts", offerID, offer.Status)
	}

	mission, err := s.missionRepo.GetByID(ctx, offer.MissionID)
	if err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		MissionID: mission.ID,
		OfferID:   &offer.ID,
		UserID:    mission.UserID,
		VehicleID: offer.VehicleID,
		StartDate: mission.StartDate,
		EndDate:   mission.EndDate,
		Status:    domain.ContractStatusActive,
	}
	if err := s.contractRepo.CreateAssigning(ctx, contract); err != nil {
		return nil, err
	}

	s.notifySigned(ctx, contract)
	return contract, nil
}

// GenerateFromMission signs a contract directly from an approved mission,
// skipping the offer round-trip. The admin picks the vehicle; it may
// differ from the one the mission named.
func (s *contractService) GenerateFromMission(ctx context.Context, missionID, vehicleID, adminID int32) (*domain.Contract, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}

	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.Status != domain.MissionStatusApproved {
		return nil, apperr.InvalidState("mission %d is %s, only approved missions produce contracts", missionID, mission.Status)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		MissionID: mission.ID,
		UserID:    mission.UserID,
		VehicleID: vehicle.ID,
		StartDate: mission.StartDate,
		EndDate:   mission.EndDate,
		Status:    domain.ContractStatusActive,
	}
	if err := s.contractRepo.CreateAssigning(ctx, contract); err != nil {
		return nil, err
	}

	s.notifySigned(ctx, contract)
	return contract, nil
}

func (s *contractService) Finalize(ctx context.Context, contractID, adminID int32) error {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return err
	}
	return s.contractRepo.Terminate(ctx, contractID)
}

func (s *contractService) GetDetails(ctx context.Context, contractID, actorID int32) (*domain.ContractDetails, error) {
	actor, err := s.gate.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	details, err := s.contractRepo.GetDetails(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !canViewContract(actor, details) {
		return nil, apperr.Authorization("contract %d is not visible to this account", contractID)
	}
	return details, nil
}

func (s *contractService) List(ctx context.Context, actorID int32) ([]domain.Contract, error) {
	actor, err := s.gate.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleFleetAdmin:
		return s.contractRepo.List(ctx)
	case domain.RoleSupplier:
		return s.contractRepo.ListBySupplier(ctx, actor.ID)
	default:
		return s.contractRepo.ListByUser(ctx, actor.ID)
	}
}

func (s *contractService) ListMine(ctx context.Context, userID int32) ([]domain.Contract, error) {
	user, err := s.gate.require(ctx, userID, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.contractRepo.ListByUser(ctx, user.ID)
}

func (s *contractService) Search(ctx context.Context, adminID int32, filter domain.ContractFilter) ([]domain.Contract, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}
	return s.contractRepo.Search(ctx, filter)
}

func canViewContract(actor *domain.User, details *domain.ContractDetails) bool {
	switch actor.Role {
	case domain.RoleFleetAdmin:
		return true
	case domain.RoleSupplier:
		return details.Vehicle.SupplierID == actor.ID
	default:
		return details.Contract.UserID == actor.ID
	}
}

func (s *contractService) notifySigned(ctx context.Context, contract *domain.Contract) {
	holder, err := s.userRepo.GetByID(ctx, contract.UserID)
	if err != nil {
		return
	}
	s.dispatcher.Enqueue(notify.Message{
		To:      holder.Email,
		ToName:  holder.Name,
		Subject: "Rental contract signed",
		Body: fmt.Sprintf("Hello %s,\n\nYour rental contract #%d is active from %s to %s.\n\nBest regards,\nThe Fleet Team",
			holder.Name, contract.ID,
			contract.StartDate.Format("2006-01-02"),
			contract.EndDate.Format("2006-01-02")),
	})
}
