package service

import (
	"context"
	"time"

	"fleetrental-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, actorID int32, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, actorID, vehicleID int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, actorID int32, vehicle *domain.Vehicle) error
	DeleteVehicle(ctx context.Context, actorID, vehicleID int32) error
	ListVehicles(ctx context.Context, actorID int32) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context, actorID int32, filter domain.VehicleFilter) ([]domain.Vehicle, error)
}

type MissionService interface {
	Submit(ctx context.Context, userID, vehicleID int32, startDate, endDate time.Time, reason string) (*domain.MissionRequest, error)
	Decide(ctx context.Context, missionID int32, decision domain.MissionDecision, adminID int32) (*domain.MissionRequest, error)
	ListAll(ctx context.Context, adminID int32) ([]domain.MissionRequest, error)
	ListMine(ctx context.Context, userID int32) ([]domain.MissionRequest, error)
	ListApprovedWithoutContract(ctx context.Context, adminID int32) ([]domain.MissionRequest, error)
}

type OfferService interface {
	Open(ctx context.Context, missionID, adminID int32) (*domain.RentalOffer, error)
	Decide(ctx context.Context, offerID int32, decision domain.OfferDecision, supplierID int32) (*domain.RentalOffer, error)
	ListReceived(ctx context.Context, supplierID int32) ([]domain.RentalOffer, error)
}

type ContractService interface {
	GenerateFromOffer(ctx context.Context, offerID, adminID int32) (*domain.Contract, error)
	GenerateFromMission(ctx context.Context, missionID, vehicleID, adminID int32) (*domain.Contract, error)
	Finalize(ctx context.Context, contractID, adminID int32) error
	GetDetails(ctx context.Context, contractID, adminID int32) (*domain.ContractDetails, error)
	List(ctx context.Context, actorID int32) ([]domain.Contract, error)
	ListMine(ctx context.Context, userID int32) ([]domain.Contract, error)
	Search(ctx context.Context, adminID int32, filter domain.ContractFilter) ([]domain.Contract, error)
}

type DocumentService interface {
	// RenderContract produces a durable artifact for the contract and
	// returns the artifact's filesystem path.
	RenderContract(ctx context.Context, contractID, actorID int32) (string, error)
}

type DashboardService interface {
	Summary(ctx context.Context, adminID int32) (*domain.DashboardStats, error)
}
