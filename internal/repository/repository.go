package repository

import (
	"context"
	"time"

	"fleetrental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListBySupplier(ctx context.Context, supplierID int32) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
}

type MissionRepository interface {
	Create(ctx context.Context, mission *domain.MissionRequest) error
	GetByID(ctx context.Context, id int32) (*domain.MissionRequest, error)
	// Decide moves a PENDING mission to the given terminal status. A
	// mission that is no longer PENDING yields an InvalidState error.
	Decide(ctx context.Context, id int32, status domain.MissionStatus) error
	ListAll(ctx context.Context) ([]domain.MissionRequest, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.MissionRequest, error)
	ListApprovedWithoutContract(ctx context.Context) ([]domain.MissionRequest, error)
}

type OfferRepository interface {
	// Create inserts a PENDING offer. A second offer for the same mission
	// violates the unique constraint and surfaces as a Conflict error.
	Create(ctx context.Context, offer *domain.RentalOffer) error
	GetByID(ctx context.Context, id int32) (*domain.RentalOffer, error)
	// Decide moves a PENDING offer to the given terminal status; a decided
	// offer yields an InvalidState error.
	Decide(ctx context.Context, id int32, status domain.OfferStatus) error
	ListBySupplier(ctx context.Context, supplierID int32) ([]domain.RentalOffer, error)
}

type ContractRepository interface {
	// CreateAssigning atomically checks the vehicle for overlapping ACTIVE
	// contracts, inserts the contract, and marks the vehicle assigned. The
	// vehicle row is locked for the duration so concurrent generations for
	// the same vehicle serialize; an overlap yields a Conflict error.
	CreateAssigning(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id int32) (*domain.Contract, error)
	GetDetails(ctx context.Context, id int32) (*domain.ContractDetails, error)
	// Terminate closes an ACTIVE contract and releases its vehicle unless
	// another ACTIVE contract still holds it. InvalidState when the
	// contract is already TERMINATED.
	Terminate(ctx context.Context, id int32) error
	// TerminateExpired closes every ACTIVE contract with end date before
	// today and releases the affected vehicles, all in one transaction.
	// Returns the number of contracts terminated; zero is a normal no-op.
	TerminateExpired(ctx context.Context, today time.Time) (int, error)
	List(ctx context.Context) ([]domain.Contract, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Contract, error)
	ListBySupplier(ctx context.Context, supplierID int32) ([]domain.Contract, error)
	Search(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error)
}

type StatsRepository interface {
	Snapshot(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
}
