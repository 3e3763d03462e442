package service

import (
	"context"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	gate        roleGate
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, userRepo repository.UserRepository) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		gate:        newRoleGate(userRepo),
	}
}

func (s *vehicleService) AddVehicle(ctx context.Context, actorID int32, v *domain.Vehicle) error {
	supplier, err := s.gate.require(ctx, actorID, domain.RoleSupplier)
	if err != nil {
		return err
	}
	if v.Make == "" || v.Model == "" {
		return apperr.Validation("make and model are required")
	}
	if !domain.ValidFuelType(string(v.FuelType)) {
		return apperr.Validation("unknown fuel type %q", v.FuelType)
	}
	if v.Mileage < 0 || v.DailyPriceCents <= 0 {
		return apperr.Validation("mileage and daily price must be positive")
	}

	v.SupplierID = supplier.ID
	v.IsAssigned = false
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) GetVehicle(ctx context.Context, actorID, vehicleID int32) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	actor, err := s.gate.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	// Suppliers only see their own fleet; admins and users see everything.
	if actor.Role == domain.RoleSupplier && vehicle.SupplierID != actor.ID {
		return nil, apperr.Authorization("vehicle belongs to another supplier")
	}
	return vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, actorID int32, v *domain.Vehicle) error {
	supplier, err := s.gate.require(ctx, actorID, domain.RoleSupplier)
	if err != nil {
		return err
	}
	existing, err := s.vehicleRepo.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing.SupplierID != supplier.ID {
		return apperr.Authorization("vehicle belongs to another supplier")
	}
	if v.FuelType != "" && !domain.ValidFuelType(string(v.FuelType)) {
		return apperr.Validation("unknown fuel type %q", v.FuelType)
	}
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, actorID, vehicleID int32) error {
	supplier, err := s.gate.require(ctx, actorID, domain.RoleSupplier)
	if err != nil {
		return err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.SupplierID != supplier.ID {
		return apperr.Authorization("vehicle belongs to another supplier")
	}
	if vehicle.IsAssigned {
		return apperr.Conflict("vehicle %d is currently assigned", vehicleID)
	}
	return s.vehicleRepo.Delete(ctx, vehicleID)
}

func (s *vehicleService) ListVehicles(ctx context.Context, actorID int32) ([]domain.Vehicle, error) {
	actor, err := s.gate.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleSupplier {
		return s.vehicleRepo.ListBySupplier(ctx, actor.ID)
	}
	return s.vehicleRepo.List(ctx)
}

func (s *vehicleService) ListAvailable(ctx context.Context, actorID int32, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	actor, err := s.gate.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleSupplier {
		return nil, apperr.Authorization("available listing is for users and fleet admins")
	}
	return s.vehicleRepo.ListAvailable(ctx, filter)
}
