package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fleetrental-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListBySupplier(ctx context.Context, supplierID int32) ([]domain.Vehicle, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListAvailable(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockMissionRepo
type MockMissionRepo struct {
	mock.Mock
}

func (m *MockMissionRepo) Create(ctx context.Context, mission *domain.MissionRequest) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}
func (m *MockMissionRepo) GetByID(ctx context.Context, id int32) (*domain.MissionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionRequest), args.Error(1)
}
func (m *MockMissionRepo) Decide(ctx context.Context, id int32, status domain.MissionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockMissionRepo) ListAll(ctx context.Context) ([]domain.MissionRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MissionRequest), args.Error(1)
}
func (m *MockMissionRepo) ListByUser(ctx context.Context, userID int32) ([]domain.MissionRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MissionRequest), args.Error(1)
}
func (m *MockMissionRepo) ListApprovedWithoutContract(ctx context.Context) ([]domain.MissionRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MissionRequest), args.Error(1)
}

// MockOfferRepo
type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.RentalOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id int32) (*domain.RentalOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOffer), args.Error(1)
}
func (m *MockOfferRepo) Decide(ctx context.Context, id int32, status domain.OfferStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOfferRepo) ListBySupplier(ctx context.Context, supplierID int32) ([]domain.RentalOffer, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]domain.RentalOffer), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) CreateAssigning(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) GetDetails(ctx context.Context, id int32) (*domain.ContractDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractDetails), args.Error(1)
}
func (m *MockContractRepo) Terminate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockContractRepo) TerminateExpired(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}
func (m *MockContractRepo) List(ctx context.Context) ([]domain.Contract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Contract, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) ListBySupplier(ctx context.Context, supplierID int32) ([]domain.Contract, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Search(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Contract), args.Error(1)
}

// MockStatsRepo
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Snapshot(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
