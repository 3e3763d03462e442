package service

import (
	"context"
	"time"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

type dashboardService struct {
	statsRepo repository.StatsRepository
	gate      roleGate
	now       func() time.Time
}

func NewDashboardService(statsRepo repository.StatsRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{
		statsRepo: statsRepo,
		gate:      newRoleGate(userRepo),
		now:       time.Now,
	}
}

func (s *dashboardService) Summary(ctx context.Context, adminID int32) (*domain.DashboardStats, error) {
	if _, err := s.gate.require(ctx, adminID, domain.RoleFleetAdmin); err != nil {
		return nil, err
	}
	return s.statsRepo.Snapshot(ctx, s.now())
}
