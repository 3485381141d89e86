package service

import (
	"context"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/repository"
)

type HealthService struct {
	uow *repository.UnitOfWork
}

func NewHealthService(uow *repository.UnitOfWork) *HealthService {
	return &HealthService{uow: uow}
}

// Check pings the store.
func (s *HealthService) Check(ctx context.Context) (dto.HealthResp, error) {
	if err := s.uow.Ping(ctx); err != nil {
		return dto.HealthResp{Status: "down", Database: "unreachable"}, errs.Internal(err)
	}
	return dto.HealthResp{Status: "ok", Database: "ok"}, nil
}
