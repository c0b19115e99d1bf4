package service

import (
	"context"

	"pygely_backend/internal/model"
	"pygely_backend/internal/repository"
)

type StatsService struct {
	StatsRepo *repository.StatsRepository
}

func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{StatsRepo: statsRepo}
}

func (s *StatsService) StudentStats(ctx context.Context) ([]model.StudentStat, error) {
	stats, err := s.StatsRepo.StudentStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.StudentStat{}
	}
	return stats, nil
}
