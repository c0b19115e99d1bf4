package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pygely_backend/internal/model"
	"pygely_backend/internal/repository"
	"pygely_backend/pkg/cache"
	"pygely_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type GamificationService struct {
	RewardRepo *repository.RewardRepository
	Cache      *cache.Helper
	TTL        time.Duration
}

func NewGamificationService(rewardRepo *repository.RewardRepository, c *cache.Helper, ttl time.Duration) *GamificationService {
	return &GamificationService{RewardRepo: rewardRepo, Cache: c, TTL: ttl}
}

type GamificationSummary struct {
	Points      int64             `json:"points"`
	TotalBadges int               `json:"totalBadges"`
	Badges      []model.BadgeView `json:"badges"`
}

func summaryKey(studentID uint) string {
	return fmt.Sprintf("gamification:%d", studentID)
}

// Summary totals the student's points and lists badges newest first.
func (s *GamificationService) Summary(ctx context.Context, studentID uint) (*GamificationSummary, error) {
	var cached GamificationSummary
	err := s.Cache.Get(ctx, summaryKey(studentID), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheNotAvailable) {
		logger.Log.Warn("Gamification cache read failed", zap.Error(err))
	}

	var (
		points int64
		badges []model.BadgeView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		points, err = s.RewardRepo.TotalPoints(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		badges, err = s.RewardRepo.ListBadges(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	if badges == nil {
		badges = []model.BadgeView{}
	}
	summary := &GamificationSummary{Points: points, TotalBadges: len(badges), Badges: badges}

	if err := s.Cache.Set(ctx, summaryKey(studentID), summary, s.TTL); err != nil {
		logger.Log.Warn("Gamification cache write failed", zap.Error(err))
	}
	return summary, nil
}

// Invalidate drops the cached summary after new rewards are granted.
func (s *GamificationService) Invalidate(ctx context.Context, studentID uint) {
	if err := s.Cache.Delete(ctx, summaryKey(studentID)); err != nil {
		logger.Log.Warn("Gamification cache invalidation failed",
			zap.Uint("student_id", studentID),
			zap.Error(err))
	}
}
