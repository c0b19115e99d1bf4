package service

import (
	"testing"
	"time"

	"pygely_backend/internal/config"
	"pygely_backend/internal/game"
	"pygely_backend/internal/repository"
	"pygely_backend/internal/testutil"
	"pygely_backend/pkg/cache"
	"pygely_backend/pkg/events"

	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	events       *events.MemoryPublisher
	worlds       *WorldService
	progression  *ProgressionService
	gamification *GamificationService
	hints        *HintService
	stats        *StatsService
	practice     *PracticeService
	auth         *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)

	challenges, err := repository.NewChallengeRepository(db, 16)
	if err != nil {
		t.Fatalf("challenge repo: %v", err)
	}
	attempts := repository.NewAttemptRepository(db)
	progress := repository.NewProgressRepository(db)
	rewards := repository.NewRewardRepository(db)
	pub := &events.MemoryPublisher{}

	gamification := NewGamificationService(rewards, cache.NewHelper(nil, "test:"), time.Minute)
	return &fixture{
		db:           db,
		events:       pub,
		worlds:       NewWorldService(repository.NewWorldRepository(db), challenges, progress),
		progression:  NewProgressionService(db, challenges, attempts, progress, rewards, game.NewEvaluator(nil), gamification, pub),
		gamification: gamification,
		hints:        NewHintService(attempts, challenges, repository.NewHintRepository(db)),
		stats:        NewStatsService(repository.NewStatsRepository(db)),
		practice:     NewPracticeService(repository.NewPracticeRepository(db)),
		auth:         NewAuthService(repository.NewUserRepository(db), &config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}),
	}
}
