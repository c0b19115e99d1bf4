package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/repository"
	"pygely_backend/internal/util"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type WorldService struct {
	WorldRepo     *repository.WorldRepository
	ChallengeRepo *repository.ChallengeRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewWorldService(
	worldRepo *repository.WorldRepository,
	challengeRepo *repository.ChallengeRepository,
	progressRepo *repository.ProgressRepository,
) *WorldService {
	return &WorldService{
		WorldRepo:     worldRepo,
		ChallengeRepo: challengeRepo,
		ProgressRepo:  progressRepo,
	}
}

// WorldView is a world as one student sees it.
type WorldView struct {
	model.World
	State    game.WorldState      `json:"state"`
	Progress game.ProgressSummary `json:"progress"`
}

type WorldDetail struct {
	World      *model.World      `json:"world"`
	Challenges []model.Challenge `json:"challenges"`
}

// List returns every world in order, marked active or blocked for the student.
func (s *WorldService) List(ctx context.Context, studentID uint) ([]WorldView, error) {
	var (
		worlds   []model.World
		progress []model.Progress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		worlds, err = s.WorldRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = s.ProgressRepo.ListByStudent(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load worlds: %w", err)
	}

	refs := make([]game.WorldRef, len(worlds))
	for i, w := range worlds {
		refs[i] = w.Ref()
	}
	byWorld := make(map[uint]game.ProgressSummary, len(progress))
	for _, p := range progress {
		byWorld[p.WorldID] = p.Summary()
	}

	decorated := game.DecorateWorlds(refs, byWorld)
	views := make([]WorldView, len(worlds))
	for i, d := range decorated {
		views[i] = WorldView{World: worlds[i], State: d.State, Progress: d.Progress}
	}
	return views, nil
}

func (s *WorldService) Detail(ctx context.Context, worldID uint) (*WorldDetail, error) {
	world, err := s.WorldRepo.FindByID(ctx, worldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorldNotFound
		}
		return nil, err
	}

	challenges, err := s.ChallengeRepo.FindByWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}
	return &WorldDetail{World: world, Challenges: challenges}, nil
}

// Start records that the student entered a world. It returns the existing
// row unchanged when there is one, and reports whether a row was created.
func (s *WorldService) Start(ctx context.Context, studentID, worldID uint) (*model.Progress, bool, error) {
	if _, err := s.WorldRepo.FindByID(ctx, worldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrWorldNotFound
		}
		return nil, false, err
	}

	existing, err := s.ProgressRepo.Find(ctx, studentID, worldID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	now := time.Now()
	p := &model.Progress{
		StudentID: studentID,
		WorldID:   worldID,
		State:     game.ProgressInProgress,
		StartedAt: &now,
	}
	if err := s.ProgressRepo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.ProgressRepo.Find(ctx, studentID, worldID)
			return existing, false, findErr
		}
		return nil, false, err
	}
	return p, true, nil
}
