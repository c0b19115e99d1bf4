package service

import (
	"context"
	"errors"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/repository"
	"pygely_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type HintService struct {
	AttemptRepo   *repository.AttemptRepository
	ChallengeRepo *repository.ChallengeRepository
	HintRepo      *repository.HintRepository
}

func NewHintService(
	attemptRepo *repository.AttemptRepository,
	challengeRepo *repository.ChallengeRepository,
	hintRepo *repository.HintRepository,
) *HintService {
	return &HintService{
		AttemptRepo:   attemptRepo,
		ChallengeRepo: challengeRepo,
		HintRepo:      hintRepo,
	}
}

// RequestHint escalates with each incorrect attempt the student already made
// on the challenge, up to the last level, and logs the hint it served. An
// unknown challenge gets the general hints.
func (s *HintService) RequestHint(ctx context.Context, studentID, challengeID uint) (*game.Hint, error) {
	incorrect, err := s.AttemptRepo.CountIncorrect(ctx, studentID, challengeID)
	if err != nil {
		return nil, err
	}
	level := game.HintLevel(incorrect)

	var kind game.ChallengeKind
	challenge, err := s.ChallengeRepo.FindByID(ctx, challengeID)
	switch {
	case err == nil:
		kind = challenge.Kind
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hint := game.HintFor(kind, level)
	usage := &model.HintUsage{
		StudentID:   studentID,
		ChallengeID: challengeID,
		Level:       hint.Level,
		Text:        hint.Text,
		Character:   hint.Character,
	}
	if err := s.HintRepo.Create(ctx, usage); err != nil {
		return nil, err
	}

	monitoring.RecordHint(hint.Level)
	return &hint, nil
}
