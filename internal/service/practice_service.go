package service

import (
	"context"
	"errors"
	"math/rand"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/repository"
	"pygely_backend/internal/util"

	"gorm.io/gorm"
)

type PracticeService struct {
	PracticeRepo *repository.PracticeRepository
	pick         func(n int) int
}

func NewPracticeService(practiceRepo *repository.PracticeRepository) *PracticeService {
	return &PracticeService{PracticeRepo: practiceRepo, pick: rand.Intn}
}

type ExerciseView struct {
	ID         uint               `json:"id"`
	Topic      game.PracticeTopic `json:"topic"`
	Level      game.PracticeLevel `json:"level"`
	Expression string             `json:"expression"`
}

type PracticeVerdict struct {
	Correct      bool     `json:"correct"`
	PointsEarned int      `json:"pointsEarned"`
	Solution     string   `json:"solution,omitempty"`
	Steps        []string `json:"steps,omitempty"`
}

// Exercise picks a random exercise for the topic and level.
func (s *PracticeService) Exercise(ctx context.Context, topic, level string) (*ExerciseView, error) {
	if !game.ValidTopic(topic) || !game.ValidLevel(level) {
		return nil, util.ErrInvalidPracticeTopic
	}

	ids, err := s.PracticeRepo.ExerciseIDs(ctx, game.PracticeTopic(topic), game.PracticeLevel(level))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, util.ErrExerciseNotFound
	}

	e, err := s.PracticeRepo.FindExercise(ctx, ids[s.pick(len(ids))])
	if err != nil {
		return nil, err
	}
	return &ExerciseView{ID: e.ID, Topic: e.Topic, Level: e.Level, Expression: e.Expression}, nil
}

// Validate checks an answer. A nil studentID is an anonymous caller and
// leaves no record. Wrong answers come back with the solution and its steps.
func (s *PracticeService) Validate(ctx context.Context, studentID *uint, exerciseID uint, answer string) (*PracticeVerdict, error) {
	e, err := s.PracticeRepo.FindExercise(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}

	verdict := &PracticeVerdict{Correct: game.EquivalentAnswers(answer, e.Solution)}
	if verdict.Correct {
		verdict.PointsEarned = game.PracticePoints(e.Level)
	} else {
		verdict.Solution = e.Solution
		verdict.Steps = e.Steps()
	}

	if studentID != nil {
		result := &model.PracticeResult{
			StudentID:  *studentID,
			ExerciseID: e.ID,
			Topic:      e.Topic,
			Level:      e.Level,
			Answer:     answer,
			Correct:    verdict.Correct,
			Points:     verdict.PointsEarned,
		}
		if err := s.PracticeRepo.CreateResult(ctx, result); err != nil {
			return nil, err
		}
	}
	return verdict, nil
}

func (s *PracticeService) Stats(ctx context.Context, studentID uint) ([]model.PracticeTopicStat, error) {
	stats, err := s.PracticeRepo.StatsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.PracticeTopicStat{}
	}
	return stats, nil
}
