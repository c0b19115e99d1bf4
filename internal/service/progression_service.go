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
	"pygely_backend/pkg/database"
	"pygely_backend/pkg/events"
	"pygely_backend/pkg/logger"
	"pygely_backend/pkg/monitoring"
	"pygely_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgCorrect   = "Correct! You completed the challenge"
	msgIncorrect = "Try again"
)

// ProgressionService grades attempts and applies what a correct one earns.
type ProgressionService struct {
	DB            *gorm.DB
	ChallengeRepo *repository.ChallengeRepository
	AttemptRepo   *repository.AttemptRepository
	ProgressRepo  *repository.ProgressRepository
	RewardRepo    *repository.RewardRepository
	Evaluator     *game.Evaluator
	Gamification  *GamificationService
	Events        events.Publisher
}

func NewProgressionService(
	db *gorm.DB,
	challengeRepo *repository.ChallengeRepository,
	attemptRepo *repository.AttemptRepository,
	progressRepo *repository.ProgressRepository,
	rewardRepo *repository.RewardRepository,
	evaluator *game.Evaluator,
	gamification *GamificationService,
	publisher events.Publisher,
) *ProgressionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProgressionService{
		DB:            db,
		ChallengeRepo: challengeRepo,
		AttemptRepo:   attemptRepo,
		ProgressRepo:  progressRepo,
		RewardRepo:    rewardRepo,
		Evaluator:     evaluator,
		Gamification:  gamification,
		Events:        publisher,
	}
}

// maxRecordTries bounds re-runs of the attempt transaction after a lost
// unique-key race or a deadlock.
const maxRecordTries = 3

type AttemptInput struct {
	ChallengeID    uint
	Submission     game.Submission
	IdempotencyKey string
}

type AttemptResult struct {
	Success             bool        `json:"success"`
	Correct             bool        `json:"correct"`
	Message             string      `json:"message"`
	AttemptID           uint        `json:"attemptId"`
	Reference           string      `json:"reference"`
	WorldCompleted      bool        `json:"worldCompleted"`
	CompletedWorldID    *uint       `json:"completedWorldId,omitempty"`
	NextUnlockedWorldID *uint       `json:"nextUnlockedWorldId"`
	PointsEarned        int         `json:"pointsEarned"`
	BadgeEarned         *game.Badge `json:"badgeEarned,omitempty"`
	Replayed            bool        `json:"replayed,omitempty"`
}

// outcome is what one committed transaction produced.
type outcome struct {
	attempt *model.Attempt
	badge   *game.Badge
}

// RegisterAttempt grades a submission and, when it is correct, completes the
// challenge's world, grants 100 points and grants the world badge if the
// student does not hold it yet. All writes commit together.
//
// With an idempotency key, a repeated request returns the stored result and
// writes nothing. Without one, every call is a new attempt, so completing a
// world again adds attempts, time and another points reward.
func (s *ProgressionService) RegisterAttempt(ctx context.Context, studentID uint, in AttemptInput) (*AttemptResult, error) {
	ctx, span := tracing.Start(ctx, "progression.RegisterAttempt",
		attribute.Int64("student.id", int64(studentID)),
		attribute.Int64("challenge.id", int64(in.ChallengeID)))
	defer span.End()

	if in.IdempotencyKey != "" {
		prev, err := s.AttemptRepo.FindByIdempotencyKey(ctx, studentID, in.IdempotencyKey)
		if err == nil {
			return replay(prev, in.ChallengeID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tracing.RecordError(span, err)
			return nil, err
		}
	}

	challenge, err := s.ChallengeRepo.FindByID(ctx, in.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		tracing.RecordError(span, err)
		return nil, err
	}

	def, err := challenge.Definition()
	if err != nil {
		logger.Log.Warn("unparseable parameters",
			zap.Uint("challenge_id", challenge.ID),
			zap.Error(err))
	}
	correct := s.Evaluator.Evaluate(def, in.Submission)
	span.SetAttributes(attribute.Bool("attempt.correct", correct))

	var out *outcome
	for try := 0; try < maxRecordTries; try++ {
		out, err = s.record(ctx, studentID, challenge, in, correct)
		if err == nil || !database.IsRetryable(err) {
			break
		}
		if in.IdempotencyKey != "" {
			// a concurrent request with the same key may have won the insert
			prev, findErr := s.AttemptRepo.FindByIdempotencyKey(ctx, studentID, in.IdempotencyKey)
			if findErr == nil {
				return replay(prev, in.ChallengeID)
			}
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				tracing.RecordError(span, findErr)
				return nil, findErr
			}
		}
		logger.Log.Debug("Retrying attempt transaction",
			zap.Uint("student_id", studentID),
			zap.Int("try", try+1),
			zap.Error(err))
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	s.afterCommit(ctx, studentID, challenge, out)
	return resultOf(out.attempt, out.badge, false), nil
}

func (s *ProgressionService) record(ctx context.Context, studentID uint, challenge *model.Challenge, in AttemptInput, correct bool) (*outcome, error) {
	out := &outcome{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt := &model.Attempt{
			Reference:        uuid.NewString(),
			StudentID:        studentID,
			ChallengeID:      challenge.ID,
			SubmittedAnswer:  string(in.Submission.Answer),
			Correct:          correct,
			DistanceToTarget: in.Submission.DistanceToTarget,
			ResponseTime:     in.Submission.ResponseTime,
			LeftLimit:        in.Submission.LeftLimit,
			RightLimit:       in.Submission.RightLimit,
		}
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			attempt.IdempotencyKey = &key
		}
		worldID := challenge.WorldID
		if correct {
			attempt.CompletedWorldID = &worldID
			attempt.NextUnlockedWorldID = game.NextUnlockedWorld(worldID)
		}
		if err := s.AttemptRepo.WithTx(tx).Create(ctx, attempt); err != nil {
			return err
		}
		out.attempt = attempt

		if !correct {
			return nil
		}

		if err := s.completeWorld(ctx, tx, studentID, worldID, in.Submission.ResponseTime); err != nil {
			return err
		}

		rewards := s.RewardRepo.WithTx(tx)
		points := &model.Reward{
			StudentID:   studentID,
			Kind:        model.RewardPoints,
			Value:       game.CompletionPoints,
			Name:        "World completed",
			Description: game.CompletionMessage(worldID),
			WorldID:     &worldID,
		}
		if err := rewards.Create(ctx, points); err != nil {
			return err
		}

		badge, ok := game.BadgeForWorld(worldID)
		if !ok {
			return nil
		}
		key := game.BadgeKey(worldID)
		granted, err := rewards.CreateBadgeOnce(ctx, &model.Reward{
			StudentID:   studentID,
			Kind:        model.RewardBadge,
			Value:       1,
			Name:        badge.Name,
			Description: badge.Description,
			WorldID:     &worldID,
			BadgeKey:    &key,
		})
		if err != nil {
			return err
		}
		if granted {
			out.badge = &badge
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// completeWorld upserts the (student, world) progress row as completed.
func (s *ProgressionService) completeWorld(ctx context.Context, tx *gorm.DB, studentID, worldID uint, responseTime float64) error {
	progress := s.ProgressRepo.WithTx(tx)
	now := time.Now()

	p, err := progress.FindForUpdate(ctx, studentID, worldID)
	switch {
	case err == nil:
		p.Attempts++
		p.TotalTime += responseTime
		p.State = game.ProgressCompleted
		p.Percentage = game.CompletionPercentage
		p.CompletedAt = &now
		return progress.Save(ctx, p)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return progress.Create(ctx, &model.Progress{
			StudentID:   studentID,
			WorldID:     worldID,
			State:       game.ProgressCompleted,
			Percentage:  game.CompletionPercentage,
			Attempts:    1,
			TotalTime:   responseTime,
			StartedAt:   &now,
			CompletedAt: &now,
		})
	default:
		return err
	}
}

func (s *ProgressionService) afterCommit(ctx context.Context, studentID uint, challenge *model.Challenge, out *outcome) {
	monitoring.RecordAttempt(string(challenge.Kind), out.attempt.Correct)
	if !out.attempt.Correct {
		return
	}

	monitoring.RecordReward(string(model.RewardPoints))
	if out.badge != nil {
		monitoring.RecordReward(string(model.RewardBadge))
	}

	if s.Gamification != nil {
		s.Gamification.Invalidate(ctx, studentID)
	}

	worldID := challenge.WorldID
	s.publish(ctx, events.New(events.WorldCompleted, studentID, worldID, map[string]interface{}{
		"attempt_reference": out.attempt.Reference,
		"points":            game.CompletionPoints,
	}))
	if out.badge != nil {
		s.publish(ctx, events.New(events.BadgeGranted, studentID, worldID, map[string]interface{}{
			"name": out.badge.Name,
		}))
	}
}

func (s *ProgressionService) publish(ctx context.Context, evt events.Event) {
	if err := s.Events.Publish(ctx, evt); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("type", string(evt.Type)),
			zap.Uint("student_id", evt.StudentID),
			zap.Error(err))
	}
}

func replay(prev *model.Attempt, challengeID uint) (*AttemptResult, error) {
	if prev.ChallengeID != challengeID {
		return nil, util.ErrIdempotencyKeyReused
	}
	return resultOf(prev, nil, true), nil
}

func resultOf(a *model.Attempt, badge *game.Badge, replayed bool) *AttemptResult {
	res := &AttemptResult{
		Success:   true,
		Correct:   a.Correct,
		Message:   msgIncorrect,
		AttemptID: a.ID,
		Reference: a.Reference,
		Replayed:  replayed,
	}
	if a.Correct {
		res.Message = msgCorrect
		res.WorldCompleted = true
		res.CompletedWorldID = a.CompletedWorldID
		res.NextUnlockedWorldID = a.NextUnlockedWorldID
		res.PointsEarned = game.CompletionPoints
		res.BadgeEarned = badge
	}
	return res
}
