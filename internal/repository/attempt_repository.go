package repository

import (
	"context"

	"pygely_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: tx}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *AttemptRepository) FindByIdempotencyKey(ctx context.Context, studentID uint, key string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND idempotency_key = ?", studentID, key).
		First(&attempt).Error
	return &attempt, err
}

func (r *AttemptRepository) CountIncorrect(ctx context.Context, studentID, challengeID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Attempt{}).
		Where("student_id = ? AND challenge_id = ? AND correct = ?", studentID, challengeID, false).
		Count(&count).Error
	return count, err
}
