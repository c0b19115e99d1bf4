package repository

import (
	"context"

	"pygely_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardRepository struct {
	DB *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: db}
}

func (r *RewardRepository) WithTx(tx *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: tx}
}

func (r *RewardRepository) Create(ctx context.Context, reward *model.Reward) error {
	return r.DB.WithContext(ctx).Create(reward).Error
}

// CreateBadgeOnce appends a badge unless the student already holds one with
// the same key. It reports whether a row was written.
func (r *RewardRepository) CreateBadgeOnce(ctx context.Context, reward *model.Reward) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reward)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RewardRepository) TotalPoints(ctx context.Context, studentID uint) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Reward{}).
		Where("student_id = ? AND kind = ?", studentID, model.RewardPoints).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

// ListBadges returns the student's badges, newest first.
func (r *RewardRepository) ListBadges(ctx context.Context, studentID uint) ([]model.BadgeView, error) {
	var badges []model.BadgeView
	err := r.DB.WithContext(ctx).Model(&model.Reward{}).
		Select("name, description, created_at AS earned_at").
		Where("student_id = ? AND kind = ?", studentID, model.RewardBadge).
		Order("created_at DESC, id DESC").
		Scan(&badges).Error
	return badges, err
}
