package repository

import (
	"context"

	"pygely_backend/internal/game"
	"pygely_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeRepository struct {
	DB *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

func (r *PracticeRepository) ExerciseIDs(ctx context.Context, topic game.PracticeTopic, level game.PracticeLevel) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.PracticeExercise{}).
		Where("topic = ? AND level = ?", topic, level).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *PracticeRepository) FindExercise(ctx context.Context, id uint) (*model.PracticeExercise, error) {
	var e model.PracticeExercise
	err := r.DB.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *PracticeRepository) CreateResult(ctx context.Context, result *model.PracticeResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *PracticeRepository) StatsByStudent(ctx context.Context, studentID uint) ([]model.PracticeTopicStat, error) {
	var stats []model.PracticeTopicStat
	err := r.DB.WithContext(ctx).Model(&model.PracticeResult{}).
		Select("topic, COUNT(*) AS attempts, "+
			"SUM(CASE WHEN correct = ? THEN 1 ELSE 0 END) AS correct, "+
			"COALESCE(SUM(points), 0) AS points", true).
		Where("student_id = ?", studentID).
		Group("topic").
		Order("topic ASC").
		Scan(&stats).Error
	return stats, err
}
