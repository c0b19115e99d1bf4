package repository

import (
	"context"

	"pygely_backend/internal/model"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

// StudentStats aggregates progress for every student, including those who
// never started a world.
func (r *StatsRepository) StudentStats(ctx context.Context) ([]model.StudentStat, error) {
	var stats []model.StudentStat
	err := r.DB.WithContext(ctx).Table("users AS u").
		Select("u.id, u.name, u.email, "+
			"COUNT(DISTINCT p.world_id) AS worlds_started, "+
			"COALESCE(AVG(p.percentage), 0) AS average_completion, "+
			"COALESCE(SUM(p.total_time), 0) AS total_time").
		Joins("LEFT JOIN progress AS p ON p.student_id = u.id AND p.deleted_at IS NULL").
		Where("u.role = ? AND u.deleted_at IS NULL", model.Student).
		Group("u.id, u.name, u.email").
		Order("u.id ASC").
		Scan(&stats).Error
	return stats, err
}
