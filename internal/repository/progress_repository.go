package repository

import (
	"context"

	"pygely_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

// Find returns the (student, world) row, or gorm.ErrRecordNotFound.
func (r *ProgressRepository) Find(ctx context.Context, studentID, worldID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND world_id = ?", studentID, worldID).
		First(&p).Error
	return &p, err
}

// FindForUpdate is Find with a row lock, for use inside a transaction.
func (r *ProgressRepository) FindForUpdate(ctx context.Context, studentID, worldID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ? AND world_id = ?", studentID, worldID).
		First(&p).Error
	return &p, err
}

func (r *ProgressRepository) Create(ctx context.Context, p *model.Progress) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *ProgressRepository) Save(ctx context.Context, p *model.Progress) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *ProgressRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.DB.WithContext(ctx).Where("student_id = ?", studentID).Find(&rows).Error
	return rows, err
}
