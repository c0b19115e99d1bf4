package repository

import (
	"context"

	"pygely_backend/internal/model"

	"gorm.io/gorm"
)

type HintRepository struct {
	DB *gorm.DB
}

func NewHintRepository(db *gorm.DB) *HintRepository {
	return &HintRepository{DB: db}
}

func (r *HintRepository) Create(ctx context.Context, usage *model.HintUsage) error {
	return r.DB.WithContext(ctx).Create(usage).Error
}
