package repository

import (
	"context"

	"pygely_backend/internal/model"

	"gorm.io/gorm"
)

type WorldRepository struct {
	DB *gorm.DB
}

func NewWorldRepository(db *gorm.DB) *WorldRepository {
	return &WorldRepository{DB: db}
}

// List returns every world by ascending order index.
func (r *WorldRepository) List(ctx context.Context) ([]model.World, error) {
	var worlds []model.World
	err := r.DB.WithContext(ctx).Order("order_index ASC").Find(&worlds).Error
	return worlds, err
}

func (r *WorldRepository) FindByID(ctx context.Context, id uint) (*model.World, error) {
	var world model.World
	err := r.DB.WithContext(ctx).First(&world, id).Error
	return &world, err
}
