package repository

import (
	"context"

	"pygely_backend/internal/model"

	lru "github.com/hashicorp/golang-lru"
	"gorm.io/gorm"
)

// ChallengeRepository reads the challenge catalogue. Challenges are
// read-only at runtime, so single lookups go through an LRU cache.
type ChallengeRepository struct {
	DB    *gorm.DB
	cache *lru.Cache
}

func NewChallengeRepository(db *gorm.DB, cacheSize int) (*ChallengeRepository, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &ChallengeRepository{DB: db, cache: cache}, nil
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id uint) (*model.Challenge, error) {
	if v, ok := r.cache.Get(id); ok {
		c := v.(model.Challenge)
		return &c, nil
	}

	var challenge model.Challenge
	if err := r.DB.WithContext(ctx).First(&challenge, id).Error; err != nil {
		return nil, err
	}
	r.cache.Add(id, challenge)
	return &challenge, nil
}

func (r *ChallengeRepository) FindByWorld(ctx context.Context, worldID uint) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.WithContext(ctx).Where("world_id = ?", worldID).Order("id ASC").Find(&challenges).Error
	return challenges, err
}

// Purge empties the cache after the catalogue is reseeded.
func (r *ChallengeRepository) Purge() {
	r.cache.Purge()
}
