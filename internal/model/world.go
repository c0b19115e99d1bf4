package model

import "pygely_backend/internal/game"

// swagger:model World
type World struct {
	BaseModel
	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"column:order_index;uniqueIndex;not null" json:"order"`
}

func (World) TableName() string {
	return "worlds"
}

func (w World) Ref() game.WorldRef {
	return game.WorldRef{ID: w.ID, Order: w.Order}
}
