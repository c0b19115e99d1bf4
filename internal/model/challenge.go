package model

import (
	"pygely_backend/internal/game"

	"gorm.io/datatypes"
)

// swagger:model Challenge
type Challenge struct {
	BaseModel
	WorldID       uint               `gorm:"index;not null" json:"worldId"`
	Name          string             `gorm:"size:150" json:"name"`
	Kind          game.ChallengeKind `gorm:"column:type;size:40;not null" json:"type"`
	Parameters    datatypes.JSON     `json:"parameters"`
	CorrectAnswer *float64           `json:"-"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// Definition converts the stored row to the evaluator's view. A malformed
// parameter bag is returned as an error next to a usable definition with
// empty parameters.
func (c *Challenge) Definition() (game.Definition, error) {
	params, err := game.ParseParams(c.Parameters)
	return game.Definition{
		ID:            c.ID,
		WorldID:       c.WorldID,
		Kind:          c.Kind,
		Params:        params,
		CorrectAnswer: c.CorrectAnswer,
	}, err
}
