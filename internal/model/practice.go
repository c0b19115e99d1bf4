package model

import (
	"strings"

	"pygely_backend/internal/game"
)

// swagger:model PracticeExercise
type PracticeExercise struct {
	BaseModel
	Topic      game.PracticeTopic `gorm:"size:30;index:idx_practice_topic_level,priority:1;not null" json:"topic"`
	Level      game.PracticeLevel `gorm:"size:20;index:idx_practice_topic_level,priority:2;not null" json:"level"`
	Expression string             `gorm:"size:255;not null" json:"expression"`
	Solution   string             `gorm:"size:255;not null" json:"-"`
	StepsText  string             `gorm:"column:steps;type:text" json:"-"`
}

func (PracticeExercise) TableName() string {
	return "practice_exercises"
}

func (e PracticeExercise) Steps() []string {
	if strings.TrimSpace(e.StepsText) == "" {
		return nil
	}
	return strings.Split(e.StepsText, "\n")
}

type PracticeResult struct {
	BaseModel
	StudentID  uint               `gorm:"index;not null" json:"studentId"`
	ExerciseID uint               `gorm:"index" json:"exerciseId"`
	Topic      game.PracticeTopic `gorm:"size:30;index" json:"topic"`
	Level      game.PracticeLevel `gorm:"size:20" json:"level"`
	Answer     string             `gorm:"size:255" json:"answer"`
	Correct    bool               `json:"correct"`
	Points     int                `json:"points"`
}

func (PracticeResult) TableName() string {
	return "practice_results"
}
