package model

import (
	"time"

	"pygely_backend/internal/game"
)

// Progress is a student's state in one world; unique per (student, world).
//
// swagger:model Progress
type Progress struct {
	BaseModel
	StudentID   uint               `gorm:"uniqueIndex:idx_progress_student_world,priority:1;not null" json:"studentId"`
	WorldID     uint               `gorm:"uniqueIndex:idx_progress_student_world,priority:2;not null" json:"worldId"`
	State       game.ProgressState `gorm:"size:20;default:'not_started'" json:"state"`
	Percentage  int                `gorm:"default:0" json:"percentage"`
	Attempts    int                `gorm:"default:0" json:"attempts"`
	TotalTime   float64            `gorm:"default:0" json:"totalTime"`
	StartedAt   *time.Time         `json:"startedAt,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
}

func (Progress) TableName() string {
	return "progress"
}

func (p Progress) Summary() game.ProgressSummary {
	return game.ProgressSummary{State: p.State, Percentage: p.Percentage}
}
