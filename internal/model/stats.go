package model

import "time"

// StudentStat is a teacher-facing aggregate over one student's progress.
type StudentStat struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	WorldsStarted     int64   `json:"worldsStarted"`
	AverageCompletion float64 `json:"averageCompletion"`
	TotalTime         float64 `json:"totalTime"`
}

type PracticeTopicStat struct {
	Topic    string `json:"topic"`
	Attempts int64  `json:"attempts"`
	Correct  int64  `json:"correct"`
	Points   int64  `json:"points"`
}

type BadgeView struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}
