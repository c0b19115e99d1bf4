package model

// Attempt is one submission against one challenge. Rows are never updated.
//
// swagger:model Attempt
type Attempt struct {
	BaseModel
	Reference        string   `gorm:"size:36;uniqueIndex" json:"reference"`
	StudentID        uint     `gorm:"index;uniqueIndex:idx_attempt_idempotency,priority:1;not null" json:"studentId"`
	ChallengeID      uint     `gorm:"index;not null" json:"challengeId"`
	IdempotencyKey   *string  `gorm:"size:64;uniqueIndex:idx_attempt_idempotency,priority:2" json:"-"`
	SubmittedAnswer  string   `gorm:"size:255" json:"submittedAnswer"`
	Correct          bool     `gorm:"default:false" json:"correct"`
	DistanceToTarget *float64 `json:"distanceToTarget,omitempty"`
	ResponseTime     float64  `json:"responseTime"`
	LeftLimit        *float64 `json:"leftLimit,omitempty"`
	RightLimit       *float64 `json:"rightLimit,omitempty"`

	// outcome snapshot, replayed for repeated idempotency keys
	CompletedWorldID    *uint `json:"completedWorldId,omitempty"`
	NextUnlockedWorldID *uint `json:"nextUnlockedWorldId,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}
