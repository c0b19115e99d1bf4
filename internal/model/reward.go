package model

type RewardKind string

const (
	RewardPoints RewardKind = "points"
	RewardBadge  RewardKind = "badge"
)

// Reward is an append-only grant. BadgeKey is set for badges only so the
// (student, badge) pair stays unique while points rows never collide.
//
// swagger:model Reward
type Reward struct {
	BaseModel
	StudentID   uint       `gorm:"index;uniqueIndex:idx_reward_badge,priority:1;not null" json:"studentId"`
	Kind        RewardKind `gorm:"size:20;index;not null" json:"kind"`
	Value       int        `gorm:"not null" json:"value"`
	Name        string     `gorm:"size:120" json:"name"`
	Description string     `gorm:"size:255" json:"description"`
	WorldID     *uint      `json:"worldId,omitempty"`
	BadgeKey    *string    `gorm:"size:40;uniqueIndex:idx_reward_badge,priority:2" json:"-"`
}

func (Reward) TableName() string {
	return "rewards"
}
