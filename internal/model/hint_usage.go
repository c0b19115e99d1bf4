package model

type HintUsage struct {
	BaseModel
	StudentID   uint   `gorm:"index;not null" json:"studentId"`
	ChallengeID uint   `gorm:"index;not null" json:"challengeId"`
	Level       int    `json:"level"`
	Text        string `gorm:"type:text" json:"text"`
	Character   string `gorm:"size:60" json:"character"`
}

func (HintUsage) TableName() string {
	return "hint_usages"
}
