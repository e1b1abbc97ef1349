package model

import "time"

// UserProgress marks a completed milestone. The unique index on the
// (username, phase, milestone) triple makes the completion insert
// idempotent even across concurrent sessions.
type UserProgress struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"size:100;not null;uniqueIndex:uniq_user_phase_milestone" json:"username"`
	Phase       string    `gorm:"size:255;not null;uniqueIndex:uniq_user_phase_milestone" json:"phase"`
	Milestone   string    `gorm:"size:255;not null;uniqueIndex:uniq_user_phase_milestone" json:"milestone"`
	CompletedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"completedAt"`

	User User `gorm:"foreignKey:Username;references:Username" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
