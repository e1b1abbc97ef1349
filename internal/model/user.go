package model

import (
	"time"
)

type UserRole string

const (
	Student      UserRole = "student"
	Professional UserRole = "professional"
)

// swagger:model User
type User struct {
	BaseModel
	Username     string    `gorm:"size:100;unique;not null" json:"username"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;default:'student'" json:"role"`
	CurrentStage string    `gorm:"size:255" json:"currentStage"`
	FieldInfo    string    `gorm:"size:255" json:"fieldInfo"` // field of study or job role
	EndGoal      string    `gorm:"size:255" json:"endGoal"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Profile is the subset of User embedded into generation prompts.
type Profile struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	CurrentStage string `json:"currentStage"`
	FieldInfo    string `json:"fieldInfo"`
	EndGoal      string `json:"endGoal"`
}

func (u *User) Profile() Profile {
	return Profile{
		Username:     u.Username,
		Role:         string(u.Role),
		CurrentStage: u.CurrentStage,
		FieldInfo:    u.FieldInfo,
		EndGoal:      u.EndGoal,
	}
}
