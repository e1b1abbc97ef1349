package model

// Roadmap 存储一次生成的学习路线图版本
// Versions are append-only; the latest one wins.
type Roadmap struct {
	BaseModel
	Username    string `gorm:"size:100;not null;index" json:"username"`
	RoadmapJSON string `gorm:"type:json;not null" json:"-"`

	User User `gorm:"foreignKey:Username;references:Username" json:"-"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}

// RoadmapContent is the structure the generation model must return.
type RoadmapContent struct {
	Roadmap RoadmapBody `json:"roadmap"`
}

type RoadmapBody struct {
	Phases []RoadmapPhase `json:"phases"`
}

type RoadmapPhase struct {
	Name       string             `json:"name"`
	Milestones []RoadmapMilestone `json:"milestones"`
}

type RoadmapMilestone struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Timeline    string   `json:"timeline"`
	Resources   []string `json:"resources"`
}

// PhaseCount is the number of phases every generated roadmap must contain.
const PhaseCount = 4
