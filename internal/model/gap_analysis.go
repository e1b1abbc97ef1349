package model

// GapAnalysis 存储测验未通过后生成的补救建议
type GapAnalysis struct {
	BaseModel
	Username     string `gorm:"size:100;not null;index" json:"username"`
	Phase        string `gorm:"size:255;not null" json:"phase"`
	FeedbackJSON string `gorm:"type:json;not null" json:"-"`

	User User `gorm:"foreignKey:Username;references:Username" json:"-"`
}

func (GapAnalysis) TableName() string {
	return "gap_analysis"
}

// GapAnalysisContent is the structure the generation model must return.
type GapAnalysisContent struct {
	GapAnalysis GapAnalysisBody `json:"gap_analysis"`
}

type GapAnalysisBody struct {
	Recommendations []string `json:"recommendations"`
}
