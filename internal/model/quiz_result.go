package model

// QuizResult 存储用户的测验结果
// Immutable after creation; one row per attempt.
type QuizResult struct {
	BaseModel
	Username    string `gorm:"size:100;not null;index" json:"username"`
	Phase       string `gorm:"size:255;not null" json:"phase"`
	QuizJSON    string `gorm:"type:json;not null" json:"-"`
	AnswersJSON string `gorm:"type:json;not null" json:"-"`
	Score       int    `gorm:"not null" json:"score"`
	Passed      bool   `gorm:"default:false" json:"passed"`

	User User `gorm:"foreignKey:Username;references:Username" json:"-"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// Quiz is the question set the generation model must return.
type Quiz struct {
	Questions []QuizQuestion `json:"quiz"`
}

// QuizQuestion covers the three supported types: multiple-choice carries
// exactly four options, true/false and short-answer carry none.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
}

const (
	// QuizQuestionCount is the fixed size of a generated quiz.
	QuizQuestionCount = 10
	// QuizOptionCount is the option count for multiple-choice questions.
	QuizOptionCount = 4
	// PassThreshold is the inclusive passing score.
	PassThreshold = 80
)
