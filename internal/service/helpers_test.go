package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"skillpath_backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Roadmap{},
		&model.QuizResult{},
		&model.UserProgress{},
		&model.GapAnalysis{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) model.Profile {
	t.Helper()

	user := &model.User{
		Username:     username,
		Password:     "digest",
		Role:         model.Student,
		CurrentStage: "2nd year undergraduate",
		FieldInfo:    "Computer Science",
		EndGoal:      "Become a backend engineer",
	}
	require.NoError(t, db.Create(user).Error)
	return user.Profile()
}

// mockModel is a canned ModelClient. Each call returns the next response;
// the last one repeats once the list is exhausted.
type mockModel struct {
	responses []string
	err       error
	calls     int
}

func (m *mockModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

func jsonUnmarshal(raw string, v interface{}) error {
	return json.Unmarshal([]byte(raw), v)
}

func fenced(raw string) string {
	return "Here is the result:\n```json\n" + raw + "\n```\n"
}

func testRoadmapJSON(t *testing.T) string {
	t.Helper()

	content := model.RoadmapContent{}
	for i := 1; i <= model.PhaseCount; i++ {
		content.Roadmap.Phases = append(content.Roadmap.Phases, model.RoadmapPhase{
			Name: fmt.Sprintf("Phase %d", i),
			Milestones: []model.RoadmapMilestone{
				{
					Name:        fmt.Sprintf("Milestone %d.1", i),
					Description: "Learn the concepts.",
					Timeline:    "2 weeks",
					Resources:   []string{"Resource A", "Resource B"},
				},
				{
					Name:        fmt.Sprintf("Milestone %d.2", i),
					Description: "Practice the concepts.",
					Timeline:    "1 week",
					Resources:   []string{"Resource C"},
				},
			},
		})
	}

	raw, err := json.Marshal(content)
	require.NoError(t, err)
	return string(raw)
}

func testQuiz(t *testing.T) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{}
	for i := 1; i <= model.QuizQuestionCount; i++ {
		q := model.QuizQuestion{
			Question: fmt.Sprintf("Question %d?", i),
			Answer:   fmt.Sprintf("Answer %d", i),
		}
		if i%3 == 0 {
			q.Options = []string{q.Answer, "Wrong A", "Wrong B", "Wrong C"}
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

// quizAnswers returns a submission with the first n answers correct.
func quizAnswers(quiz *model.Quiz, n int) []string {
	answers := make([]string, len(quiz.Questions))
	for i := range quiz.Questions {
		if i < n {
			answers[i] = quiz.Questions[i].Answer
		} else {
			answers[i] = "wrong"
		}
	}
	return answers
}

func testQuizJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(testQuiz(t))
	require.NoError(t, err)
	return string(raw)
}

func testGapAnalysisJSON(t *testing.T, recommendations ...string) string {
	t.Helper()
	raw, err := json.Marshal(model.GapAnalysisContent{
		GapAnalysis: model.GapAnalysisBody{Recommendations: recommendations},
	})
	require.NoError(t, err)
	return string(raw)
}
