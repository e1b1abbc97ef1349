package service

import (
	"context"
	"testing"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type quizFixture struct {
	db       *gorm.DB
	svc      *QuizService
	progress *repository.ProgressRepository
	profile  model.Profile
}

func newQuizFixture(t *testing.T, client ModelClient) *quizFixture {
	t.Helper()

	db := newTestDB(t)
	profile := createTestUser(t, db, "bob")

	quizRepo := repository.NewQuizRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	progress := NewProgressService(progressRepo, quizRepo)

	return &quizFixture{
		db:       db,
		svc:      NewQuizService(quizRepo, repository.NewGapAnalysisRepository(db), progress, client),
		progress: progressRepo,
		profile:  profile,
	}
}

func TestQuizGenerateValidatesShape(t *testing.T) {
	client := &mockModel{responses: []string{fenced(testQuizJSON(t))}}
	fx := newQuizFixture(t, client)

	quiz, err := fx.svc.Generate(context.Background(), fx.profile, "Phase 1")
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, model.QuizQuestionCount)
}

func TestQuizGenerateRejectsWrongQuestionCount(t *testing.T) {
	short := `{"quiz":[{"question":"Only one?","answer":"Yes"}]}`
	client := &mockModel{responses: []string{fenced(short)}}
	fx := newQuizFixture(t, client)

	_, err := fx.svc.Generate(context.Background(), fx.profile, "Phase 1")
	assert.ErrorIs(t, err, util.ErrMalformedModelResponse)
}

func TestQuizScoreThresholdIsInclusive(t *testing.T) {
	fx := newQuizFixture(t, &mockModel{})
	quiz := testQuiz(t)

	report, err := fx.svc.Score(quiz, quizAnswers(quiz, 8))
	require.NoError(t, err)
	assert.Equal(t, 80, report.Score)
	assert.True(t, report.Passed)

	report, err = fx.svc.Score(quiz, quizAnswers(quiz, 7))
	require.NoError(t, err)
	assert.Equal(t, 70, report.Score)
	assert.False(t, report.Passed)
	assert.Len(t, report.Wrong, 3)
}

func TestQuizScoreIgnoresCaseAndWhitespace(t *testing.T) {
	fx := newQuizFixture(t, &mockModel{})
	quiz := testQuiz(t)

	answers := quizAnswers(quiz, len(quiz.Questions))
	answers[0] = "  ANSWER 1  "
	answers[1] = "answer 2"

	report, err := fx.svc.Score(quiz, answers)
	require.NoError(t, err)
	assert.Equal(t, 100, report.Score)
	assert.True(t, report.Passed)
}

func TestQuizScoreAnswerCountMismatch(t *testing.T) {
	fx := newQuizFixture(t, &mockModel{})
	quiz := testQuiz(t)

	_, err := fx.svc.Score(quiz, []string{"just one"})
	assert.Error(t, err)
}

func TestQuizSubmitFailureTriggersGapAnalysis(t *testing.T) {
	client := &mockModel{responses: []string{
		fenced(testGapAnalysisJSON(t, "Revise sorting algorithms", "Redo the recursion module")),
	}}
	fx := newQuizFixture(t, client)
	quiz := testQuiz(t)

	result, err := fx.svc.Submit(context.Background(), fx.profile, "Phase 1", "Milestone 1.2", quiz, quizAnswers(quiz, 6))
	require.NoError(t, err)
	assert.Equal(t, 60, result.Score)
	assert.False(t, result.Passed)
	assert.Len(t, result.Recommendations, 2)

	// Feedback is stored and retrievable per (user, phase).
	stored, err := fx.svc.GetGapAnalysis(fx.profile.Username, "Phase 1")
	require.NoError(t, err)
	assert.Equal(t, result.Recommendations, stored)

	// The attempt is recorded but nothing is marked complete.
	attempts, err := fx.svc.QuizRepo.ListByUsernameAndPhase(fx.profile.Username, "Phase 1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, 60, attempts[0].Score)
	assert.False(t, attempts[0].Passed)

	count, err := fx.progress.CountCompleted(fx.profile.Username)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestQuizSubmitPassMarksMilestoneComplete(t *testing.T) {
	client := &mockModel{}
	fx := newQuizFixture(t, client)
	quiz := testQuiz(t)

	result, err := fx.svc.Submit(context.Background(), fx.profile, "Phase 1", "Milestone 1.2", quiz, quizAnswers(quiz, 9))
	require.NoError(t, err)
	assert.Equal(t, 90, result.Score)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Recommendations)

	// A passing attempt never invokes the model.
	assert.Zero(t, client.calls)

	done, err := fx.progress.IsCompleted(fx.profile.Username, "Phase 1", "Milestone 1.2")
	require.NoError(t, err)
	assert.True(t, done)

	_, err = fx.svc.GetGapAnalysis(fx.profile.Username, "Phase 1")
	assert.ErrorIs(t, err, util.ErrGapAnalysisNotFound)
}

func TestQuizGetGapAnalysisReturnsLatest(t *testing.T) {
	client := &mockModel{responses: []string{
		fenced(testGapAnalysisJSON(t, "First attempt feedback")),
		fenced(testGapAnalysisJSON(t, "Second attempt feedback")),
	}}
	fx := newQuizFixture(t, client)
	quiz := testQuiz(t)

	_, err := fx.svc.Submit(context.Background(), fx.profile, "Phase 2", "Milestone 2.1", quiz, quizAnswers(quiz, 5))
	require.NoError(t, err)
	_, err = fx.svc.Submit(context.Background(), fx.profile, "Phase 2", "Milestone 2.1", quiz, quizAnswers(quiz, 6))
	require.NoError(t, err)

	stored, err := fx.svc.GetGapAnalysis(fx.profile.Username, "Phase 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Second attempt feedback"}, stored)
}

func TestValidateQuizOptionCount(t *testing.T) {
	quiz := testQuiz(t)
	require.NoError(t, validateQuiz(quiz))

	quiz.Questions[2].Options = []string{"only", "three", "options"}
	assert.ErrorIs(t, validateQuiz(quiz), util.ErrMalformedModelResponse)
}
