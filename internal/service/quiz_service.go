package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizService generates per-phase quizzes, scores them against the fixed
// pass threshold, and produces gap analysis for failed attempts.
type QuizService struct {
	QuizRepo *repository.QuizRepository
	GapRepo  *repository.GapAnalysisRepository
	Progress *ProgressService
	Model    ModelClient
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	gapRepo *repository.GapAnalysisRepository,
	progress *ProgressService,
	modelClient ModelClient,
) *QuizService {
	return &QuizService{
		QuizRepo: quizRepo,
		GapRepo:  gapRepo,
		Progress: progress,
		Model:    modelClient,
	}
}

// QuestionResult is the per-question outcome of scoring.
type QuestionResult struct {
	Question string `json:"question"`
	Given    string `json:"given"`
	Expected string `json:"expected"`
	Correct  bool   `json:"correct"`
}

// WrongAnswer feeds the gap-analysis prompt.
type WrongAnswer struct {
	Question string `json:"question"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
}

// ScoreReport is the result of scoring one attempt.
type ScoreReport struct {
	Score   int              `json:"score"`
	Passed  bool             `json:"passed"`
	Results []QuestionResult `json:"results"`
	Wrong   []WrongAnswer    `json:"-"`
}

// SubmitResult is the persisted outcome of a quiz submission.
type SubmitResult struct {
	Score           int              `json:"score"`
	Passed          bool             `json:"passed"`
	Results         []QuestionResult `json:"results"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// Generate builds a 10-question mixed-type quiz for the given phase.
// The quiz is not persisted; persistence happens after scoring.
func (s *QuizService) Generate(ctx context.Context, profile model.Profile, phase string) (*model.Quiz, error) {
	prompt := buildQuizPrompt(profile, phase)

	var quiz model.Quiz
	err := generateJSON(ctx, s.Model, "quiz", prompt, func(raw string) error {
		quiz = model.Quiz{}
		if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
			return fmt.Errorf("%w: %v", util.ErrMalformedModelResponse, err)
		}
		return validateQuiz(&quiz)
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Score compares each submitted answer to the canonical one, ignoring
// case and surrounding whitespace. The pass threshold is inclusive.
func (s *QuizService) Score(quiz *model.Quiz, answers []string) (*ScoreReport, error) {
	if len(answers) != len(quiz.Questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(quiz.Questions), len(answers))
	}

	report := &ScoreReport{
		Results: make([]QuestionResult, len(quiz.Questions)),
	}

	correct := 0
	for i, q := range quiz.Questions {
		given := strings.TrimSpace(answers[i])
		ok := strings.EqualFold(given, strings.TrimSpace(q.Answer))
		if ok {
			correct++
		} else {
			report.Wrong = append(report.Wrong, WrongAnswer{
				Question: q.Question,
				Expected: q.Answer,
				Given:    given,
			})
		}
		report.Results[i] = QuestionResult{
			Question: q.Question,
			Given:    given,
			Expected: q.Answer,
			Correct:  ok,
		}
	}

	report.Score = correct * 100 / len(quiz.Questions)
	report.Passed = report.Score >= model.PassThreshold
	return report, nil
}

// Submit scores an attempt, records the outcome, and on failure generates
// and persists gap-analysis feedback for (username, phase). A passed
// attempt marks the gated milestone complete instead.
func (s *QuizService) Submit(ctx context.Context, profile model.Profile, phase, milestone string, quiz *model.Quiz, answers []string) (*SubmitResult, error) {
	report, err := s.Score(quiz, answers)
	if err != nil {
		return nil, err
	}

	if err := s.Progress.RecordQuizOutcome(profile.Username, phase, milestone, quiz, answers, report.Score, report.Passed); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Score:   report.Score,
		Passed:  report.Passed,
		Results: report.Results,
	}

	if report.Passed {
		return result, nil
	}

	recommendations, err := s.GenerateGapAnalysis(ctx, profile, report.Wrong)
	if err != nil {
		// The attempt itself is already recorded; the missing feedback
		// surfaces as a generation failure.
		return nil, err
	}

	feedbackJSON, err := json.Marshal(model.GapAnalysisContent{
		GapAnalysis: model.GapAnalysisBody{Recommendations: recommendations},
	})
	if err != nil {
		return nil, err
	}

	analysis := &model.GapAnalysis{
		Username:     profile.Username,
		Phase:        phase,
		FeedbackJSON: string(feedbackJSON),
	}
	if err := s.GapRepo.Create(analysis); err != nil {
		return nil, fmt.Errorf("saving gap analysis for %s/%s: %w", profile.Username, phase, err)
	}

	logger.Log.Info("gap analysis saved",
		zap.String("username", profile.Username),
		zap.String("phase", phase),
		zap.Int("recommendations", len(recommendations)),
	)

	result.Recommendations = recommendations
	return result, nil
}

// GenerateGapAnalysis asks the model for remediation recommendations based
// on the incorrect answers. The caller persists the outcome.
func (s *QuizService) GenerateGapAnalysis(ctx context.Context, profile model.Profile, wrongAnswers []WrongAnswer) ([]string, error) {
	prompt := buildGapAnalysisPrompt(profile, wrongAnswers)

	var content model.GapAnalysisContent
	err := generateJSON(ctx, s.Model, "gap_analysis", prompt, func(raw string) error {
		content = model.GapAnalysisContent{}
		if err := json.Unmarshal([]byte(raw), &content); err != nil {
			return fmt.Errorf("%w: %v", util.ErrMalformedModelResponse, err)
		}
		if len(content.GapAnalysis.Recommendations) == 0 {
			return fmt.Errorf("%w: empty recommendation list", util.ErrMalformedModelResponse)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content.GapAnalysis.Recommendations, nil
}

// GetGapAnalysis returns the latest stored feedback for (username, phase).
func (s *QuizService) GetGapAnalysis(username, phase string) ([]string, error) {
	analysis, err := s.GapRepo.FindLatest(username, phase)
	if err != nil {
		return nil, err
	}

	var content model.GapAnalysisContent
	if err := json.Unmarshal([]byte(analysis.FeedbackJSON), &content); err != nil {
		return nil, fmt.Errorf("parsing stored gap analysis: %w", err)
	}
	return content.GapAnalysis.Recommendations, nil
}

func validateQuiz(quiz *model.Quiz) error {
	if len(quiz.Questions) != model.QuizQuestionCount {
		return fmt.Errorf("%w: expected %d questions, got %d", util.ErrMalformedModelResponse, model.QuizQuestionCount, len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		if q.Question == "" || q.Answer == "" {
			return fmt.Errorf("%w: question %d is incomplete", util.ErrMalformedModelResponse, i+1)
		}
		if len(q.Options) != 0 && len(q.Options) != model.QuizOptionCount {
			return fmt.Errorf("%w: question %d has %d options, want %d", util.ErrMalformedModelResponse, i+1, len(q.Options), model.QuizOptionCount)
		}
	}
	return nil
}
