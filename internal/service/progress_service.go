package service

import (
	"encoding/json"
	"fmt"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService records milestone completion and quiz outcomes and
// aggregates them for display.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	QuizRepo     *repository.QuizRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, quizRepo *repository.QuizRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		QuizRepo:     quizRepo,
	}
}

// RecordCompletion marks a milestone complete. Repeating the call with the
// same triple is a no-op.
func (s *ProgressService) RecordCompletion(username, phase, milestone string) error {
	if err := s.ProgressRepo.RecordCompletion(username, phase, milestone); err != nil {
		return fmt.Errorf("recording completion %s/%s/%s: %w", username, phase, milestone, err)
	}
	return nil
}

// RecordQuizOutcome persists the quiz attempt and, on a pass, marks the
// gated milestone complete. A failed attempt records nothing beyond the
// attempt itself.
func (s *ProgressService) RecordQuizOutcome(username, phase, milestone string, quiz *model.Quiz, answers []string, score int, passed bool) error {
	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	result := &model.QuizResult{
		Username:    username,
		Phase:       phase,
		QuizJSON:    string(quizJSON),
		AnswersJSON: string(answersJSON),
		Score:       score,
		Passed:      passed,
	}
	if err := s.QuizRepo.Create(result); err != nil {
		return fmt.Errorf("saving quiz result for %s/%s: %w", username, phase, err)
	}

	logger.Log.Info("quiz outcome recorded",
		zap.String("username", username),
		zap.String("phase", phase),
		zap.Int("score", score),
		zap.Bool("passed", passed),
	)

	if !passed {
		return nil
	}
	return s.RecordCompletion(username, phase, milestone)
}

// GetProgressSummary maps each phase to its completed milestones in
// completion order.
func (s *ProgressService) GetProgressSummary(username string) (map[string][]string, error) {
	return s.ProgressRepo.GetProgress(username)
}
