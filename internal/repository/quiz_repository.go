package repository

import (
	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizRepository) ListByUsername(username string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&results).Error
	return results, err
}

func (r *QuizRepository) ListByUsernameAndPhase(username, phase string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("username = ? AND phase = ?", username, phase).
		Order("created_at DESC, id DESC").
		Find(&results).Error
	return results, err
}
