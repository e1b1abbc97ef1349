package repository

import (
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"

	"gorm.io/gorm"
)

type GapAnalysisRepository struct {
	DB *gorm.DB
}

func NewGapAnalysisRepository(db *gorm.DB) *GapAnalysisRepository {
	return &GapAnalysisRepository{DB: db}
}

func (r *GapAnalysisRepository) Create(analysis *model.GapAnalysis) error {
	return r.DB.Create(analysis).Error
}

func (r *GapAnalysisRepository) FindLatest(username, phase string) (*model.GapAnalysis, error) {
	var analysis model.GapAnalysis
	err := r.DB.Where("username = ? AND phase = ?", username, phase).
		Order("created_at DESC, id DESC").
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGapAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
