package repository

import (
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"

	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

// Create appends a new roadmap version. Existing versions are never touched.
func (r *RoadmapRepository) Create(roadmap *model.Roadmap) error {
	return r.DB.Create(roadmap).Error
}

func (r *RoadmapRepository) FindLatestByUsername(username string) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	err := r.DB.Where("username = ?", username).
		Order("created_at DESC, id DESC").
		First(&roadmap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRoadmapNotFound
	}
	if err != nil {
		return nil, err
	}
	return &roadmap, nil
}

func (r *RoadmapRepository) ListByUsername(username string) ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	err := r.DB.Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&roadmaps).Error
	return roadmaps, err
}
