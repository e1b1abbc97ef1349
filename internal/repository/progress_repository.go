package repository

import (
	"time"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// RecordCompletion inserts a completed-milestone row at most once.
// The conflict-ignoring insert rides on the unique triple index, so the
// check and the insert are a single atomic statement.
func (r *ProgressRepository) RecordCompletion(username, phase, milestone string) error {
	progress := model.UserProgress{
		Username:    username,
		Phase:       phase,
		Milestone:   milestone,
		CompletedAt: time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
}

// GetProgress returns completed milestones grouped by phase, in completion order.
func (r *ProgressRepository) GetProgress(username string) (map[string][]string, error) {
	var rows []model.UserProgress
	err := r.DB.Where("username = ?", username).
		Order("completed_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	progress := make(map[string][]string)
	for _, row := range rows {
		progress[row.Phase] = append(progress[row.Phase], row.Milestone)
	}
	return progress, nil
}

func (r *ProgressRepository) IsCompleted(username, phase, milestone string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("username = ? AND phase = ? AND milestone = ?", username, phase, milestone).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CountCompleted(username string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("username = ?", username).
		Count(&count).Error
	return count, err
}
