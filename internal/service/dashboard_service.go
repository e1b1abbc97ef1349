package service

import (
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
)

type DashboardService struct {
	UserRepo        *repository.UserRepository
	RoadmapService  *RoadmapService
	ProgressService *ProgressService
}

func NewDashboardService(userRepo *repository.UserRepository, roadmapService *RoadmapService, progressService *ProgressService) *DashboardService {
	return &DashboardService{
		UserRepo:        userRepo,
		RoadmapService:  roadmapService,
		ProgressService: progressService,
	}
}

type CurrentMilestone struct {
	Phase     string `json:"phase"`
	Milestone string `json:"milestone"`
}

type Dashboard struct {
	Profile    model.Profile         `json:"profile"`
	Roadmap    *model.RoadmapContent `json:"roadmap,omitempty"`
	Progress   map[string][]string   `json:"progress"`
	Completion float64               `json:"completion"`
	Current    *CurrentMilestone     `json:"current,omitempty"`
}

// GetDashboard aggregates the profile, the latest roadmap, and the
// completed milestones. A user without a roadmap gets the empty initial
// state, not an error.
func (s *DashboardService) GetDashboard(username string) (*Dashboard, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressService.GetProgressSummary(username)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Profile:  user.Profile(),
		Progress: progress,
	}

	content, err := s.RoadmapService.Latest(username)
	if errors.Is(err, util.ErrRoadmapNotFound) {
		return dashboard, nil
	}
	if err != nil {
		return nil, err
	}

	dashboard.Roadmap = content
	dashboard.Current = firstIncomplete(content, progress)
	dashboard.Completion = completionRatio(content, progress)
	return dashboard, nil
}

// firstIncomplete walks the roadmap in order and returns the first
// milestone without a completion record.
func firstIncomplete(content *model.RoadmapContent, progress map[string][]string) *CurrentMilestone {
	for _, phase := range content.Roadmap.Phases {
		done := make(map[string]bool, len(progress[phase.Name]))
		for _, m := range progress[phase.Name] {
			done[m] = true
		}
		for _, ms := range phase.Milestones {
			if !done[ms.Name] {
				return &CurrentMilestone{Phase: phase.Name, Milestone: ms.Name}
			}
		}
	}
	return nil
}

func completionRatio(content *model.RoadmapContent, progress map[string][]string) float64 {
	total := 0
	completed := 0
	for _, phase := range content.Roadmap.Phases {
		done := make(map[string]bool, len(progress[phase.Name]))
		for _, m := range progress[phase.Name] {
			done[m] = true
		}
		for _, ms := range phase.Milestones {
			total++
			if done[ms.Name] {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
