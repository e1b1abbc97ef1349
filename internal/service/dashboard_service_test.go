package service

import (
	"context"
	"testing"

	"skillpath_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture(t *testing.T, client ModelClient) (*DashboardService, *RoadmapService, *ProgressService, string) {
	t.Helper()

	db := newTestDB(t)
	profile := createTestUser(t, db, "alice")

	userRepo := repository.NewUserRepository(db)
	roadmap := NewRoadmapService(repository.NewRoadmapRepository(db), client, nil)
	progress := NewProgressService(repository.NewProgressRepository(db), repository.NewQuizRepository(db))
	return NewDashboardService(userRepo, roadmap, progress), roadmap, progress, profile.Username
}

func TestDashboardWithoutRoadmapIsEmptyState(t *testing.T) {
	svc, _, _, username := newDashboardFixture(t, &mockModel{})

	dashboard, err := svc.GetDashboard(username)
	require.NoError(t, err)
	assert.Equal(t, username, dashboard.Profile.Username)
	assert.Nil(t, dashboard.Roadmap)
	assert.Nil(t, dashboard.Current)
	assert.Empty(t, dashboard.Progress)
	assert.Zero(t, dashboard.Completion)
}

func TestDashboardTracksCurrentMilestone(t *testing.T) {
	client := &mockModel{responses: []string{fenced(testRoadmapJSON(t))}}
	svc, roadmap, progress, username := newDashboardFixture(t, client)

	profile, err := svc.UserRepo.FindByUsername(username)
	require.NoError(t, err)
	_, err = roadmap.Generate(context.Background(), profile.Profile())
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(username)
	require.NoError(t, err)
	require.NotNil(t, dashboard.Current)
	assert.Equal(t, "Phase 1", dashboard.Current.Phase)
	assert.Equal(t, "Milestone 1.1", dashboard.Current.Milestone)
	assert.Zero(t, dashboard.Completion)

	// Completing the first milestone advances the pointer.
	require.NoError(t, progress.RecordCompletion(username, "Phase 1", "Milestone 1.1"))

	dashboard, err = svc.GetDashboard(username)
	require.NoError(t, err)
	require.NotNil(t, dashboard.Current)
	assert.Equal(t, "Milestone 1.2", dashboard.Current.Milestone)
	assert.InDelta(t, 1.0/8.0, dashboard.Completion, 1e-9)
}

func TestDashboardFullyCompleteHasNoCurrent(t *testing.T) {
	client := &mockModel{responses: []string{fenced(testRoadmapJSON(t))}}
	svc, roadmap, progress, username := newDashboardFixture(t, client)

	profile, err := svc.UserRepo.FindByUsername(username)
	require.NoError(t, err)
	content, err := roadmap.Generate(context.Background(), profile.Profile())
	require.NoError(t, err)

	for _, phase := range content.Roadmap.Phases {
		for _, ms := range phase.Milestones {
			require.NoError(t, progress.RecordCompletion(username, phase.Name, ms.Name))
		}
	}

	dashboard, err := svc.GetDashboard(username)
	require.NoError(t, err)
	assert.Nil(t, dashboard.Current)
	assert.Equal(t, 1.0, dashboard.Completion)
}
