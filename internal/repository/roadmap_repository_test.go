package repository

import (
	"testing"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestReturnsNewestVersion(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice")
	repo := NewRoadmapRepository(db)

	require.NoError(t, repo.Create(&model.Roadmap{Username: "alice", RoadmapJSON: `{"roadmap":{"phases":[]}}`}))
	require.NoError(t, repo.Create(&model.Roadmap{Username: "alice", RoadmapJSON: `{"roadmap":{"phases":[{"name":"Phase 1","milestones":[]}]}}`}))

	latest, err := repo.FindLatestByUsername("alice")
	require.NoError(t, err)
	assert.Contains(t, latest.RoadmapJSON, "Phase 1")

	history, err := repo.ListByUsername("alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, latest.ID, history[0].ID)
}

func TestFindLatestNoRoadmap(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice")
	repo := NewRoadmapRepository(db)

	_, err := repo.FindLatestByUsername("alice")
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)
}

func TestGapAnalysisFindLatestScopedByPhase(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice")
	repo := NewGapAnalysisRepository(db)

	require.NoError(t, repo.Create(&model.GapAnalysis{Username: "alice", Phase: "Phase 1", FeedbackJSON: `{"gap_analysis":{"recommendations":["one"]}}`}))
	require.NoError(t, repo.Create(&model.GapAnalysis{Username: "alice", Phase: "Phase 2", FeedbackJSON: `{"gap_analysis":{"recommendations":["two"]}}`}))

	latest, err := repo.FindLatest("alice", "Phase 1")
	require.NoError(t, err)
	assert.Contains(t, latest.FeedbackJSON, "one")

	_, err = repo.FindLatest("alice", "Phase 3")
	assert.ErrorIs(t, err, util.ErrGapAnalysisNotFound)
}

func TestRecordCompletionConflictIsNoOp(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.RecordCompletion("alice", "Phase 1", "Milestone 1.1"))
	require.NoError(t, repo.RecordCompletion("alice", "Phase 1", "Milestone 1.1"))

	done, err := repo.IsCompleted("alice", "Phase 1", "Milestone 1.1")
	require.NoError(t, err)
	assert.True(t, done)

	count, err := repo.CountCompleted("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
