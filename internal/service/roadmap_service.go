package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const roadmapCacheTTL = 10 * time.Minute

// RoadmapService turns a user profile into a persisted 4-phase roadmap.
// Generation happens at most once per profile unless explicitly requested;
// the latest version is cached in redis in front of the roadmaps table.
type RoadmapService struct {
	RoadmapRepo *repository.RoadmapRepository
	Model       ModelClient
	rdb         *redis.Client
}

func NewRoadmapService(roadmapRepo *repository.RoadmapRepository, modelClient ModelClient, rdb *redis.Client) *RoadmapService {
	return &RoadmapService{
		RoadmapRepo: roadmapRepo,
		Model:       modelClient,
		rdb:         rdb,
	}
}

// Generate prompts the model, validates the extracted JSON, and appends a
// new roadmap version. Nothing is persisted on any failure.
func (s *RoadmapService) Generate(ctx context.Context, profile model.Profile) (*model.RoadmapContent, error) {
	prompt := buildRoadmapPrompt(profile)

	var content model.RoadmapContent
	var rawJSON string
	err := generateJSON(ctx, s.Model, "roadmap", prompt, func(raw string) error {
		content = model.RoadmapContent{}
		if err := json.Unmarshal([]byte(raw), &content); err != nil {
			return fmt.Errorf("%w: %v", util.ErrMalformedModelResponse, err)
		}
		if err := validateRoadmap(&content); err != nil {
			return err
		}
		rawJSON = raw
		return nil
	})
	if err != nil {
		return nil, err
	}

	roadmap := &model.Roadmap{
		Username:    profile.Username,
		RoadmapJSON: rawJSON,
	}
	if err := s.RoadmapRepo.Create(roadmap); err != nil {
		return nil, fmt.Errorf("saving roadmap for %s: %w", profile.Username, err)
	}

	s.cacheSet(ctx, profile.Username, rawJSON)

	logger.Log.Info("roadmap generated",
		zap.String("username", profile.Username),
		zap.Int("phases", len(content.Roadmap.Phases)),
	)
	return &content, nil
}

// GetOrGenerate returns the latest persisted roadmap when one exists and
// only generates for a profile that has none. The model is never invoked
// for a user with history.
func (s *RoadmapService) GetOrGenerate(ctx context.Context, profile model.Profile) (*model.RoadmapContent, error) {
	if content := s.cacheGet(ctx, profile.Username); content != nil {
		return content, nil
	}

	latest, err := s.RoadmapRepo.FindLatestByUsername(profile.Username)
	if err == nil {
		content, perr := parseRoadmap(latest.RoadmapJSON)
		if perr != nil {
			return nil, perr
		}
		s.cacheSet(ctx, profile.Username, latest.RoadmapJSON)
		return content, nil
	}
	if !errors.Is(err, util.ErrRoadmapNotFound) {
		return nil, err
	}

	return s.Generate(ctx, profile)
}

// Regenerate always invokes generation and appends a new version.
func (s *RoadmapService) Regenerate(ctx context.Context, profile model.Profile) (*model.RoadmapContent, error) {
	return s.Generate(ctx, profile)
}

// Latest returns the newest stored roadmap without ever generating.
func (s *RoadmapService) Latest(username string) (*model.RoadmapContent, error) {
	latest, err := s.RoadmapRepo.FindLatestByUsername(username)
	if err != nil {
		return nil, err
	}
	return parseRoadmap(latest.RoadmapJSON)
}

// History lists all stored versions, newest first.
func (s *RoadmapService) History(username string) ([]model.Roadmap, error) {
	return s.RoadmapRepo.ListByUsername(username)
}

func parseRoadmap(rawJSON string) (*model.RoadmapContent, error) {
	var content model.RoadmapContent
	if err := json.Unmarshal([]byte(rawJSON), &content); err != nil {
		return nil, fmt.Errorf("parsing stored roadmap: %w", err)
	}
	return &content, nil
}

// validateRoadmap enforces the required shape before the structure is
// treated as domain data: exactly 4 phases, every milestone complete.
func validateRoadmap(content *model.RoadmapContent) error {
	phases := content.Roadmap.Phases
	if len(phases) != model.PhaseCount {
		return fmt.Errorf("%w: expected %d phases, got %d", util.ErrMalformedModelResponse, model.PhaseCount, len(phases))
	}

	for i, phase := range phases {
		if phase.Name == "" {
			return fmt.Errorf("%w: phase %d has no name", util.ErrMalformedModelResponse, i+1)
		}
		if len(phase.Milestones) == 0 {
			return fmt.Errorf("%w: phase %q has no milestones", util.ErrMalformedModelResponse, phase.Name)
		}
		for _, ms := range phase.Milestones {
			if ms.Name == "" || ms.Description == "" || ms.Timeline == "" || len(ms.Resources) == 0 {
				return fmt.Errorf("%w: incomplete milestone in phase %q", util.ErrMalformedModelResponse, phase.Name)
			}
		}
	}
	return nil
}

func (s *RoadmapService) cacheKey(username string) string {
	return "roadmap:latest:" + username
}

func (s *RoadmapService) cacheGet(ctx context.Context, username string) *model.RoadmapContent {
	if s.rdb == nil {
		return nil
	}
	rawJSON, err := s.rdb.Get(ctx, s.cacheKey(username)).Result()
	if err != nil {
		return nil
	}
	content, err := parseRoadmap(rawJSON)
	if err != nil {
		return nil
	}
	return content
}

func (s *RoadmapService) cacheSet(ctx context.Context, username, rawJSON string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, s.cacheKey(username), rawJSON, roadmapCacheTTL).Err(); err != nil {
		logger.Log.Warn("roadmap cache write failed", zap.String("username", username), zap.Error(err))
	}
}
