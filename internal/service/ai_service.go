package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
)

// ModelClient is the boundary to the external generation model. The
// generator services depend on this interface so tests can substitute a
// canned client.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService talks to an OpenAI-compatible chat-completions endpoint.
// Every call carries a bounded timeout and transient failures get a
// single bounded retry before ErrModelUnavailable surfaces.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// UpdateConfig applies hot-reloaded model settings.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		text, err := s.complete(ctx, cfg, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == cfg.MaxAttempts {
			break
		}

		logger.Log.Warn("model call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", util.ErrModelUnavailable, ctx.Err())
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	if isTransient(lastErr) {
		return "", fmt.Errorf("%w: %v", util.ErrModelUnavailable, lastErr)
	}
	return "", lastErr
}

func (s *AIService) complete(ctx context.Context, cfg config.AIConfig, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{
				Role:    "system",
				Content: "You are a learning-path planning assistant. Always answer with exactly one fenced ```json code block matching the requested structure.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &transientError{err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return "", &transientError{err: fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: AI returned no choices", util.ErrMalformedModelResponse)
	}

	return result.Choices[0].Message.Content, nil
}

// transientError marks network and 5xx/429 failures as retryable.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

var jsonBlockPattern = regexp.MustCompile("(?s)```json(.*?)```")

// ExtractJSONBlock pulls the inner text of the first ```json fenced block
// out of a model response. A response without such a block is a hard
// failure, never an empty result.
func ExtractJSONBlock(response string) (string, error) {
	match := jsonBlockPattern.FindStringSubmatch(response)
	if match == nil {
		return "", fmt.Errorf("%w: no fenced JSON block in response", util.ErrMalformedModelResponse)
	}
	return strings.TrimSpace(match[1]), nil
}
