package util

import "errors"

var (
	ErrUsernameTaken          = errors.New("username already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrRoadmapNotFound        = errors.New("roadmap not found")
	ErrGapAnalysisNotFound    = errors.New("gap analysis not found")
	ErrModelUnavailable       = errors.New("generation model unavailable")
	ErrMalformedModelResponse = errors.New("malformed model response")
)
