package service

import (
	"context"
	"errors"
	"time"

	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/monitoring"
)

// generationAttempts caps how often a prompt is re-sent when the model
// returns malformed output. Transient network retries happen one layer
// down in the model client; re-prompting blindly just repeats the cost.
const generationAttempts = 2

// generateJSON asks the model for a fenced JSON block and hands the inner
// text to decode, which parses and validates it. Malformed output gets one
// fresh generation; any other failure surfaces immediately.
func generateJSON(ctx context.Context, client ModelClient, kind, prompt string, decode func(raw string) error) error {
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= generationAttempts; attempt++ {
		text, err := client.Complete(ctx, prompt)
		if err != nil {
			monitoring.ObserveModelCall(kind, "unavailable", time.Since(start))
			return err
		}

		raw, err := ExtractJSONBlock(text)
		if err == nil {
			err = decode(raw)
			if err == nil {
				monitoring.ObserveModelCall(kind, "ok", time.Since(start))
				return nil
			}
		}

		if !errors.Is(err, util.ErrMalformedModelResponse) {
			monitoring.ObserveModelCall(kind, "error", time.Since(start))
			return err
		}
		lastErr = err
	}

	monitoring.ObserveModelCall(kind, "malformed", time.Since(start))
	return lastErr
}
