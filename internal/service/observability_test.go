package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(zerolog.New(&buf).Level(zerolog.DebugLevel))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "load-corpus",
		Duration: 1500 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"topics": 3},
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "service_use_case", entry["message"])
	assert.Equal(t, "load-corpus", entry["use_case"])
	assert.Equal(t, float64(1500), entry["duration_ms"])
	assert.Equal(t, true, entry["success"])
	assert.Equal(t, float64(3), entry["topics"])
}

func TestLogUseCaseObserver_FailureLogsError(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(zerolog.New(&buf).Level(zerolog.InfoLevel))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "ok", Success: true})
	assert.Zero(t, buf.Len(), "successes are debug-only")

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "save-snapshot", Err: errors.New("disk full")})
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, false, entry["success"])
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
