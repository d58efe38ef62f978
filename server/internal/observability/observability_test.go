package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextLogsBaseFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	reqCtx := NewRequestContextWithID(logger, "req-1", "chat", "user-7")
	reqCtx.Error("completion failed", errors.New("boom"), slog.String(LogFieldErrorCode, "UPSTREAM"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry[LogFieldRequestID])
	assert.Equal(t, "user-7", entry[LogFieldUserID])
	assert.Equal(t, "chat", entry[LogFieldEndpoint])
	assert.Equal(t, "UPSTREAM", entry[LogFieldErrorCode])
	assert.Equal(t, "boom", entry["error"])
}

func TestNewRequestContextGeneratesID(t *testing.T) {
	reqCtx := NewRequestContext(nil, "chat", "u")
	assert.NotEmpty(t, reqCtx.RequestID)
	assert.NotNil(t, reqCtx.Logger)
}

func TestRequestContextRoundTrip(t *testing.T) {
	reqCtx := NewRequestContextWithID(nil, "req-2", "chat", "")
	ctx := WithRequestContext(context.Background(), reqCtx)

	got := FromContextOrNew(ctx, "chat", "user-9")
	assert.Same(t, reqCtx, got)
	assert.Equal(t, "user-9", got.UserID)

	fresh := FromContextOrNew(context.Background(), "chat", "user-9")
	assert.NotSame(t, reqCtx, fresh)
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics(10)
	m.RecordRequest()
	m.RecordRequest()
	m.RecordRequest()
	m.RecordOutcome(OutcomeCompletion, 100*time.Millisecond)
	m.RecordOutcome(OutcomeGreeting, 10*time.Millisecond)
	m.RecordFailure("UPSTREAM")
	m.RecordPersistFailure()

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.RequestTotal)
	assert.Equal(t, int64(1), s.RequestFailed)
	assert.Equal(t, int64(1), s.PersistFailed)
	assert.Equal(t, int64(1), s.FailuresByCode["UPSTREAM"])
	require.Contains(t, s.Outcomes, OutcomeCompletion)
	assert.Equal(t, int64(100), s.Outcomes[OutcomeCompletion].AvgLatencyMs)
	assert.Equal(t, int64(10), s.P50LatencyMs)
	assert.InDelta(t, 66.67, s.SuccessRate(), 0.01)

	m.Reset()
	assert.Equal(t, int64(0), m.Snapshot().RequestTotal)
}

func TestMetricsDurationWindow(t *testing.T) {
	m := NewMetrics(2)
	m.RecordOutcome(OutcomeCompletion, time.Second)
	m.RecordOutcome(OutcomeCompletion, 2*time.Millisecond)
	m.RecordOutcome(OutcomeCompletion, 4*time.Millisecond)

	s := m.Snapshot()
	assert.Equal(t, int64(4), s.P95LatencyMs)
}
