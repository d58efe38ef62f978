package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/chatrelay/server/internal/observability"
)

// MetricsOverviewResponse represents the overview response of in-process metrics.
type MetricsOverviewResponse struct {
	TotalRequests  int64                                     `json:"total_requests"`
	SuccessRate    float64                                   `json:"success_rate"`
	P50LatencyMs   int64                                     `json:"p50_latency_ms"`
	P95LatencyMs   int64                                     `json:"p95_latency_ms"`
	ErrorCount     int64                                     `json:"error_count"`
	PersistFailed  int64                                     `json:"persist_failed"`
	Outcomes       map[string]*observability.OutcomeSnapshot `json:"outcomes"`
	FailuresByCode map[string]int64                          `json:"failures_by_code"`
}

// GetMetricsOverview returns the counters collected since the process started.
// GET /api/metrics
func (s *APIV1Service) GetMetricsOverview(c echo.Context) error {
	snapshot := s.Metrics.Snapshot()
	return c.JSON(http.StatusOK, MetricsOverviewResponse{
		TotalRequests:  snapshot.RequestTotal,
		SuccessRate:    snapshot.SuccessRate(),
		P50LatencyMs:   snapshot.P50LatencyMs,
		P95LatencyMs:   snapshot.P95LatencyMs,
		ErrorCount:     snapshot.RequestFailed,
		PersistFailed:  snapshot.PersistFailed,
		Outcomes:       snapshot.Outcomes,
		FailuresByCode: snapshot.FailuresByCode,
	})
}
