package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsTotals(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/incidents", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/incidents", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/clients", "POST", 201, 3*time.Millisecond)
	m.RecordError("/incidents", "POST", "VALIDATION_FAILED")

	requests := m.RequestTotals()
	require.Equal(t, int64(2), requests["/incidents|GET|200"])
	require.Equal(t, int64(1), requests["/clients|POST|201"])

	errors := m.ErrorTotals()
	require.Equal(t, int64(1), errors["/incidents|POST|VALIDATION_FAILED"])

	// Accessors return copies, not live maps.
	requests["/incidents|GET|200"] = 99
	require.Equal(t, int64(2), m.RequestTotals()["/incidents|GET|200"])
}

func TestMetricsNilReceiverNoops(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/incidents", "GET", 200, time.Millisecond)
	m.RecordError("/incidents", "GET", "NOT_FOUND")
}
