package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/TableConverter/internal/core"
)

func TestObserveStage(t *testing.T) {
	c := New()

	c.ObserveStage(core.StageParse, core.OutcomeOK, 2*time.Millisecond)
	c.ObserveStage(core.StageParse, core.OutcomeOK, 3*time.Millisecond)
	c.ObserveStage(core.StageSelectColumns, core.OutcomeError, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.stages.WithLabelValues("parse", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stages.WithLabelValues("select_columns", "error")))
	// failed stages do not add a duration sample
	assert.Equal(t, 1, testutil.CollectAndCount(c.stageDuration))
}

func TestObserveFile(t *testing.T) {
	c := New()

	c.ObserveFile("csv", core.OutcomeOK)
	c.ObserveFile("csv", core.OutcomeWarning)
	c.ObserveFile("unknown", core.OutcomeError)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.files.WithLabelValues("csv", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.files.WithLabelValues("csv", "warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.files.WithLabelValues("unknown", "error")))
}

func TestObserveRequest(t *testing.T) {
	c := New()

	c.ObserveRequest("/api/process", http.StatusOK)
	c.ObserveRequest("/api/process", http.StatusUnprocessableEntity)
	c.ObserveRequest("/api/process", http.StatusTooManyRequests)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/process", "2xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/process", "4xx")))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		101: "1xx",
		200: "2xx",
		302: "3xx",
		404: "4xx",
		503: "5xx",
	}
	for status, want := range tests {
		assert.Equal(t, want, statusClass(status), "status %d", status)
	}
}

func TestHandler(t *testing.T) {
	c := New()
	c.ObserveFile("xlsx", core.OutcomeOK)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tableconverter_files_processed_total{format="xlsx",outcome="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
