package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rr.Code)
	return rr.Body.String()
}

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncSchedulesGenerated()
	s.IncEdits("score")
	s.IncEdits("score")
	s.IncEditsRejected("winner")
	s.IncTournamentsSaved()
	s.IncPersistenceFailures()

	body := scrape(t, reg)
	assert.Contains(t, body, "pool_schedules_generated_total 1")
	assert.Contains(t, body, `pool_schedule_edits_total{op="score"} 2`)
	assert.Contains(t, body, `pool_schedule_edits_rejected_total{op="winner"} 1`)
	assert.Contains(t, body, "pool_tournaments_saved_total 1")
	assert.Contains(t, body, "pool_persistence_failures_total 1")
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncEdits("lock")
	m.IncEditsRejected("lock")
	m.ObserveGenerationDuration(0.5)

	assert.Equal(t, 1, m.Edits("lock"))
	assert.Equal(t, 1, m.EditsRejected("lock"))
	assert.Equal(t, []float64{0.5}, m.GenerationDurations())
	assert.Zero(t, m.SchedulesGenerated())
}
