package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveParse("groupmanager", OutcomeOK)
	m.ObserveParse("groupmanager", OutcomeOK)
	m.ObserveParse("", OutcomeUnrecognized)
	m.ObserveGeneration("luckperms", "yaml")
	m.ObserveFallback("classify")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.parses.WithLabelValues("groupmanager", OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.parses.WithLabelValues("unknown", OutcomeUnrecognized)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.generations.WithLabelValues("luckperms", "yaml")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fallbacks.WithLabelValues("classify")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveGeneration("permissionsex", "commands")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `permission_wizard_config_generations_total{dialect="permissionsex",format="commands"} 1`)
}
