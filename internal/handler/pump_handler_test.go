package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"newspump/internal/pump"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeStats struct {
	snapshot pump.Snapshot
}

func (f *fakeStats) Snapshot() pump.Snapshot {
	return f.snapshot
}

func newTestRouter(stats StatsSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPumpHandler(stats, "GLOBAL", []string{"FINNHUB", "AV", "RSS"}, true)
	r.GET("/health", h.GetHealth)
	r.GET("/stats", h.GetStats)
	return r
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeStats{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "ok", res["status"])
}

func TestGetStats(t *testing.T) {
	stats := &fakeStats{snapshot: pump.Snapshot{
		Cycles:    7,
		Successes: 5,
		Failures:  2,
		Delivered: 42,
	}}
	r := newTestRouter(stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res StatsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "GLOBAL", res.Symbol)
	assert.Equal(t, []string{"FINNHUB", "AV", "RSS"}, res.Providers)
	assert.Equal(t, true, res.MockEnabled)
	assert.Equal(t, int64(7), res.Counters.Cycles)
	assert.Equal(t, int64(42), res.Counters.Delivered)
}
