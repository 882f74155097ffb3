package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newspump/internal/pump"
)

type StatsSource interface {
	Snapshot() pump.Snapshot
}

// PumpHandler serves the read-only observability surface of a running pump.
type PumpHandler struct {
	stats     StatsSource
	symbol    string
	providers []string
	mock      bool
}

func NewPumpHandler(stats StatsSource, symbol string, providers []string, mock bool) *PumpHandler {
	return &PumpHandler{
		stats:     stats,
		symbol:    symbol,
		providers: providers,
		mock:      mock,
	}
}

func (h *PumpHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PumpHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{
		Symbol:      h.symbol,
		Providers:   h.providers,
		MockEnabled: h.mock,
		Counters:    h.stats.Snapshot(),
	})
}
