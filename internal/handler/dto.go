package handler

import "newspump/internal/pump"

type StatsResponse struct {
	Symbol      string        `json:"symbol"`
	Providers   []string      `json:"providers"`
	MockEnabled bool          `json:"mock_enabled"`
	Counters    pump.Snapshot `json:"counters"`
}
