package api

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"
)

// Health is the body of GET /health.
type Health struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	Memory     string  `json:"memory,omitempty"`
	CPUPercent float64 `json:"cpuPercent"`
}

// healthHandler reports liveness together with the backend process's resource usage.
func healthHandler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := Health{
			Status: "ok",
			Uptime: time.Since(started).Round(time.Second).String(),
		}

		if proc, err := process.NewProcessWithContext(r.Context(), int32(os.Getpid())); err != nil {
			log.Warn().Err(err).Msg("Failed to inspect backend process")
		} else {
			if mem, err := proc.MemoryInfoWithContext(r.Context()); err == nil {
				health.Memory = humanize.IBytes(mem.RSS)
			}
			if cpu, err := proc.CPUPercentWithContext(r.Context()); err == nil {
				health.CPUPercent = cpu
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	}
}
