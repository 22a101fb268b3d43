package controllers

import (
	"blockd/internal/services"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	shield    services.ShieldServiceInterface
	attempts  services.AttemptServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status              string  `json:"status"`
	Uptime              string  `json:"uptime"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
	ShieldActive        bool    `json:"shield_active"`
	BlockedSecondsToday float64 `json:"blocked_seconds_today"`
	AttemptsToday       int     `json:"attempts_today"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	_, seconds := hc.shield.BlockedSecondsToday()
	resp := healthResponse{
		Status:              "ok",
		Uptime:              formatDuration(uptime),
		UptimeSeconds:       uptime.Seconds(),
		ShieldActive:        hc.shield.Active(),
		BlockedSecondsToday: seconds,
		AttemptsToday:       len(hc.attempts.AttemptsToday()),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(shield services.ShieldServiceInterface, attempts services.AttemptServiceInterface) *HealthController {
	return &HealthController{
		shield:    shield,
		attempts:  attempts,
		startTime: time.Now(),
	}
}
