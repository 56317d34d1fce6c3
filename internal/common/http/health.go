package http

import (
	"net/http"
	"time"

	"github.com/rakhimovb/staylist/internal/common/logger"
)

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		log.Debugf("health check request")
		WriteJSON(w, http.StatusOK, healthResponse{
			Status: "ok",
			Uptime: time.Since(started).Round(time.Second).String(),
		})
	}
}
