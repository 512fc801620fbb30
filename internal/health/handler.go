package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// LiveHandler answers liveness probes. It only reports that the process
// serves HTTP.
func (c *Checker) LiveHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": c.version})
}

// ReadyHandler runs every registered probe and answers 503 when any fails.
func (c *Checker) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	status := c.Check(r.Context())

	code := http.StatusOK
	if status.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to write health response", slog.String("error", err.Error()))
	}
}
