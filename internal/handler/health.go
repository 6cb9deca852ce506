package handler

import "net/http"

// HandleHealth reports liveness for load balancers and uptime checks.
//
// HTTP: GET /api/health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
