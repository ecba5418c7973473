package handlers

import (
	"encoding/json"
	"net/http"

	"overwatch/internal/logger"
	"overwatch/internal/services"
)

// VideoHandler serves the processed video for the active session.
func VideoHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, ok := manager.VideoPath()
		if !ok {
			http.Error(w, "No video loaded", http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, path)
	}
}

// SessionHandler serves the current session snapshot.
func SessionHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(manager.Snapshot()); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// DismissHandler acknowledges a surfaced error, returning to idle.
func DismissHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		manager.Dismiss()
		w.WriteHeader(http.StatusNoContent)
	}
}
