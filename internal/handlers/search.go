package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"overwatch/internal/dto"
	"overwatch/internal/logger"
	"overwatch/internal/services"
)

// SearchHandler starts a live search over the loaded video, replacing
// any previous one.
func SearchHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req dto.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
			writeJSONError(w, http.StatusBadRequest, "Invalid search request")
			return
		}

		// The channel outlives this request; it closes when replaced
		// or when the session ends.
		if err := manager.StartSearch(context.Background(), req.Query); err != nil {
			writeJSONError(w, http.StatusConflict, err.Error())
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

// SearchResultsHandler lists the clustered results so far.
func SearchResultsHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(manager.Results()); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// SeekHandler maps a result's frame index back to playback time.
func SeekHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req dto.SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid seek request")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := dto.SeekResponse{Seconds: manager.Seek(req.FrameIdx)}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}
