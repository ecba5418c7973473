package handlers

import (
	"encoding/json"
	"net/http"

	"overwatch/internal/dto"
	"overwatch/internal/logger"
	"overwatch/internal/services"
)

// PlaybackHandler receives playback-time observations from the player
// and answers with the frame index, any freshly appended log entry, and
// the detections to overlay.
func PlaybackHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req dto.PlaybackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid playback request")
			return
		}

		response := manager.Playback(req.Seconds)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// OverlayHandler serves the current frame with boxes drawn, as JPEG.
// A not-yet-ready surface answers 204.
func OverlayHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame, err := manager.Overlay()
		if err != nil {
			logger.Error("Overlay render failed: %v", err)
			http.Error(w, "Overlay render failed", http.StatusInternalServerError)
			return
		}
		if frame == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(frame)
	}
}
