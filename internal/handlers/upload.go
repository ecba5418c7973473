package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"overwatch/internal/dto"
	"overwatch/internal/logger"
	"overwatch/internal/services"
	"overwatch/internal/services/inference"
)

// UploadHandler accepts drone footage as a multipart upload and hands
// it to the manager. Unsupported file types come back as 400 without
// the backend ever being contacted.
func UploadHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "No file found in the request")
			return
		}
		defer file.Close()

		logger.Info("Received drone footage upload request: %s", header.Filename)

		if err := manager.Upload(r.Context(), header.Filename, file); err != nil {
			writeJSONError(w, uploadErrorStatus(err), err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(manager.Snapshot()); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// uploadErrorStatus separates the two failure classes an upload has:
// operator mistakes answer 400, backend trouble answers 502. Anything
// else is the server's own fault.
func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedMedia):
		return http.StatusBadRequest
	case errors.Is(err, inference.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}
