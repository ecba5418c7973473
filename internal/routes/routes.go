package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"overwatch/internal/config"
	"overwatch/internal/handlers"
	"overwatch/internal/logger"
	"overwatch/internal/middleware"
	"overwatch/internal/services"
)

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers HTTP routes, static file serving, API endpoints,
// and wraps the mux with the authentication middleware.
func SetupRoutes(manager *services.Manager, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Session endpoints
	mux.HandleFunc("/api/upload", handlers.UploadHandler(manager, logger))
	mux.HandleFunc("/api/video", handlers.VideoHandler(manager))
	mux.HandleFunc("/api/session", handlers.SessionHandler(manager, logger))
	mux.HandleFunc("/api/session/dismiss", handlers.DismissHandler(manager))

	// Playback / overlay endpoints
	mux.HandleFunc("/api/playback", handlers.PlaybackHandler(manager, logger))
	mux.HandleFunc("/api/overlay", handlers.OverlayHandler(manager, logger))

	// Search endpoints
	mux.HandleFunc("/api/search", handlers.SearchHandler(manager, logger))
	mux.HandleFunc("/api/search/results", handlers.SearchResultsHandler(manager, logger))
	mux.HandleFunc("/api/search/seek", handlers.SeekHandler(manager, logger))

	// Viewer websocket
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(manager, logger))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(logger))

	// Auth endpoints
	mux.HandleFunc("/auth/login", handlers.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler)

	// Automatic HTML handler mapping for example: /review -> /static/review.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	// Apply middleware
	return middleware.AuthMiddleware(mux)
}
