package app

import (
	"fmt"
	"net/http"

	"overwatch/internal/config"
	"overwatch/internal/logger"
	"overwatch/internal/repository/sqlite"
	"overwatch/internal/routes"
	"overwatch/internal/services"
	"overwatch/internal/services/inference"
	"overwatch/internal/services/websocket"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	hubService *websocket.HubService
	manager    *services.Manager
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	videos := sqlite.NewVideoRepository(db)
	logEntries := sqlite.NewLogEntryRepository(db)
	detections := sqlite.NewDetectionRepository(db)

	backend := inference.NewClient(cfg.BackendURL, cfg.BackendWSURL, log)
	hub := websocket.NewHubService(log)

	manager := services.NewManager(backend, hub, videos, logEntries, detections, cfg, log)

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		hubService: hub,
		manager:    manager,
	}, nil
}

func (a *App) Run() error {
	// Start background services
	go a.hubService.Run()
	defer a.manager.Stop()
	defer a.db.Close()

	// Setup routes
	router := routes.SetupRoutes(a.manager, a.config, a.logger)

	fmt.Printf("🚀 Overwatch Footage Review Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🔬 Backend: %s\n", a.config.BackendURL)
	fmt.Printf("📁 Files: %s\n", a.config.FileDirectory)
	fmt.Printf("🖼  Surface: %dx%d\n", a.config.SurfaceWidth, a.config.SurfaceHeight)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
