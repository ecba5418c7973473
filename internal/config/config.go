package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	Password         string
	BackendURL       string  // analysis backend HTTP base
	BackendWSURL     string  // analysis backend websocket base
	FileDirectory    string  // fetched processed videos
	DatabasePath     string
	LogDirectory     string
	DetectionWindow  int     // frames a detection stays visible
	ClusterGap       int     // max frame gap inside one search cluster
	SurfaceWidth     int     // render surface dimensions
	SurfaceHeight    int
	DefaultFrameRate float64 // fallback when the container reports none
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnvAsInt("PORT", 8090),
		Password:         getEnv("PASSWORD", "overwatch"),
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:8080"),
		BackendWSURL:     getEnv("BACKEND_WS_URL", "ws://localhost:8080"),
		FileDirectory:    getEnv("FILE_DIR", filepath.Join(".", "files")),
		DatabasePath:     getEnv("DB_PATH", filepath.Join(".", "overwatch.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		DetectionWindow:  getEnvAsInt("DETECTION_WINDOW", 5),
		ClusterGap:       getEnvAsInt("CLUSTER_GAP", 10),
		SurfaceWidth:     getEnvAsInt("SURFACE_WIDTH", 960),
		SurfaceHeight:    getEnvAsInt("SURFACE_HEIGHT", 540),
		DefaultFrameRate: getEnvAsFloat("DEFAULT_FRAME_RATE", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
