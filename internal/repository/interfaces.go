package repository

import (
	"overwatch/internal/models"
)

// VideoRepository defines the interface for video session records.
type VideoRepository interface {
	Insert(video *models.Video) error
	GetByID(id string) (*models.Video, error)
	UpdateStatus(id string, status models.VideoStatus) error
	Delete(id string) error
}

// LogEntryRepository defines the interface for the append-only
// annotation log. There is deliberately no update or single-row delete:
// entries are irreversible once appended.
type LogEntryRepository interface {
	Append(entry *models.LogEntry) (int64, error)
	GetByVideoID(videoID string) ([]models.LogEntry, error)
	DeleteByVideoID(videoID string) error
}

// DetectionRepository defines the interface for detection event rows.
type DetectionRepository interface {
	Insert(det *models.Detection) (int64, error)
	InsertBatch(detections []models.Detection) error
	GetByVideoAndQuery(videoID, query string) ([]models.Detection, error)
	DeleteByVideoID(videoID string) error
}
