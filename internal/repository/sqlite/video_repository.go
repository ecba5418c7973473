package sqlite

import (
	"database/sql"
	"fmt"

	"overwatch/internal/models"
)

// VideoRepository implements repository.VideoRepository for SQLite.
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new SQLite video repository.
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Insert adds a new video session record.
func (r *VideoRepository) Insert(video *models.Video) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		INSERT INTO videos (id, name, filepath, frame_rate, width, height, status, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, video.ID, video.Name, video.FilePath, video.FrameRate, video.Width, video.Height, video.Status, video.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

// GetByID retrieves a video by its identifier.
func (r *VideoRepository) GetByID(id string) (*models.Video, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var video models.Video
	err := r.db.Conn().QueryRow(`
		SELECT id, name, filepath, frame_rate, width, height, status, uploaded_at
		FROM videos WHERE id = ?
	`, id).Scan(&video.ID, &video.Name, &video.FilePath, &video.FrameRate,
		&video.Width, &video.Height, &video.Status, &video.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("video not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query video: %w", err)
	}
	return &video, nil
}

// UpdateStatus moves a video between lifecycle states.
func (r *VideoRepository) UpdateStatus(id string, status models.VideoStatus) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`UPDATE videos SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update video status: %w", err)
	}
	return nil
}

// Delete removes a video record. Log entries and detections cascade.
func (r *VideoRepository) Delete(id string) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}
