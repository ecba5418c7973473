package sqlite

import (
	"fmt"

	"overwatch/internal/models"
)

// DetectionRepository implements repository.DetectionRepository for SQLite.
type DetectionRepository struct {
	db *DB
}

// NewDetectionRepository creates a new SQLite detection repository.
func NewDetectionRepository(db *DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// Insert adds a new detection record to the database.
func (r *DetectionRepository) Insert(det *models.Detection) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO detections (video_id, query, frame_idx, label, x0, y0, x1, y1)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, det.VideoID, det.Query, det.FrameIndex, det.Label, det.X0, det.Y0, det.X1, det.Y1)
	if err != nil {
		return 0, fmt.Errorf("failed to insert detection: %w", err)
	}

	return result.LastInsertId()
}

// InsertBatch adds multiple detections in a single transaction.
func (r *DetectionRepository) InsertBatch(detections []models.Detection) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO detections (video_id, query, frame_idx, label, x0, y0, x1, y1)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, det := range detections {
		if _, err := stmt.Exec(det.VideoID, det.Query, det.FrameIndex, det.Label, det.X0, det.Y0, det.X1, det.Y1); err != nil {
			return fmt.Errorf("failed to insert detection: %w", err)
		}
	}

	return tx.Commit()
}

// GetByVideoAndQuery retrieves the detection events one search
// produced, in arrival order.
func (r *DetectionRepository) GetByVideoAndQuery(videoID, query string) ([]models.Detection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, video_id, query, frame_idx, label, x0, y0, x1, y1
		FROM detections WHERE video_id = ? AND query = ? ORDER BY id
	`, videoID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var detections []models.Detection
	for rows.Next() {
		var det models.Detection
		if err := rows.Scan(&det.ID, &det.VideoID, &det.Query, &det.FrameIndex,
			&det.Label, &det.X0, &det.Y0, &det.X1, &det.Y1); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		detections = append(detections, det)
	}
	return detections, rows.Err()
}

// DeleteByVideoID removes all detections recorded for a video.
func (r *DetectionRepository) DeleteByVideoID(videoID string) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM detections WHERE video_id = ?`, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete detections: %w", err)
	}
	return nil
}
