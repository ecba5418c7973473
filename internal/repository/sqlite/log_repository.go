package sqlite

import (
	"fmt"

	"overwatch/internal/models"
)

// LogEntryRepository implements repository.LogEntryRepository for SQLite.
type LogEntryRepository struct {
	db *DB
}

// NewLogEntryRepository creates a new SQLite log entry repository.
func NewLogEntryRepository(db *DB) *LogEntryRepository {
	return &LogEntryRepository{db: db}
}

// Append adds one log entry. The table is the audit trail of what the
// viewer has seen; rows are never edited afterwards.
func (r *LogEntryRepository) Append(entry *models.LogEntry) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO log_entries (video_id, t_seconds, text)
		VALUES (?, ?, ?)
	`, entry.VideoID, entry.Seconds, entry.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to append log entry: %w", err)
	}

	return result.LastInsertId()
}

// GetByVideoID retrieves a video's log in append order.
func (r *LogEntryRepository) GetByVideoID(videoID string) ([]models.LogEntry, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, video_id, t_seconds, text
		FROM log_entries WHERE video_id = ? ORDER BY id
	`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.ID, &entry.VideoID, &entry.Seconds, &entry.Text); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteByVideoID removes a video's whole log when the session itself
// is discarded.
func (r *LogEntryRepository) DeleteByVideoID(videoID string) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM log_entries WHERE video_id = ?`, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete log entries: %w", err)
	}
	return nil
}
