package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"overwatch/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "db_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	db, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func insertTestVideo(t *testing.T, db *DB) *models.Video {
	t.Helper()

	video := &models.Video{
		ID:         "vid-test-1",
		Name:       "clip.mp4",
		FilePath:   "/files/clip.mp4",
		FrameRate:  29.97,
		Width:      1920,
		Height:     1080,
		Status:     models.VideoReady,
		UploadedAt: time.Now(),
	}
	if err := NewVideoRepository(db).Insert(video); err != nil {
		t.Fatalf("Failed to insert video: %v", err)
	}
	return video
}

func TestDatabase_Migration(t *testing.T) {
	db := newTestDB(t)

	// Verify tables exist by writing to each of them.
	video := insertTestVideo(t, db)

	if _, err := NewLogEntryRepository(db).Append(&models.LogEntry{
		VideoID: video.ID,
		Seconds: 1.5,
		Text:    "tank column heading north",
	}); err != nil {
		t.Fatalf("Failed to insert into log_entries table: %v", err)
	}

	if _, err := NewDetectionRepository(db).Insert(&models.Detection{
		VideoID:    video.ID,
		Query:      "tank",
		FrameIndex: 45,
		Label:      "tank",
		X0:         100, Y0: 120, X1: 300, Y1: 260,
	}); err != nil {
		t.Fatalf("Failed to insert into detections table: %v", err)
	}
}

func TestVideoRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	video := insertTestVideo(t, db)
	repo := NewVideoRepository(db)

	got, err := repo.GetByID(video.ID)
	if err != nil {
		t.Fatalf("Failed to get video: %v", err)
	}
	if got.Name != video.Name || got.FrameRate != video.FrameRate || got.Width != video.Width {
		t.Errorf("Video round trip mismatch: got %+v", got)
	}

	if err := repo.UpdateStatus(video.ID, models.VideoFailed); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}
	got, err = repo.GetByID(video.ID)
	if err != nil {
		t.Fatalf("Failed to get video: %v", err)
	}
	if got.Status != models.VideoFailed {
		t.Errorf("Expected status %q, got %q", models.VideoFailed, got.Status)
	}
}

func TestLogEntryRepository_AppendOrder(t *testing.T) {
	db := newTestDB(t)
	video := insertTestVideo(t, db)
	repo := NewLogEntryRepository(db)

	texts := []string{"A", "B", "A"}
	for i, text := range texts {
		if _, err := repo.Append(&models.LogEntry{
			VideoID: video.ID,
			Seconds: float64(i),
			Text:    text,
		}); err != nil {
			t.Fatalf("Failed to append log entry: %v", err)
		}
	}

	entries, err := repo.GetByVideoID(video.ID)
	if err != nil {
		t.Fatalf("Failed to get log entries: %v", err)
	}
	if len(entries) != len(texts) {
		t.Fatalf("Expected %d entries, got %d", len(texts), len(entries))
	}
	for i, entry := range entries {
		if entry.Text != texts[i] {
			t.Errorf("Entry %d: expected %q, got %q", i, texts[i], entry.Text)
		}
	}
}

func TestDetectionRepository_BatchAndQuery(t *testing.T) {
	db := newTestDB(t)
	video := insertTestVideo(t, db)
	repo := NewDetectionRepository(db)

	batch := []models.Detection{
		{VideoID: video.ID, Query: "tank", FrameIndex: 100, Label: "tank"},
		{VideoID: video.ID, Query: "tank", FrameIndex: 105, Label: "tank"},
		{VideoID: video.ID, Query: "smoke", FrameIndex: 50, Label: "smoke"},
	}
	if err := repo.InsertBatch(batch); err != nil {
		t.Fatalf("Failed to insert batch: %v", err)
	}

	tanks, err := repo.GetByVideoAndQuery(video.ID, "tank")
	if err != nil {
		t.Fatalf("Failed to query detections: %v", err)
	}
	if len(tanks) != 2 {
		t.Fatalf("Expected 2 tank detections, got %d", len(tanks))
	}
	if tanks[0].FrameIndex != 100 || tanks[1].FrameIndex != 105 {
		t.Errorf("Arrival order not preserved: %+v", tanks)
	}

	if err := repo.DeleteByVideoID(video.ID); err != nil {
		t.Fatalf("Failed to delete detections: %v", err)
	}
	remaining, err := repo.GetByVideoAndQuery(video.ID, "smoke")
	if err != nil {
		t.Fatalf("Failed to query detections: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected no detections after delete, got %d", len(remaining))
	}
}
