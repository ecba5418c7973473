package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overwatch/internal/config"
	"overwatch/internal/logger"
	"overwatch/internal/repository/sqlite"
	"overwatch/internal/services"
	"overwatch/internal/services/inference"
	"overwatch/internal/services/websocket"
)

func newUploadHandler(t *testing.T, backend http.Handler) http.HandlerFunc {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	tempDir, err := os.MkdirTemp("", "upload_handler_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	cfg := &config.Config{
		FileDirectory:    filepath.Join(tempDir, "files"),
		DatabasePath:     filepath.Join(tempDir, "test.db"),
		LogDirectory:     filepath.Join(tempDir, "logs"),
		DetectionWindow:  5,
		ClusterGap:       10,
		SurfaceWidth:     960,
		SurfaceHeight:    540,
		DefaultFrameRate: 30,
	}
	log := logger.NewLogger(cfg)

	db, err := sqlite.New(cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client := inference.NewClient(server.URL, wsURL, log)
	hub := websocket.NewHubService(log)
	go hub.Run()

	manager := services.NewManager(client, hub,
		sqlite.NewVideoRepository(db),
		sqlite.NewLogEntryRepository(db),
		sqlite.NewDetectionRepository(db),
		cfg, log)
	t.Cleanup(manager.Stop)

	return UploadHandler(manager, log)
}

func multipartUpload(t *testing.T, filename string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("footage bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_UnsupportedTypeAnswers400(t *testing.T) {
	var hits atomic.Int32
	handler := newUploadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	recorder := httptest.NewRecorder()
	handler(recorder, multipartUpload(t, "clip.mov"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, hits.Load(), "validation failures must not reach the backend")
}

func TestUploadHandler_BackendFailureAnswers502(t *testing.T) {
	handler := newUploadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))

	recorder := httptest.NewRecorder()
	handler(recorder, multipartUpload(t, "clip.mp4"))

	// Backend trouble is not the operator's mistake; the two classes
	// must stay distinguishable at the status-code level.
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}
