package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"overwatch/internal/config"
	"overwatch/internal/dto"
	"overwatch/internal/logger"
	"overwatch/internal/models"
	"overwatch/internal/repository"
	"overwatch/internal/services/annotation"
	"overwatch/internal/services/correlator"
	"overwatch/internal/services/frameclock"
	"overwatch/internal/services/inference"
	"overwatch/internal/services/overlay"
	"overwatch/internal/services/search"
	"overwatch/internal/services/session"
	"overwatch/internal/services/websocket"
)

// ErrUnsupportedMedia is returned for uploads that are not .mp4
// footage. It is an operator mistake, distinct from backend trouble.
var ErrUnsupportedMedia = errors.New("unsupported file type")

// detectionFlushSize caps how many detection rows buffer in memory
// before they are written out in one transaction.
const detectionFlushSize = 32

// Manager owns the single active review session. Every consuming path
// (upload, playback ticks, channel messages, viewer actions) funnels
// through it; the session state itself only changes through reducer
// transitions applied under one lock, so callbacks never observe a
// half-updated session.
type Manager struct {
	mu    sync.Mutex
	state session.State

	compressor *annotation.Compressor
	correlator *correlator.Correlator
	clusterer  *search.Clusterer
	renderer   *overlay.Renderer
	channel    *inference.DetectionChannel
	detBuf     []models.Detection

	backend    *inference.Client
	hub        *websocket.HubService
	videos     repository.VideoRepository
	logEntries repository.LogEntryRepository
	detections repository.DetectionRepository

	config *config.Config
	logger *logger.Logger
}

func NewManager(
	backend *inference.Client,
	hub *websocket.HubService,
	videos repository.VideoRepository,
	logEntries repository.LogEntryRepository,
	detections repository.DetectionRepository,
	cfg *config.Config,
	logger *logger.Logger,
) *Manager {
	surface := models.Size{Width: cfg.SurfaceWidth, Height: cfg.SurfaceHeight}

	manager := &Manager{
		state:      session.Initial(),
		compressor: annotation.NewCompressor(),
		correlator: correlator.New(cfg.DetectionWindow, surface),
		clusterer:  search.NewClusterer(cfg.ClusterGap),
		renderer:   overlay.NewRenderer(surface),
		backend:    backend,
		hub:        hub,
		videos:     videos,
		logEntries: logEntries,
		detections: detections,
		config:     cfg,
		logger:     logger,
	}

	manager.logger.Info("🎬 Manager started - window %d frames, cluster gap %d", cfg.DetectionWindow, cfg.ClusterGap)
	return manager
}

// Upload runs a new footage upload end to end: validate, forward to the
// backend, fetch the processed video and its metadata, and bring the
// session to ready. The file-type check happens before anything touches
// the network.
func (m *Manager) Upload(ctx context.Context, filename string, file io.Reader) error {
	if !strings.EqualFold(filepath.Ext(filename), ".mp4") {
		err := fmt.Errorf("%w %q: only .mp4 footage is accepted", ErrUnsupportedMedia, filepath.Ext(filename))
		m.logger.Warning("Rejected upload %s: %v", filename, err)
		m.fail(err.Error())
		return err
	}

	m.beginSession()

	resp, err := m.backend.Upload(ctx, filename, file)
	if err != nil {
		m.fail("Upload failed: " + err.Error())
		return err
	}

	videoName := filepath.Base(resp.File)
	if videoName == "." || videoName == "" {
		videoName = filename
	}

	if err := os.MkdirAll(m.config.FileDirectory, 0755); err != nil {
		m.fail("Could not prepare video storage: " + err.Error())
		return err
	}
	destPath := filepath.Join(m.config.FileDirectory, videoName)

	if err := m.backend.FetchVideo(ctx, videoName, destPath); err != nil {
		m.fail("Could not fetch processed video: " + err.Error())
		return err
	}

	metadata, err := m.backend.FetchMetadata(ctx, videoName)
	if err != nil {
		m.fail("Could not fetch metadata: " + err.Error())
		return err
	}

	info, err := m.renderer.Open(destPath)
	if err != nil {
		m.fail("Could not open processed video: " + err.Error())
		return err
	}

	video := models.Video{
		ID:         uuid.NewString(),
		Name:       videoName,
		FilePath:   destPath,
		FrameRate:  info.FrameRate,
		Width:      info.Native.Width,
		Height:     info.Native.Height,
		Status:     models.VideoReady,
		UploadedAt: time.Now(),
	}
	if err := m.videos.Insert(&video); err != nil {
		m.fail("Could not record video session: " + err.Error())
		return err
	}

	m.correlator.SetNativeSize(info.Native)

	m.mu.Lock()
	m.state = session.Reduce(m.state, session.VideoLoaded{
		Video:    video,
		Rate:     info.FrameRate,
		Native:   info.Native,
		Metadata: metadata,
	})
	m.mu.Unlock()

	m.logger.Info("📹 Video %s ready: %.3f fps, %dx%d, %d metadata frames",
		video.Name, info.FrameRate, info.Native.Width, info.Native.Height, len(metadata))
	m.hub.Publish(dto.ViewerUpdate{Kind: "state", Phase: string(session.PhaseReady), VideoID: video.ID})
	return nil
}

// beginSession discards all state from the previous video: the open
// detection channel, accumulated events, metadata and log entries.
func (m *Manager) beginSession() {
	m.mu.Lock()
	old := m.channel
	m.channel = nil
	m.state = session.Reduce(m.state, session.UploadStarted{})
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	m.flushDetections()
	m.compressor.Reset()
	m.correlator.Reset()
	m.clusterer.Reset()

	m.hub.Publish(dto.ViewerUpdate{Kind: "state", Phase: string(session.PhaseAnalyzing)})
}

func (m *Manager) fail(reason string) {
	m.mu.Lock()
	old := m.channel
	m.channel = nil
	m.state = session.Reduce(m.state, session.UploadFailed{Reason: reason})
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	m.flushDetections()
	m.logger.Error("Session error: %s", reason)
	m.hub.Publish(dto.ViewerUpdate{Kind: "state", Phase: string(session.PhaseError), ErrorText: reason})
}

// Playback processes one playback-time observation: derive the frame
// index, fold the metadata stream into the log, and select the
// detections to overlay. Out-of-range frames and a not-yet-ready
// session are soft no-ops, never errors.
func (m *Manager) Playback(seconds float64) dto.PlaybackResponse {
	m.mu.Lock()
	if m.state.Phase != session.PhaseReady {
		m.mu.Unlock()
		return dto.PlaybackResponse{}
	}

	m.state = session.Reduce(m.state, session.TimeUpdated{Seconds: seconds})
	frameIdx := m.state.Frame
	metadata := m.state.Metadata
	videoID := m.state.Video.ID
	m.mu.Unlock()

	response := dto.PlaybackResponse{FrameIdx: frameIdx}

	if entry, appended := m.compressor.Observe(frameIdx, metadata, seconds); appended {
		entry.VideoID = videoID
		if id, err := m.logEntries.Append(&entry); err != nil {
			m.logger.Error("Failed to persist log entry: %v", err)
		} else {
			entry.ID = id
		}
		response.LogEntry = &entry
		m.hub.Publish(dto.ViewerUpdate{Kind: "log", LogEntry: &entry})
	}

	response.Detections = m.correlator.Relevant(frameIdx)
	return response
}

// Overlay renders the current frame with its relevant detections at
// surface size. Nil bytes mean the surface is not ready this tick.
func (m *Manager) Overlay() ([]byte, error) {
	m.mu.Lock()
	frameIdx := m.state.Frame
	ready := m.state.Phase == session.PhaseReady
	m.mu.Unlock()

	if !ready {
		return nil, nil
	}
	return m.renderer.Render(frameIdx, m.correlator.Relevant(frameIdx))
}

// StartSearch replaces the active query: the previous channel is closed
// and all accumulated events and results are cleared before the new
// stream delivers its first message.
func (m *Manager) StartSearch(ctx context.Context, query string) error {
	m.mu.Lock()
	if m.state.Phase != session.PhaseReady {
		m.mu.Unlock()
		return fmt.Errorf("no video loaded")
	}
	old := m.channel
	m.channel = nil
	m.state = session.Reduce(m.state, session.SearchStarted{Query: query})
	videoName := m.state.Video.Name
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	m.flushDetections()
	m.correlator.Reset()
	m.clusterer.Reset()

	channel, err := m.backend.OpenDetectionChannel(ctx, videoName, query, m.handleDetection)
	if err != nil {
		m.logger.Error("Failed to start search %q: %v", query, err)
		return err
	}

	m.mu.Lock()
	m.channel = channel
	m.mu.Unlock()

	m.logger.Info("🔍 Search started: %q on %s", query, videoName)
	m.hub.Publish(dto.ViewerUpdate{Kind: "state", Phase: string(session.PhaseReady), Query: query})
	return nil
}

// handleDetection processes one inbound channel message. Arrival order
// is backend completion order; both consumers tolerate any frame order.
// Rows buffer in memory and hit the database in batches; the remainder
// flushes when the channel is torn down.
func (m *Manager) handleDetection(msg dto.DetectionMessage) {
	raw := msg.ToRaw()

	m.mu.Lock()
	if m.state.Video == nil {
		m.mu.Unlock()
		return
	}
	m.detBuf = append(m.detBuf, models.Detection{
		VideoID:    m.state.Video.ID,
		Query:      m.state.Query,
		FrameIndex: raw.FrameIndex,
		Label:      raw.Label,
		X0:         raw.Box.X0,
		Y0:         raw.Box.Y0,
		X1:         raw.Box.X1,
		Y1:         raw.Box.Y1,
	})
	var pending []models.Detection
	if len(m.detBuf) >= detectionFlushSize {
		pending = m.detBuf
		m.detBuf = nil
	}
	m.mu.Unlock()

	if pending != nil {
		if err := m.detections.InsertBatch(pending); err != nil {
			m.logger.Error("Failed to persist detections: %v", err)
		}
	}

	m.correlator.Add(raw)

	if result, emitted := m.clusterer.Add(raw); emitted {
		m.hub.Publish(dto.ViewerUpdate{Kind: "result", Result: &result})
	}
}

// flushDetections writes out whatever the buffer holds. Callers invoke
// it only after the feeding channel's read loop has exited.
func (m *Manager) flushDetections() {
	m.mu.Lock()
	pending := m.detBuf
	m.detBuf = nil
	m.mu.Unlock()

	if len(pending) == 0 {
		return
	}
	if err := m.detections.InsertBatch(pending); err != nil {
		m.logger.Error("Failed to persist detections: %v", err)
	}
}

// Results returns the clustered search results so far, arrival order.
func (m *Manager) Results() []models.SearchResult {
	return m.clusterer.Results()
}

// Seek maps a search result back to playback time under the session's
// discovered frame rate.
func (m *Manager) Seek(frameIdx int) float64 {
	m.mu.Lock()
	rate := m.state.FrameRate
	m.mu.Unlock()
	return frameclock.Seconds(frameIdx, rate)
}

// Dismiss acknowledges a surfaced error and returns the session to idle.
func (m *Manager) Dismiss() {
	m.mu.Lock()
	m.state = session.Reduce(m.state, session.ErrorDismissed{})
	phase := m.state.Phase
	m.mu.Unlock()

	m.hub.Publish(dto.ViewerUpdate{Kind: "state", Phase: string(phase)})
}

// Snapshot assembles the full view the UI renders from.
func (m *Manager) Snapshot() dto.SessionSnapshot {
	m.mu.Lock()
	snapshot := dto.SessionSnapshot{
		Phase:     string(m.state.Phase),
		Error:     m.state.ErrorMsg,
		Video:     m.state.Video,
		Query:     m.state.Query,
		Seconds:   m.state.Seconds,
		FrameIdx:  m.state.Frame,
		FrameRate: m.state.FrameRate,
	}
	m.mu.Unlock()

	snapshot.Log = m.compressor.Entries()
	snapshot.Results = m.clusterer.Results()
	return snapshot
}

// VideoPath returns the local path of the loaded video for serving.
func (m *Manager) VideoPath() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Video == nil {
		return "", false
	}
	return m.state.Video.FilePath, true
}

// GetWebsocketService exposes the viewer hub to the handlers.
func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.hub
}

// Stop tears down the active channel and render source.
func (m *Manager) Stop() {
	m.mu.Lock()
	old := m.channel
	m.channel = nil
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	m.flushDetections()
	m.renderer.Close()
	m.logger.Info("🛑 Manager stopped")
}
