// Package inference talks to the external video-analysis backend. The
// backend owns upload storage and the detection model; this client only
// carries bytes and records across the boundary.
package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"time"

	"overwatch/internal/dto"
	"overwatch/internal/logger"
)

// ErrUnavailable marks failures on the backend side of the boundary:
// transport errors and rejected requests. Callers use it to separate
// backend trouble from operator mistakes.
var ErrUnavailable = errors.New("analysis backend unavailable")

// Client is the HTTP side of the backend boundary.
type Client struct {
	baseURL string
	wsURL   string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient creates a backend client for the given HTTP and websocket
// base URLs.
func NewClient(baseURL, wsURL string, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		wsURL:   wsURL,
		http:    &http.Client{Timeout: 5 * time.Minute},
		logger:  logger,
	}
}

// Upload forwards a finished-media file to the backend for analysis and
// returns the backend's reference to the processed video.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (dto.UploadResponse, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/drone_footage", pr)
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("%w: upload: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dto.UploadResponse{}, fmt.Errorf("%w: upload rejected: %s", ErrUnavailable, resp.Status)
	}

	var out dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to decode upload response: %w", err)
	}

	c.logger.Info("Uploaded %s to backend (ref: %s)", filename, out.File)
	return out, nil
}

// FetchVideo downloads the processed video into destPath.
func (c *Client) FetchVideo(ctx context.Context, videoName, destPath string) error {
	u := fmt.Sprintf("%s/video?video_name=%s", c.baseURL, url.QueryEscape(videoName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build video request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: video fetch: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: video fetch rejected: %s", ErrUnavailable, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create video file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write video file: %w", err)
	}
	return nil
}

// FetchMetadata retrieves the per-frame annotation sequence: one string
// per analyzed frame, empty where the frame has no annotation.
func (c *Client) FetchMetadata(ctx context.Context, videoName string) ([]string, error) {
	u := fmt.Sprintf("%s/metadata?video_name=%s", c.baseURL, url.QueryEscape(videoName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata fetch: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: metadata fetch rejected: %s", ErrUnavailable, resp.Status)
	}

	var metadata []string
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return metadata, nil
}
