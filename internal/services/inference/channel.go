package inference

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"

	"overwatch/internal/dto"
	"overwatch/internal/logger"
)

// DetectionChannel is one live search stream. Messages arrive in
// backend completion order; closing it tears the socket down and ends
// the read loop. There is no read deadline: the backend may scan long
// stretches of footage without a single match, and a quiet stream is a
// healthy stream. The channel lives until it is explicitly replaced or
// the session ends.
type DetectionChannel struct {
	conn   *websocket.Conn
	done   chan struct{}
	logger *logger.Logger
}

// OpenDetectionChannel dials the backend's detection websocket for
// (video, query) and delivers each inbound event to onEvent from a
// single goroutine. The channel stays open until Close or until the
// backend finishes the stream.
func (c *Client) OpenDetectionChannel(ctx context.Context, videoName, query string, onEvent func(dto.DetectionMessage)) (*DetectionChannel, error) {
	u := fmt.Sprintf("%s/ws?target_video=%s&query=%s",
		c.wsURL, url.QueryEscape(videoName), url.QueryEscape(query))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open detection channel: %w", err)
	}

	ch := &DetectionChannel{
		conn:   conn,
		done:   make(chan struct{}),
		logger: c.logger,
	}

	c.logger.Info("Detection channel opened for video %s, query %q", videoName, query)
	go ch.readLoop(onEvent)
	return ch, nil
}

func (ch *DetectionChannel) readLoop(onEvent func(dto.DetectionMessage)) {
	defer close(ch.done)

	for {
		var msg dto.DetectionMessage
		if err := ch.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ch.logger.Error("Detection channel closed: %v", err)
			}
			return
		}
		onEvent(msg)
	}
}

// Close tears down the channel. Safe to call more than once.
func (ch *DetectionChannel) Close() error {
	err := ch.conn.Close()
	<-ch.done
	return err
}

// Done is closed when the read loop has exited.
func (ch *DetectionChannel) Done() <-chan struct{} {
	return ch.done
}
