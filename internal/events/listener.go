package events

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wavetap/wavetap/internal/logging"
)

const (
	// DefaultPort is the SoundTouch notification socket port
	DefaultPort = 8080

	// Subprotocol is the WebSocket subprotocol SoundTouch devices expect
	Subprotocol = "gabbo"

	// handshakeTimeout bounds the WebSocket dial
	handshakeTimeout = 10 * time.Second

	// pongWait is how long a silent connection is considered alive
	pongWait = 60 * time.Second

	// pingPeriod is how often we ping the device (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// writeWait bounds each control frame write
	writeWait = 10 * time.Second
)

// Notification is one update pushed by a device over its notification
// socket. Payloads are XML documents whose root element names the update
// kind (volumeUpdated, nowPlayingUpdated, presetsUpdated, ...).
type Notification struct {
	// Type is the payload's root element name, or "unknown" when the
	// payload is not parseable XML
	Type string

	// Raw is the payload exactly as received
	Raw []byte

	// ReceivedAt is when the payload arrived
	ReceivedAt time.Time
}

// Listener streams notifications from one device's notification socket.
type Listener struct {
	// Dialer is the WebSocket dialer used to connect
	Dialer *websocket.Dialer
}

// NewListener creates a Listener with default settings
func NewListener() *Listener {
	return &Listener{
		Dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
			Subprotocols:     []string{Subprotocol},
		},
	}
}

// URL returns the notification socket URL for a device IP
func URL(ip string) string {
	return fmt.Sprintf("ws://%s:%d/", ip, DefaultPort)
}

// Listen connects to the device at ip and delivers notifications on the
// returned channel until ctx is canceled or the connection drops. The
// channel is closed on exit, making range loops clean.
func (l *Listener) Listen(ctx context.Context, ip string) (<-chan Notification, error) {
	return l.ListenURL(ctx, URL(ip))
}

// ListenURL is Listen with an explicit socket URL.
func (l *Listener) ListenURL(ctx context.Context, socketURL string) (<-chan Notification, error) {
	header := http.Header{}
	conn, _, err := l.Dialer.DialContext(ctx, socketURL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to notification socket: %w", err)
	}

	notifications := make(chan Notification)

	// done is closed when the read loop exits, releasing the watcher and
	// ping goroutines even if the context is never canceled
	done := make(chan struct{})

	// Close the connection when the caller gives up; this also unblocks
	// the read loop below
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(notifications)
		defer conn.Close()
		defer close(done)

		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		// Keepalive pings
		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					deadline := time.Now().Add(writeWait)
					if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				return
			}

			_, payload, err := conn.ReadMessage()
			if err != nil {
				logging.Debug("Notification socket closed",
					zap.String("url", socketURL),
					zap.Error(err),
				)
				return
			}

			notification := Notification{
				Type:       payloadType(payload),
				Raw:        payload,
				ReceivedAt: time.Now(),
			}

			select {
			case notifications <- notification:
			case <-ctx.Done():
				return
			}
		}
	}()

	return notifications, nil
}

// payloadType extracts the root element name from a notification payload.
func payloadType(payload []byte) string {
	var root struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(payload, &root); err != nil || root.XMLName.Local == "" {
		return "unknown"
	}
	return root.XMLName.Local
}
