package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// notificationServer upgrades connections and sends each payload once.
func notificationServer(t *testing.T, payloads []string) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{
		Subprotocols: []string{Subprotocol},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for _, payload := range payloads {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				return
			}
		}

		// Hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestListener_ReceivesNotifications(t *testing.T) {
	server := notificationServer(t, []string{
		`<updates deviceID="AAA"><volumeUpdated><volume><actualvolume>30</actualvolume></volume></volumeUpdated></updates>`,
		`not xml at all`,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listener := NewListener()
	notifications, err := listener.ListenURL(ctx, wsURL(server))
	if err != nil {
		t.Fatalf("ListenURL() error = %v", err)
	}

	first := <-notifications
	if first.Type != "updates" {
		t.Errorf("Type = %q, want updates", first.Type)
	}
	if !strings.Contains(string(first.Raw), "volumeUpdated") {
		t.Errorf("Raw payload not carried through: %s", first.Raw)
	}
	if first.ReceivedAt.IsZero() {
		t.Error("ReceivedAt should be set")
	}

	second := <-notifications
	if second.Type != "unknown" {
		t.Errorf("Type = %q, want unknown for unparseable payload", second.Type)
	}
}

func TestListener_ChannelClosesOnCancel(t *testing.T) {
	server := notificationServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())

	listener := NewListener()
	notifications, err := listener.ListenURL(ctx, wsURL(server))
	if err != nil {
		t.Fatalf("ListenURL() error = %v", err)
	}

	cancel()

	select {
	case _, open := <-notifications:
		if open {
			t.Error("channel should close after cancellation, not deliver")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}

func TestListener_ReleasesGoroutinesWhenConnectionDrops(t *testing.T) {
	upgrader := websocket.Upgrader{
		Subprotocols: []string{Subprotocol},
	}

	// Server that upgrades and then immediately drops the connection
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		conn.Close()
	}))
	t.Cleanup(server.Close)

	// The context stays alive for the whole test: cleanup must be driven
	// by the connection dropping, not by cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	baseline := runtime.NumGoroutine()

	listener := NewListener()
	for i := 0; i < 3; i++ {
		notifications, err := listener.ListenURL(ctx, wsURL(server))
		if err != nil {
			t.Fatalf("ListenURL() error = %v", err)
		}

		select {
		case _, open := <-notifications:
			if open {
				t.Error("channel should close after the server drops, not deliver")
			}
		case <-time.After(5 * time.Second):
			t.Fatal("channel did not close after the server dropped the connection")
		}
	}

	// Every per-connection goroutine should wind down without the context
	// ever being canceled
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= baseline+1 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("goroutines did not settle: baseline %d, now %d", baseline, runtime.NumGoroutine())
}

func TestListener_DialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	listener := NewListener()
	if _, err := listener.ListenURL(ctx, "ws://127.0.0.1:1/"); err == nil {
		t.Error("ListenURL() should fail when nothing is listening")
	}
}

func TestPayloadType(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"volume update", `<volumeUpdated><volume/></volumeUpdated>`, "volumeUpdated"},
		{"now playing", `<nowPlayingUpdated/>`, "nowPlayingUpdated"},
		{"garbage", `{"not": "xml"}`, "unknown"},
		{"empty", ``, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payloadType([]byte(tt.payload)); got != tt.expected {
				t.Errorf("payloadType() = %q, want %q", got, tt.expected)
			}
		})
	}
}
