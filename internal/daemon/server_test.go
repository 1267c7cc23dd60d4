package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"suivi/internal/events"
)

// Test helpers live here to avoid an import cycle with testutil

func getTestSocketPath(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	return filepath.Join(tmpDir, "test-suivi.sock")
}

func setupTestDaemon(t *testing.T) (*Server, string) {
	t.Helper()
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = server.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			time.Sleep(10 * time.Millisecond)
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("Timeout waiting for daemon socket")
	return nil, ""
}

func connectRawClient(t *testing.T, socketPath string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

func sendSubscribeMessage(t *testing.T, encoder *json.Encoder, userID int) {
	t.Helper()
	msg := events.Message{
		Type:      "subscribe",
		Subscribe: &events.SubscribeMessage{UserID: userID},
	}
	if err := encoder.Encode(msg); err != nil {
		t.Fatalf("Failed to send subscribe: %v", err)
	}
}

func waitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Channel closed")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event")
		return events.Event{}
	}
}

func waitForNoEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) {
	t.Helper()
	select {
	case event := <-ch:
		t.Fatalf("Unexpected event: %+v", event)
	case <-time.After(timeout):
	}
}

func setupTestClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()
	client, err := events.NewClient(socketPath)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	return client
}

func TestNewServer_Success(t *testing.T) {
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Expected NewServer to succeed, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		t.Error("Expected socket file to be created")
	}
}

func TestNewServer_DirectoryCreation(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "subdirs", "suivi.sock")

	server, err := NewServer(nestedPath)
	if err != nil {
		t.Fatalf("Expected NewServer to create nested directories, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(filepath.Dir(nestedPath)); os.IsNotExist(err) {
		t.Errorf("Expected directory %s to be created", filepath.Dir(nestedPath))
	}
}

func TestNewServer_StaleSocketCleanup(t *testing.T) {
	socketPath := getTestSocketPath(t)

	f, err := os.Create(socketPath)
	if err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}
	_ = f.Close()

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Expected NewServer to succeed after removing stale socket, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		t.Error("Expected new socket file to be created")
	}
}

func TestClientConnection_Single(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	_, encoder, _ := connectRawClient(t, socketPath)
	sendSubscribeMessage(t, encoder, 0)

	time.Sleep(50 * time.Millisecond)

	// Connection should still be writable
	if err := encoder.Encode(events.Message{Type: "pong"}); err != nil {
		t.Fatalf("Expected connection to be active, got error: %v", err)
	}
}

func TestClientConnection_Multiple(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	numClients := 5
	for i := 0; i < numClients; i++ {
		_, encoder, _ := connectRawClient(t, socketPath)
		sendSubscribeMessage(t, encoder, 0)
	}

	time.Sleep(100 * time.Millisecond)

	if got := server.getClientCount(); got != numClients {
		t.Errorf("Client count = %d, want %d", got, numClients)
	}
}

func TestClientDisconnection(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	conn, encoder, _ := connectRawClient(t, socketPath)
	sendSubscribeMessage(t, encoder, 0)
	time.Sleep(50 * time.Millisecond)

	_ = conn.Close()
	time.Sleep(100 * time.Millisecond)

	if got := server.getClientCount(); got != 0 {
		t.Errorf("Client count after disconnect = %d, want 0", got)
	}
}

func TestBroadcast_SingleClient(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	client := setupTestClient(t, socketPath)
	if err := client.Subscribe(1); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	eventChan, err := client.Listen(context.Background())
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	testEvent := events.Event{
		Type:      events.EventDataChanged,
		UserID:    1,
		Timestamp: time.Now(),
	}
	if err := server.Broadcast(testEvent); err != nil {
		t.Fatalf("Failed to broadcast: %v", err)
	}

	received := waitForEvent(t, eventChan, 2*time.Second)
	if received.Type != events.EventDataChanged {
		t.Errorf("Event type = %s, want %s", received.Type, events.EventDataChanged)
	}
	if received.UserID != 1 {
		t.Errorf("Event user = %d, want 1", received.UserID)
	}
	if received.SequenceID == 0 {
		t.Error("Expected a sequence number to be assigned")
	}
}

func TestBroadcast_UserScoping(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	client := setupTestClient(t, socketPath)
	if err := client.Subscribe(2); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	eventChan, err := client.Listen(context.Background())
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	// An event scoped to another account must not reach this client
	if err := server.Broadcast(events.Event{Type: events.EventDataChanged, UserID: 1, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Failed to broadcast: %v", err)
	}
	waitForNoEvent(t, eventChan, 300*time.Millisecond)

	// A global event reaches everyone
	if err := server.Broadcast(events.Event{Type: events.EventDataChanged, UserID: 0, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Failed to broadcast: %v", err)
	}
	received := waitForEvent(t, eventChan, 2*time.Second)
	if received.UserID != 0 {
		t.Errorf("Event user = %d, want 0", received.UserID)
	}
}

func TestBroadcast_SequenceNumbers(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	client := setupTestClient(t, socketPath)
	eventChan, err := client.Listen(context.Background())
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := server.Broadcast(events.Event{Type: events.EventDataChanged, Timestamp: time.Now()}); err != nil {
			t.Fatalf("Failed to broadcast: %v", err)
		}
	}

	var last int64
	for i := 0; i < 3; i++ {
		received := waitForEvent(t, eventChan, 2*time.Second)
		if received.SequenceID <= last {
			t.Errorf("Sequence not increasing: got %d after %d", received.SequenceID, last)
		}
		last = received.SequenceID
	}
}

func TestEventRelay_ClientToClient(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	receiver := setupTestClient(t, socketPath)
	eventChan, err := receiver.Listen(context.Background())
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	_, senderEncoder, _ := connectRawClient(t, socketPath)

	msg := events.Message{
		Type:  "event",
		Event: &events.Event{Type: events.EventDataChanged, Timestamp: time.Now()},
	}
	if err := senderEncoder.Encode(msg); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	received := waitForEvent(t, eventChan, 2*time.Second)
	if received.Type != events.EventDataChanged {
		t.Errorf("Event type = %s, want %s", received.Type, events.EventDataChanged)
	}
}

func TestShutdown_RemovesSocket(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	if err := server.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Error("Expected socket file to be removed on shutdown")
	}

	// Shutdown is idempotent
	if err := server.Shutdown(); err != nil {
		t.Errorf("Second Shutdown: %v", err)
	}
}
