package daemon

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncEventsSent()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncBroadcastsTotal()
	m.IncDroppedEvents()
	m.SetConnectedClients(3)

	if got := m.GetEventsSent(); got != 2 {
		t.Errorf("EventsSent = %d, want 2", got)
	}
	if got := m.GetEventsReceived(); got != 1 {
		t.Errorf("EventsReceived = %d, want 1", got)
	}
	if got := m.GetBroadcastsTotal(); got != 1 {
		t.Errorf("BroadcastsTotal = %d, want 1", got)
	}
	if got := m.GetDroppedEvents(); got != 1 {
		t.Errorf("DroppedEvents = %d, want 1", got)
	}
	if got := m.GetConnectedClients(); got != 3 {
		t.Errorf("ConnectedClients = %d, want 3", got)
	}
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncEventsSent()
				m.IncEventsReceived()
			}
		}()
	}
	wg.Wait()

	if got := m.GetEventsSent(); got != 1000 {
		t.Errorf("EventsSent = %d, want 1000", got)
	}
	if got := m.GetEventsReceived(); got != 1000 {
		t.Errorf("EventsReceived = %d, want 1000", got)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.IncEventsSent()
	m.IncBroadcastsTotal()
	m.SetConnectedClients(2)

	snapshot := m.GetSnapshot()

	if snapshot.EventsSent != 1 {
		t.Errorf("Snapshot EventsSent = %d, want 1", snapshot.EventsSent)
	}
	if snapshot.BroadcastsTotal != 1 {
		t.Errorf("Snapshot BroadcastsTotal = %d, want 1", snapshot.BroadcastsTotal)
	}
	if snapshot.ConnectedClients != 2 {
		t.Errorf("Snapshot ConnectedClients = %d, want 2", snapshot.ConnectedClients)
	}
	if snapshot.Uptime == "" {
		t.Error("Snapshot Uptime should be set")
	}
	if snapshot.StartTime.After(time.Now()) {
		t.Error("Snapshot StartTime in the future")
	}

	// Snapshots serialize for the metrics endpoint
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Marshal snapshot: %v", err)
	}
	var decoded MetricsSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal snapshot: %v", err)
	}
	if decoded.EventsSent != snapshot.EventsSent {
		t.Errorf("Round trip EventsSent = %d, want %d", decoded.EventsSent, snapshot.EventsSent)
	}
}
