package status

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTracker_UpdateAndCurrent(t *testing.T) {
	tracker := NewTracker("mc.example.com", "java")

	view := tracker.Current()
	if view.Server != "mc.example.com" || view.ServerType != "java" {
		t.Errorf("seed view = %+v, want server identity set", view)
	}

	tracker.Update(View{
		Known:       true,
		Online:      true,
		PlayerCount: 3,
		PlayerMax:   20,
		Version:     "1.21.2",
		CheckedAt:   time.Now(),
	}, []string{"✅ The server is now ONLINE! (1.21.2)"})

	view = tracker.Current()
	if !view.Online || view.PlayerCount != 3 {
		t.Errorf("view = %+v, want updated online state", view)
	}
	if view.Server != "mc.example.com" {
		t.Error("server identity lost on update")
	}
	if len(view.RecentNotifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(view.RecentNotifications))
	}
}

func TestTracker_NotificationRingIsBounded(t *testing.T) {
	tracker := NewTracker("mc.example.com", "bedrock")

	for i := 0; i < recentNotificationLimit+10; i++ {
		tracker.Update(View{Known: true}, []string{fmt.Sprintf("message %d", i)})
	}

	view := tracker.Current()
	if len(view.RecentNotifications) != recentNotificationLimit {
		t.Fatalf("ring size = %d, want %d", len(view.RecentNotifications), recentNotificationLimit)
	}
	if view.RecentNotifications[recentNotificationLimit-1] != fmt.Sprintf("message %d", recentNotificationLimit+9) {
		t.Errorf("newest message missing, ring = %v", view.RecentNotifications)
	}
}

func TestServer_HandleStatus(t *testing.T) {
	tracker := NewTracker("mc.example.com", "bedrock")
	tracker.Update(View{Known: true, Online: true, PlayerCount: 2, PlayerMax: 10}, nil)

	srv := NewServer(tracker, 0, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	srv.handleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if view.Server != "mc.example.com" || !view.Online {
		t.Errorf("view = %+v, want served state", view)
	}
}

func TestServer_HandleStatus_MethodNotAllowed(t *testing.T) {
	srv := NewServer(NewTracker("s", "java"), 0, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/status", nil)
	rec := httptest.NewRecorder()
	srv.handleStatus(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestServer_HandleHealthz(t *testing.T) {
	srv := NewServer(NewTracker("s", "java"), 0, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.handleHealthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
