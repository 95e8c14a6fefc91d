package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhookSink_DeliversContentPayload(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, 5*time.Second)
	if err := sink.Deliver(context.Background(), "✅ The server is now ONLINE!"); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}

	var payload map[string]string
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if payload["content"] != "✅ The server is now ONLINE!" {
		t.Errorf("payload content = %q, want the rendered message", payload["content"])
	}
}

func TestWebhookSink_NonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, 5*time.Second)
	err := sink.Deliver(context.Background(), "hello")
	if err == nil {
		t.Fatal("Deliver() error = nil, want error for HTTP 429")
	}
}

func TestWebhookSink_TimeoutIsBounded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, 20*time.Millisecond)

	start := time.Now()
	err := sink.Deliver(context.Background(), "hello")
	if err == nil {
		t.Fatal("Deliver() error = nil, want timeout error")
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("Deliver() blocked for %v, want bounded by the timeout", elapsed)
	}
}

func TestStdoutSink_TimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	sink := NewStdoutSink(&buf, func() time.Time { return fixed })

	if err := sink.Deliver(context.Background(), "❌ The server is now OFFLINE."); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	want := "[2025-03-14 15:09:26] ❌ The server is now OFFLINE.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
