package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(endpoint string) *HTTPClient {
	c := NewHTTPClient(Config{
		Endpoint: endpoint,
		Timeout:  5 * time.Second,
		MaxTries: 3,
	}, zap.NewNop())
	// Keep retry sleeps out of test runtime.
	c.retryInitial = time.Millisecond
	return c
}

func TestListMessagesQueryAndAuth(t *testing.T) {
	var gotAuth, gotOrderBy, gotTop string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrderBy = r.URL.Query().Get("$orderby")
		gotTop = r.URL.Query().Get("$top")
		json.NewEncoder(w).Encode(map[string]any{
			"value": []Message{{ID: "m1", Subject: "Hello"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	msgs, err := c.ListMessages(context.Background(), "tok", ListMessagesOptions{
		OrderBy: "importance",
		Top:     5,
	})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Subject != "Hello" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotOrderBy != "importance desc" {
		t.Errorf("expected orderby 'importance desc', got %q", gotOrderBy)
	}
	if gotTop != "5" {
		t.Errorf("expected top 5, got %q", gotTop)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"value": []Event{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ListEvents(context.Background(), "tok", ListEventsOptions{Top: 5})
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ListMessages(context.Background(), "tok", ListMessagesOptions{})
	if err == nil {
		t.Fatal("expected error for 403")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("4xx must not retry: got %d attempts", got)
	}
}

func TestReplyToMessagePostsComment(t *testing.T) {
	var gotPath, gotComment string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotComment = body["comment"]
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.ReplyToMessage(context.Background(), "tok", "msg-9", "Thanks!"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if gotPath != "/me/messages/msg-9/reply" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotComment != "Thanks!" {
		t.Errorf("unexpected comment %q", gotComment)
	}
}

func TestCalendarViewWindow(t *testing.T) {
	var gotStart, gotEnd string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("startDateTime")
		gotEnd = r.URL.Query().Get("endDateTime")
		json.NewEncoder(w).Encode(map[string]any{"value": []Event{{Subject: "Standup"}}})
	}))
	defer srv.Close()

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)

	c := newTestClient(srv.URL)
	events, err := c.CalendarView(context.Background(), "tok", start, end, 50)
	if err != nil {
		t.Fatalf("calendar view: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if gotStart != "2026-09-01T08:00:00Z" {
		t.Errorf("unexpected startDateTime %q", gotStart)
	}
	if gotEnd != "2026-09-08T08:00:00Z" {
		t.Errorf("unexpected endDateTime %q", gotEnd)
	}
}
