package notify_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"furrow/internal/notify"
	"furrow/internal/testsupport"
)

type captured struct {
	title   string
	message string
	tags    string
}

func newReceiver(t *testing.T) (*httptest.Server, *[]captured) {
	t.Helper()
	var got []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = append(got, captured{
			title:   r.Header.Get("Title"),
			message: string(body),
			tags:    r.Header.Get("Tags"),
		})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func TestNoopWhenUnconfigured(t *testing.T) {
	service := notify.NewService(testsupport.NewConfig(t))
	if err := service.NotifyAllocation(context.Background(), "alice", 2, 2); err != nil {
		t.Fatalf("noop NotifyAllocation: %v", err)
	}
	if err := service.TestNotification(context.Background()); err != nil {
		t.Fatalf("noop TestNotification: %v", err)
	}
}

func TestNotifyAllocation(t *testing.T) {
	server, got := newReceiver(t)
	service := notify.NewService(testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL)))

	if err := service.NotifyAllocation(context.Background(), "alice", 2, 5); err != nil {
		t.Fatalf("NotifyAllocation: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(*got))
	}
	msg := (*got)[0]
	if !strings.Contains(msg.message, "2 of 5") || !strings.Contains(msg.message, "alice") {
		t.Fatalf("unexpected message: %q", msg.message)
	}
	if msg.title != "Furrow - Plots Assigned" {
		t.Fatalf("unexpected title: %q", msg.title)
	}
}

func TestNotifyQueueCompleted(t *testing.T) {
	server, got := newReceiver(t)
	service := notify.NewService(testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL)))

	if err := service.NotifyQueueCompleted(context.Background(), "bob", 7); err != nil {
		t.Fatalf("NotifyQueueCompleted: %v", err)
	}
	if len(*got) != 1 || !strings.Contains((*got)[0].message, "7 plots") {
		t.Fatalf("unexpected notifications: %+v", *got)
	}
}

func TestDisabledEventsSkipped(t *testing.T) {
	server, got := newReceiver(t)
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	cfg.Notifications.Allocation = false
	service := notify.NewService(cfg)

	if err := service.NotifyAllocation(context.Background(), "alice", 1, 1); err != nil {
		t.Fatalf("NotifyAllocation: %v", err)
	}
	if len(*got) != 0 {
		t.Fatalf("expected suppressed notification, got %+v", *got)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	service := notify.NewService(testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL)))

	if err := service.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error from failing receiver")
	}
}
