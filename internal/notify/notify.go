// Package notify pushes annotation lifecycle events over ntfy.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"furrow/internal/config"
)

const userAgent = "Furrow-Go/0.1.0"

// Service defines the notification surface exposed to the API services.
type Service interface {
	NotifyAllocation(ctx context.Context, annotator string, granted, requested int) error
	NotifyQueueCompleted(ctx context.Context, annotator string, completed int) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		allocation:     cfg.Notifications.Allocation,
		queueCompleted: cfg.Notifications.QueueCompleted,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	allocation     bool
	queueCompleted bool
}

func (n *ntfyService) NotifyAllocation(ctx context.Context, annotator string, granted, requested int) error {
	if !n.allocation {
		return nil
	}
	annotator = strings.TrimSpace(annotator)
	message := fmt.Sprintf("Assigned %d plots to %s", granted, annotator)
	if granted < requested {
		message = fmt.Sprintf("Assigned %d of %d requested plots to %s (pool low)", granted, requested, annotator)
	}
	data := payload{
		title:   "Furrow - Plots Assigned",
		message: message,
		tags:    []string{"furrow", "allocation"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyQueueCompleted(ctx context.Context, annotator string, completed int) error {
	if !n.queueCompleted {
		return nil
	}
	annotator = strings.TrimSpace(annotator)
	data := payload{
		title:    "Furrow - Queue Complete",
		message:  fmt.Sprintf("%s finished their queue: %d plots annotated", annotator, completed),
		tags:     []string{"furrow", "queue", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Furrow - Test",
		message:  "Notification system test",
		tags:     []string{"furrow", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyAllocation(context.Context, string, int, int) error { return nil }
func (noopService) NotifyQueueCompleted(context.Context, string, int) error  { return nil }
func (noopService) TestNotification(context.Context) error                   { return nil }
