package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blog-engagement-api/internal/metrics"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationCommentAdded   NotificationType = "COMMENT_ADDED"
	NotificationCommentReplied NotificationType = "COMMENT_REPLIED"
	NotificationPostLiked      NotificationType = "POST_LIKED"
)

// NotificationEvent represents a notification to be sent
type NotificationEvent struct {
	Type         NotificationType       `json:"type"`
	ActorID      uuid.UUID              `json:"actorId"`
	TargetUserID uuid.UUID              `json:"targetUserId"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   uuid.UUID              `json:"resourceId"`
	ResourceName string                 `json:"resourceName,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// BulkNotificationRequest represents a bulk notification request
type BulkNotificationRequest struct {
	Notifications []NotificationEvent `json:"notifications"`
}

// NotificationClient defines the interface for notification service communication
type NotificationClient interface {
	// SendNotification sends a single notification
	SendNotification(ctx context.Context, event NotificationEvent) error
	// SendBulkNotifications sends multiple notifications at once
	SendBulkNotifications(ctx context.Context, events []NotificationEvent) error
}

// notificationClient implements NotificationClient interface
type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a new Notification API client.
// An empty baseURL yields a no-op client.
func NewNotificationClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	if baseURL == "" {
		return NewNoOpNotificationClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &notificationClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SendNotification sends a single notification to the notification service.
// Delivery failures are logged and swallowed; only local encoding errors are returned.
func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	if event.ActorID == event.TargetUserID {
		return nil
	}
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return c.post(ctx, "/api/internal/notifications", body,
		zap.String("type", string(event.Type)),
		zap.String("target_user_id", event.TargetUserID.String()),
	)
}

// SendBulkNotifications sends multiple notifications at once
func (c *notificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	filtered := make([]NotificationEvent, 0, len(events))
	now := time.Now().UTC().Format(time.RFC3339)
	for _, event := range events {
		if event.ActorID == event.TargetUserID {
			continue
		}
		if event.OccurredAt == "" {
			event.OccurredAt = now
		}
		filtered = append(filtered, event)
	}
	if len(filtered) == 0 {
		return nil
	}

	body, err := json.Marshal(BulkNotificationRequest{Notifications: filtered})
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}

	return c.post(ctx, "/api/internal/notifications/bulk", body, zap.Int("count", len(filtered)))
}

func (c *notificationClient) post(ctx context.Context, path string, body []byte, fields ...zap.Field) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(path, http.MethodPost, statusCode, duration, err)
	}

	fields = append(fields, zap.Duration("duration", duration))

	if err != nil {
		// Graceful degradation: log error but don't fail the main operation
		c.logger.Error("Failed to send notification", append(fields, zap.Error(err))...)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("Notification sent", fields...)
		return nil
	}

	c.logger.Warn("Notification service returned non-success status",
		append(fields, zap.Int("status_code", resp.StatusCode))...)
	return nil
}

// NoOpNotificationClient is a no-op implementation for when notifications are disabled
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}

func (c *NoOpNotificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	return nil
}
