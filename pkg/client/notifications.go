package client

import (
	"context"
	"fmt"

	"github.com/campusmaster/campus/pkg/domain"
)

// ListNotifications returns the authenticated user's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.get(ctx, "/api/notifications", &out); err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	return out, nil
}

// UnreadNotifications returns only unread notifications.
func (c *Client) UnreadNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.get(ctx, "/api/notifications/unread", &out); err != nil {
		return nil, fmt.Errorf("client.UnreadNotifications: %w", err)
	}
	return out, nil
}

// NotificationUnreadCount returns the server's unread notification count.
func (c *Client) NotificationUnreadCount(ctx context.Context) (int, error) {
	var out domain.UnreadCount
	if err := c.get(ctx, "/api/notifications/unread/count", &out); err != nil {
		return 0, fmt.Errorf("client.NotificationUnreadCount: %w", err)
	}
	return out.Count, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	if err := c.put(ctx, "/api/notifications/"+idPath(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationRead: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.put(ctx, "/api/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("client.MarkAllNotificationsRead: %w", err)
	}
	return nil
}

// DeleteNotification deletes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/api/notifications/"+idPath(id)); err != nil {
		return fmt.Errorf("client.DeleteNotification: %w", err)
	}
	return nil
}
