package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// NotificationService wraps the /notifications endpoint group.
type NotificationService struct {
	client *api.Client
}

// ForUser lists a user's notifications, newest first.
func (s *NotificationService) ForUser(ctx context.Context, userID string, p Page) (*Paged[domain.Notification], error) {
	var out Paged[domain.Notification]
	if err := s.client.Get(ctx, "/notifications/user/"+userID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnreadCount returns the user's unread total.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.client.Get(ctx, "/notifications/user/"+userID+"/unread/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	q := url.Values{"userId": {userID}}
	return s.client.PutQuery(ctx, "/notifications/"+notificationID+"/read", q, nil)
}

// MarkAllRead flags every notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.client.PutQuery(ctx, "/notifications/user/"+userID+"/read-all", nil, nil)
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, notificationID, userID string) error {
	q := url.Values{"userId": {userID}}
	return s.client.Delete(ctx, "/notifications/"+notificationID, q, nil, nil)
}
