package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// ReportService wraps the /reports endpoint group used for moderation.
type ReportService struct {
	client *api.Client
}

// ReportParams files a report against a target resource.
type ReportParams struct {
	ReporterID string `json:"reporterId"`
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
}

// Create files a new report.
func (s *ReportService) Create(ctx context.Context, p ReportParams) (*domain.Report, error) {
	var out domain.Report
	if err := s.client.Post(ctx, "/reports", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches one report.
func (s *ReportService) ByID(ctx context.Context, reportID string) (*domain.Report, error) {
	var out domain.Report
	if err := s.client.Get(ctx, "/reports/"+reportID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolve closes a report with an action (admin only).
func (s *ReportService) Resolve(ctx context.Context, reportID, adminID, action, notes string) (*domain.Report, error) {
	q := url.Values{"adminId": {adminID}, "action": {action}}
	if notes != "" {
		q.Set("notes", notes)
	}
	var out domain.Report
	if err := s.client.PostQuery(ctx, "/reports/"+reportID+"/resolve", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dismiss closes a report without action (admin only).
func (s *ReportService) Dismiss(ctx context.Context, reportID, adminID, reason string) (*domain.Report, error) {
	q := url.Values{"adminId": {adminID}, "reason": {reason}}
	var out domain.Report
	if err := s.client.PostQuery(ctx, "/reports/"+reportID+"/dismiss", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pending lists reports awaiting review (admin only).
func (s *ReportService) Pending(ctx context.Context, p Page) (*Paged[domain.Report], error) {
	var out Paged[domain.Report]
	if err := s.client.Get(ctx, "/reports/pending", p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByUser lists reports filed by one user.
func (s *ReportService) ByUser(ctx context.Context, userID string, p Page) (*Paged[domain.Report], error) {
	var out Paged[domain.Report]
	if err := s.client.Get(ctx, "/reports/user/"+userID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
