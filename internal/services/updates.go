package services

import (
	"context"
	"net/url"
	"strconv"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// CampaignUpdateService wraps the /campaign-updates endpoint group.
type CampaignUpdateService struct {
	client *api.Client
}

// UpdateParams creates or edits a campaign update.
type UpdateParams struct {
	CampaignID string `json:"campaignId"`
	CreatorID  string `json:"creatorId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Milestone  bool   `json:"milestone,omitempty"`
}

// Create posts a new update on a campaign's feed.
func (s *CampaignUpdateService) Create(ctx context.Context, p UpdateParams) (*domain.CampaignUpdate, error) {
	var out domain.CampaignUpdate
	if err := s.client.Post(ctx, "/campaign-updates", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches one update.
func (s *CampaignUpdateService) ByID(ctx context.Context, updateID string) (*domain.CampaignUpdate, error) {
	var out domain.CampaignUpdate
	if err := s.client.Get(ctx, "/campaign-updates/"+updateID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits an update.
func (s *CampaignUpdateService) Update(ctx context.Context, updateID string, p UpdateParams) (*domain.CampaignUpdate, error) {
	var out domain.CampaignUpdate
	if err := s.client.Put(ctx, "/campaign-updates/"+updateID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an update.
func (s *CampaignUpdateService) Delete(ctx context.Context, updateID, creatorID string) error {
	q := url.Values{"creatorId": {creatorID}}
	return s.client.Delete(ctx, "/campaign-updates/"+updateID, q, nil, nil)
}

// ByCampaign lists a campaign's updates.
func (s *CampaignUpdateService) ByCampaign(ctx context.Context, campaignID string, p Page) (*Paged[domain.CampaignUpdate], error) {
	var out Paged[domain.CampaignUpdate]
	if err := s.client.Get(ctx, "/campaign-updates/campaign/"+campaignID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Milestones lists only a campaign's milestone updates.
func (s *CampaignUpdateService) Milestones(ctx context.Context, campaignID string, p Page) (*Paged[domain.CampaignUpdate], error) {
	var out Paged[domain.CampaignUpdate]
	if err := s.client.Get(ctx, "/campaign-updates/campaign/"+campaignID+"/milestones", p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recent lists the latest updates across all campaigns.
func (s *CampaignUpdateService) Recent(ctx context.Context, count int) ([]domain.CampaignUpdate, error) {
	if count <= 0 {
		count = 10
	}
	q := url.Values{"count": {strconv.Itoa(count)}}
	var out []domain.CampaignUpdate
	if err := s.client.Get(ctx, "/campaign-updates/recent", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByCreator lists updates authored by one creator.
func (s *CampaignUpdateService) ByCreator(ctx context.Context, creatorID string, p Page) (*Paged[domain.CampaignUpdate], error) {
	var out Paged[domain.CampaignUpdate]
	if err := s.client.Get(ctx, "/campaign-updates/creator/"+creatorID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
