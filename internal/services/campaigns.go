package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// CampaignService wraps the /campaigns and /likes endpoint groups.
type CampaignService struct {
	client *api.Client
}

// ActiveParams filters the active-campaign listing.
type ActiveParams struct {
	Page     Page
	Category string
	Sort     string
}

// Active lists currently running campaigns.
func (s *CampaignService) Active(ctx context.Context, p ActiveParams) (*Paged[domain.Campaign], error) {
	q := p.Page.Values()
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	var out Paged[domain.Campaign]
	if err := s.client.Get(ctx, "/campaigns/active", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches a single campaign. viewerID may be empty for anonymous views.
func (s *CampaignService) ByID(ctx context.Context, campaignID, viewerID string) (*domain.Campaign, error) {
	q := url.Values{}
	if viewerID != "" {
		q.Set("userId", viewerID)
	}
	var out domain.Campaign
	if err := s.client.Get(ctx, "/campaigns/"+campaignID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCategory lists campaigns in one category.
func (s *CampaignService) ByCategory(ctx context.Context, category string, p Page) (*Paged[domain.Campaign], error) {
	var out Paged[domain.Campaign]
	if err := s.client.Get(ctx, "/campaigns/category/"+category, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCreator lists a user's campaigns.
func (s *CampaignService) ByCreator(ctx context.Context, creatorID string, p Page) (*Paged[domain.Campaign], error) {
	var out Paged[domain.Campaign]
	if err := s.client.Get(ctx, "/campaigns/user/"+creatorID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Progress reports funding progress for one campaign. The backend value is
// authoritative; the client never reconciles it locally.
func (s *CampaignService) Progress(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	var out domain.Campaign
	if err := s.client.Get(ctx, "/campaigns/"+campaignID+"/progress", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateParams carries the campaign creation form.
type CreateParams struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	GoalAmount  float64             `json:"goalAmount"`
	Currency    string              `json:"currency,omitempty"`
	EndDate     string              `json:"endDate"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	VideoURL    string              `json:"videoUrl,omitempty"`
	CreatorID   string              `json:"creatorId"`
	RewardTiers []domain.RewardTier `json:"rewardTiers,omitempty"`
}

// Create submits a new campaign draft.
func (s *CampaignService) Create(ctx context.Context, p CreateParams) (*domain.Campaign, error) {
	var out domain.Campaign
	if err := s.client.Post(ctx, "/campaigns", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits an existing campaign.
func (s *CampaignService) Update(ctx context.Context, campaignID string, p CreateParams) (*domain.Campaign, error) {
	var out domain.Campaign
	if err := s.client.Put(ctx, "/campaigns/"+campaignID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Publish moves a draft campaign live.
func (s *CampaignService) Publish(ctx context.Context, campaignID, creatorID string) (*domain.Campaign, error) {
	q := url.Values{"creatorId": {creatorID}}
	var out domain.Campaign
	if err := s.client.PostQuery(ctx, "/campaigns/"+campaignID+"/publish", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pause suspends an active campaign.
func (s *CampaignService) Pause(ctx context.Context, campaignID, creatorID string) (*domain.Campaign, error) {
	q := url.Values{"creatorId": {creatorID}}
	var out domain.Campaign
	if err := s.client.PostQuery(ctx, "/campaigns/"+campaignID+"/pause", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resume reactivates a paused campaign.
func (s *CampaignService) Resume(ctx context.Context, campaignID, creatorID string) (*domain.Campaign, error) {
	q := url.Values{"creatorId": {creatorID}}
	var out domain.Campaign
	if err := s.client.PostQuery(ctx, "/campaigns/"+campaignID+"/resume", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve clears a pending campaign for publication (admin only).
func (s *CampaignService) Approve(ctx context.Context, campaignID, adminID string) (*domain.Campaign, error) {
	q := url.Values{"adminId": {adminID}}
	var out domain.Campaign
	if err := s.client.PostQuery(ctx, "/campaigns/"+campaignID+"/approve", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Like records a like on a campaign.
func (s *CampaignService) Like(ctx context.Context, campaignID, userID string) error {
	return s.client.Post(ctx, "/likes", map[string]string{
		"userId":     userID,
		"campaignId": campaignID,
	}, nil)
}

// Unlike removes a like. The backend expects the identifiers in the DELETE body.
func (s *CampaignService) Unlike(ctx context.Context, campaignID, userID string) error {
	return s.client.Delete(ctx, "/likes", nil, map[string]string{
		"userId":     userID,
		"campaignId": campaignID,
	}, nil)
}

// Liked reports whether the user has liked the campaign.
func (s *CampaignService) Liked(ctx context.Context, campaignID, userID string) (bool, error) {
	var out struct {
		Liked bool `json:"liked"`
	}
	if err := s.client.Get(ctx, "/likes/campaign/"+campaignID+"/user/"+userID, nil, &out); err != nil {
		return false, err
	}
	return out.Liked, nil
}

// LikeCount returns the campaign's like total.
func (s *CampaignService) LikeCount(ctx context.Context, campaignID string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.client.Get(ctx, "/likes/campaign/"+campaignID+"/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
