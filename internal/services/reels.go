package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// ReelService wraps the /reels endpoint group.
type ReelService struct {
	client *api.Client
}

// ReelParams creates or edits a reel.
type ReelParams struct {
	UserID       string `json:"userId"`
	Caption      string `json:"caption"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	CampaignID   string `json:"campaignId,omitempty"`
}

// Create publishes a new reel.
func (s *ReelService) Create(ctx context.Context, p ReelParams) (*domain.Reel, error) {
	var out domain.Reel
	if err := s.client.Post(ctx, "/reels", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches one reel. viewerID may be empty.
func (s *ReelService) ByID(ctx context.Context, reelID, viewerID string) (*domain.Reel, error) {
	q := url.Values{}
	if viewerID != "" {
		q.Set("userId", viewerID)
	}
	var out domain.Reel
	if err := s.client.Get(ctx, "/reels/"+reelID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a reel.
func (s *ReelService) Update(ctx context.Context, reelID string, p ReelParams) (*domain.Reel, error) {
	var out domain.Reel
	if err := s.client.Put(ctx, "/reels/"+reelID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a reel.
func (s *ReelService) Delete(ctx context.Context, reelID, userID string) error {
	q := url.Values{"userId": {userID}}
	return s.client.Delete(ctx, "/reels/"+reelID, q, nil, nil)
}

// ByUser lists one user's reels as seen by viewerID (may be empty).
func (s *ReelService) ByUser(ctx context.Context, userID, viewerID string, p Page) (*Paged[domain.Reel], error) {
	q := p.Values()
	if viewerID != "" {
		q.Set("currentUserId", viewerID)
	}
	var out Paged[domain.Reel]
	if err := s.client.Get(ctx, "/reels/user/"+userID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
