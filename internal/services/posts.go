package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// PostService wraps the /posts endpoint group.
type PostService struct {
	client *api.Client
}

// PostParams creates or edits a post.
type PostParams struct {
	UserID     string `json:"userId"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl,omitempty"`
	CampaignID string `json:"campaignId,omitempty"`
}

// Create publishes a new post.
func (s *PostService) Create(ctx context.Context, p PostParams) (*domain.Post, error) {
	var out domain.Post
	if err := s.client.Post(ctx, "/posts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches one post. viewerID may be empty.
func (s *PostService) ByID(ctx context.Context, postID, viewerID string) (*domain.Post, error) {
	q := url.Values{}
	if viewerID != "" {
		q.Set("userId", viewerID)
	}
	var out domain.Post
	if err := s.client.Get(ctx, "/posts/"+postID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a post.
func (s *PostService) Update(ctx context.Context, postID string, p PostParams) (*domain.Post, error) {
	var out domain.Post
	if err := s.client.Put(ctx, "/posts/"+postID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, postID, userID string) error {
	q := url.Values{"userId": {userID}}
	return s.client.Delete(ctx, "/posts/"+postID, q, nil, nil)
}

// ByUser lists one user's posts as seen by viewerID (may be empty).
func (s *PostService) ByUser(ctx context.Context, userID, viewerID string, p Page) (*Paged[domain.Post], error) {
	q := p.Values()
	if viewerID != "" {
		q.Set("currentUserId", viewerID)
	}
	var out Paged[domain.Post]
	if err := s.client.Get(ctx, "/posts/user/"+userID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Feed lists posts from the followed users.
func (s *PostService) Feed(ctx context.Context, userID string, followingIDs []string, p Page) (*Paged[domain.Post], error) {
	q := p.Values()
	q.Set("userId", userID)
	for _, id := range followingIDs {
		q.Add("followingIds", id)
	}
	var out Paged[domain.Post]
	if err := s.client.Get(ctx, "/posts/feed", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
