package services

import (
	"context"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// SearchService wraps the /search endpoint group.
type SearchService struct {
	client *api.Client
}

// SearchResults aggregates the cross-resource search response.
type SearchResults struct {
	Profiles  []domain.Profile  `json:"profiles,omitempty"`
	Campaigns []domain.Campaign `json:"campaigns,omitempty"`
	Posts     []domain.Post     `json:"posts,omitempty"`
	Reels     []domain.Reel     `json:"reels,omitempty"`
}

// All searches across every resource type.
func (s *SearchService) All(ctx context.Context, query string, p Page) (*SearchResults, error) {
	q := p.Values()
	q.Set("query", query)
	var out SearchResults
	if err := s.client.Get(ctx, "/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profiles searches user profiles.
func (s *SearchService) Profiles(ctx context.Context, query string, p Page) (*Paged[domain.Profile], error) {
	q := p.Values()
	q.Set("query", query)
	var out Paged[domain.Profile]
	if err := s.client.Get(ctx, "/search/profiles", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts searches posts.
func (s *SearchService) Posts(ctx context.Context, query string, p Page) (*Paged[domain.Post], error) {
	q := p.Values()
	q.Set("query", query)
	var out Paged[domain.Post]
	if err := s.client.Get(ctx, "/search/posts", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reels searches reels.
func (s *SearchService) Reels(ctx context.Context, query string, p Page) (*Paged[domain.Reel], error) {
	q := p.Values()
	q.Set("query", query)
	var out Paged[domain.Reel]
	if err := s.client.Get(ctx, "/search/reels", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
