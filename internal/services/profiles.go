package services

import (
	"context"
	"fmt"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// ProfileService wraps the /profiles endpoint group.
type ProfileService struct {
	client *api.Client
}

// Get fetches a user's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var out domain.Profile
	if err := s.client.Get(ctx, "/profiles/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileParams creates or edits a profile.
type ProfileParams struct {
	Name              string `json:"name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Private           bool   `json:"private,omitempty"`
}

// Create registers a profile for the authenticated user.
func (s *ProfileService) Create(ctx context.Context, p ProfileParams) (*domain.Profile, error) {
	var out domain.Profile
	if err := s.client.Post(ctx, "/profiles", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits the user's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, p ProfileParams) (*domain.Profile, error) {
	var out domain.Profile
	if err := s.client.Put(ctx, "/profiles/"+userID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Exists reports whether the user has created a profile yet. A 404 is the
// expected "no" answer, not a failure.
func (s *ProfileService) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.Get(ctx, userID)
	if err != nil {
		if api.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureDefault creates a minimal profile for a fresh account if none
// exists. Called right after first login.
func (s *ProfileService) EnsureDefault(ctx context.Context, userID, username string) (*domain.Profile, error) {
	exists, err := s.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return s.Get(ctx, userID)
	}
	return s.Create(ctx, ProfileParams{
		Name:              username,
		Bio:               "",
		ProfilePictureURL: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", username),
	})
}
