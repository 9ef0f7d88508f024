package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// FollowService wraps the /follows endpoint group. Follow edges carry the
// pending/approved/blocked states driven by profile privacy settings.
type FollowService struct {
	client *api.Client
}

// Follow creates a follow edge (or a pending request for private profiles).
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) (*domain.Follow, error) {
	q := url.Values{"followerId": {followerID}}
	var out domain.Follow
	if err := s.client.PostQuery(ctx, "/follows/"+followingID+"/follow", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unfollow removes a follow edge.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	q := url.Values{"followerId": {followerID}}
	return s.client.Delete(ctx, "/follows/"+followingID+"/unfollow", q, nil, nil)
}

// Approve accepts a pending follow request.
func (s *FollowService) Approve(ctx context.Context, followingID, followerID string) (*domain.Follow, error) {
	q := url.Values{"followingId": {followingID}}
	var out domain.Follow
	if err := s.client.PostQuery(ctx, "/follows/requests/"+followerID+"/approve", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reject declines a pending follow request.
func (s *FollowService) Reject(ctx context.Context, followingID, followerID string) error {
	q := url.Values{"followingId": {followingID}}
	return s.client.PostQuery(ctx, "/follows/requests/"+followerID+"/reject", q, nil)
}

// Block moves an edge to the blocked state.
func (s *FollowService) Block(ctx context.Context, blockerID, blockedID string) error {
	q := url.Values{"blockerId": {blockerID}}
	return s.client.PostQuery(ctx, "/follows/"+blockedID+"/block", q, nil)
}

// Unblock lifts a block.
func (s *FollowService) Unblock(ctx context.Context, blockerID, blockedID string) error {
	q := url.Values{"blockerId": {blockerID}}
	return s.client.Delete(ctx, "/follows/"+blockedID+"/unblock", q, nil, nil)
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID string) ([]domain.Profile, error) {
	var out []domain.Profile
	if err := s.client.Get(ctx, "/follows/"+userID+"/followers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID string) ([]domain.Profile, error) {
	var out []domain.Profile
	if err := s.client.Get(ctx, "/follows/"+userID+"/following", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingRequests lists follow requests awaiting the user's approval.
func (s *FollowService) PendingRequests(ctx context.Context, userID string) ([]domain.Follow, error) {
	var out []domain.Follow
	if err := s.client.Get(ctx, "/follows/"+userID+"/requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Blocked lists the users userID has blocked.
func (s *FollowService) Blocked(ctx context.Context, userID string) ([]domain.Profile, error) {
	var out []domain.Profile
	if err := s.client.Get(ctx, "/follows/"+userID+"/blocked", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IsFollowing reports whether follower follows following.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var out struct {
		Following bool `json:"following"`
	}
	if err := s.client.Get(ctx, "/follows/"+followerID+"/follows/"+followingID, nil, &out); err != nil {
		return false, err
	}
	return out.Following, nil
}
