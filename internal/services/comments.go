package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// CommentService wraps the /comments endpoint group.
type CommentService struct {
	client *api.Client
}

// CommentParams creates or edits a comment. Exactly one of CampaignID,
// PostID or ReelID identifies the target; ParentCommentID adds one level
// of threading.
type CommentParams struct {
	Content         string `json:"content"`
	AuthorID        string `json:"authorId"`
	CampaignID      string `json:"campaignId,omitempty"`
	PostID          string `json:"postId,omitempty"`
	ReelID          string `json:"reelId,omitempty"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}

// Create posts a new comment.
func (s *CommentService) Create(ctx context.Context, p CommentParams) (*domain.Comment, error) {
	var out domain.Comment
	if err := s.client.Post(ctx, "/comments", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a comment's content.
func (s *CommentService) Update(ctx context.Context, commentID string, p CommentParams) (*domain.Comment, error) {
	var out domain.Comment
	if err := s.client.Put(ctx, "/comments/"+commentID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	q := url.Values{"userId": {userID}}
	return s.client.Delete(ctx, "/comments/"+commentID, q, nil, nil)
}

// ByCampaign lists a campaign's comments.
func (s *CommentService) ByCampaign(ctx context.Context, campaignID string, p Page) (*Paged[domain.Comment], error) {
	var out Paged[domain.Comment]
	if err := s.client.Get(ctx, "/comments/campaign/"+campaignID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByPost lists a post's comments.
func (s *CommentService) ByPost(ctx context.Context, postID string, p Page) (*Paged[domain.Comment], error) {
	var out Paged[domain.Comment]
	if err := s.client.Get(ctx, "/comments/post/"+postID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByReel lists a reel's comments.
func (s *CommentService) ByReel(ctx context.Context, reelID string, p Page) (*Paged[domain.Comment], error) {
	var out Paged[domain.Comment]
	if err := s.client.Get(ctx, "/comments/reel/"+reelID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Replies lists one comment's direct replies.
func (s *CommentService) Replies(ctx context.Context, parentCommentID string, p Page) (*Paged[domain.Comment], error) {
	var out Paged[domain.Comment]
	if err := s.client.Get(ctx, "/comments/"+parentCommentID+"/replies", p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Like records a like on a comment.
func (s *CommentService) Like(ctx context.Context, commentID string) error {
	return s.client.Post(ctx, "/comments/"+commentID+"/like", nil, nil)
}

// Unlike removes a like from a comment.
func (s *CommentService) Unlike(ctx context.Context, commentID string) error {
	return s.client.Delete(ctx, "/comments/"+commentID+"/like", nil, nil, nil)
}
