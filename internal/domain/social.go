package domain

import "time"

// Comment supports one level of threading via ParentCommentID.
type Comment struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	AuthorID        string    `json:"authorId"`
	AuthorName      string    `json:"authorName,omitempty"`
	CampaignID      string    `json:"campaignId,omitempty"`
	PostID          string    `json:"postId,omitempty"`
	ReelID          string    `json:"reelId,omitempty"`
	ParentCommentID string    `json:"parentCommentId,omitempty"`
	LikeCount       int       `json:"likeCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// NotificationType tags what a notification is about.
type NotificationType string

const (
	NotifyDonation  NotificationType = "DONATION"
	NotifyFollow    NotificationType = "FOLLOW"
	NotifyLike      NotificationType = "LIKE"
	NotifyComment   NotificationType = "COMMENT"
	NotifyMilestone NotificationType = "MILESTONE"
)

// Notification is an actor-on-target event delivered to a user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	ActorID   string           `json:"actorId"`
	ActorName string           `json:"actorName,omitempty"`
	TargetID  string           `json:"targetId"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// FollowState tracks the approval state of a follow edge. Pending edges
// exist only for private profiles.
type FollowState string

const (
	FollowPending  FollowState = "PENDING"
	FollowApproved FollowState = "APPROVED"
	FollowBlocked  FollowState = "BLOCKED"
)

// Follow is a directional relation between two users.
type Follow struct {
	FollowerID  string      `json:"followerId"`
	FollowingID string      `json:"followingId"`
	State       FollowState `json:"state"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Post is a social feed entry, optionally linked to a campaign.
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AuthorName   string    `json:"authorName,omitempty"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CampaignID   string    `json:"campaignId,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Reel is a short vertical video post.
type Reel struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AuthorName   string    `json:"authorName,omitempty"`
	Caption      string    `json:"caption"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CampaignID   string    `json:"campaignId,omitempty"`
	LikeCount    int       `json:"likeCount"`
	ViewCount    int       `json:"viewCount"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Report is a user-filed moderation report.
type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporterId"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
