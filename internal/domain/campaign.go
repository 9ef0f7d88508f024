package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "DRAFT"
	CampaignPending   CampaignStatus = "PENDING_APPROVAL"
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignPaused    CampaignStatus = "PAUSED"
	CampaignFunded    CampaignStatus = "FUNDED"
	CampaignCompleted CampaignStatus = "COMPLETED"
)

// Campaign is a fundraising project owned by a creator. The backend is
// authoritative for CurrentAmount and DonorCount; the client re-fetches
// instead of computing them locally.
type Campaign struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	GoalAmount    float64        `json:"goalAmount"`
	CurrentAmount float64        `json:"currentAmount"`
	Currency      string         `json:"currency"`
	DonorCount    int            `json:"donorCount"`
	LikeCount     int            `json:"likeCount"`
	Status        CampaignStatus `json:"status"`
	CreatorID     string         `json:"creatorId"`
	CreatorName   string         `json:"creatorName,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	VideoURL      string         `json:"videoUrl,omitempty"`
	RewardTiers   []RewardTier   `json:"rewardTiers,omitempty"`
	EndDate       time.Time      `json:"endDate"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// RewardTier is an optional perk offered at a minimum donation amount.
type RewardTier struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MinAmount   float64 `json:"minAmount"`
}

// CampaignUpdate is a creator-authored entry on a campaign's update feed.
type CampaignUpdate struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaignId"`
	CreatorID  string    `json:"creatorId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Milestone  bool      `json:"milestone"`
	CreatedAt  time.Time `json:"createdAt"`
}
