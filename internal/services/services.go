// Package services holds the thin wrappers over the Catalyster REST API,
// one file per backend resource. Every exported function builds exactly one
// request and returns the decoded body or a normalized *api.Error; there are
// no retries, no batching and no caching, and pagination parameters are
// passed through verbatim.
package services

import (
	"net/url"
	"strconv"

	"catalyster/internal/api"
)

// Page carries pagination parameters exactly as the backend expects them.
type Page struct {
	Page int
	Size int
}

// Values renders the pagination query, applying the backend's defaults when
// fields are unset.
func (p Page) Values() url.Values {
	size := p.Size
	if size <= 0 {
		size = 20
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// Paged is the backend's page envelope for list endpoints.
type Paged[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Last          bool  `json:"last"`
}

// Services bundles one wrapper per backend resource around a shared client.
type Services struct {
	Campaigns     *CampaignService
	Donations     *DonationService
	Payments      *PaymentService
	Comments      *CommentService
	Follows       *FollowService
	Notifications *NotificationService
	Posts         *PostService
	Reels         *ReelService
	Profiles      *ProfileService
	Withdrawals   *WithdrawalService
	BankAccounts  *BankAccountService
	Search        *SearchService
	Updates       *CampaignUpdateService
	Reports       *ReportService
}

// New wires every resource wrapper to the shared client.
func New(client *api.Client) *Services {
	return &Services{
		Campaigns:     &CampaignService{client: client},
		Donations:     &DonationService{client: client},
		Payments:      &PaymentService{client: client},
		Comments:      &CommentService{client: client},
		Follows:       &FollowService{client: client},
		Notifications: &NotificationService{client: client},
		Posts:         &PostService{client: client},
		Reels:         &ReelService{client: client},
		Profiles:      &ProfileService{client: client},
		Withdrawals:   &WithdrawalService{client: client},
		BankAccounts:  &BankAccountService{client: client},
		Search:        &SearchService{client: client},
		Updates:       &CampaignUpdateService{client: client},
		Reports:       &ReportService{client: client},
	}
}
