package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// WithdrawalService wraps the /withdrawals endpoint group.
type WithdrawalService struct {
	client *api.Client
}

// WithdrawalParams opens a withdrawal request.
type WithdrawalParams struct {
	CampaignID    string  `json:"campaignId"`
	RequesterID   string  `json:"requesterId"`
	BankAccountID string  `json:"bankAccountId"`
	Amount        float64 `json:"amount"`
	Notes         string  `json:"notes,omitempty"`
}

// Request opens a withdrawal of raised funds.
func (s *WithdrawalService) Request(ctx context.Context, p WithdrawalParams) (*domain.Withdrawal, error) {
	var out domain.Withdrawal
	if err := s.client.Post(ctx, "/withdrawals", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches one withdrawal.
func (s *WithdrawalService) ByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	var out domain.Withdrawal
	if err := s.client.Get(ctx, "/withdrawals/"+withdrawalID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve clears a withdrawal for payout (admin only).
func (s *WithdrawalService) Approve(ctx context.Context, withdrawalID, adminID, notes string) (*domain.Withdrawal, error) {
	q := url.Values{"adminId": {adminID}}
	if notes != "" {
		q.Set("notes", notes)
	}
	var out domain.Withdrawal
	if err := s.client.PostQuery(ctx, "/withdrawals/"+withdrawalID+"/approve", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reject declines a withdrawal (admin only).
func (s *WithdrawalService) Reject(ctx context.Context, withdrawalID, adminID, reason string) (*domain.Withdrawal, error) {
	q := url.Values{"adminId": {adminID}, "reason": {reason}}
	var out domain.Withdrawal
	if err := s.client.PostQuery(ctx, "/withdrawals/"+withdrawalID+"/reject", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCampaign lists a campaign's withdrawals.
func (s *WithdrawalService) ByCampaign(ctx context.Context, campaignID string, p Page) (*Paged[domain.Withdrawal], error) {
	var out Paged[domain.Withdrawal]
	if err := s.client.Get(ctx, "/withdrawals/campaign/"+campaignID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByUser lists a user's withdrawals.
func (s *WithdrawalService) ByUser(ctx context.Context, userID string, p Page) (*Paged[domain.Withdrawal], error) {
	var out Paged[domain.Withdrawal]
	if err := s.client.Get(ctx, "/withdrawals/user/"+userID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pending lists withdrawals awaiting review (admin only).
func (s *WithdrawalService) Pending(ctx context.Context, p Page) (*Paged[domain.Withdrawal], error) {
	var out Paged[domain.Withdrawal]
	if err := s.client.Get(ctx, "/withdrawals/pending", p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TotalWithdrawn returns the amount already withdrawn from a campaign.
func (s *WithdrawalService) TotalWithdrawn(ctx context.Context, campaignID string) (float64, error) {
	var out struct {
		Total float64 `json:"total"`
	}
	if err := s.client.Get(ctx, "/withdrawals/campaign/"+campaignID+"/total", nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}
