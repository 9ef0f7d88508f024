package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// DonationService wraps the /donations endpoint group.
type DonationService struct {
	client *api.Client
}

// DonationParams carries the donation creation form.
type DonationParams struct {
	CampaignID     string               `json:"campaignId"`
	DonorID        string               `json:"donorId"`
	Amount         float64              `json:"amount"`
	Currency       string               `json:"currency,omitempty"`
	IsAnonymous    bool                 `json:"isAnonymous"`
	Message        string               `json:"message,omitempty"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	PaymentDetails map[string]any       `json:"paymentDetails,omitempty"`
}

// Create records a donation directly, outside the hosted payment flows.
func (s *DonationService) Create(ctx context.Context, p DonationParams) (*domain.Donation, error) {
	var out domain.Donation
	if err := s.client.Post(ctx, "/donations", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches a single donation.
func (s *DonationService) ByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	var out domain.Donation
	if err := s.client.Get(ctx, "/donations/"+donationID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCampaign lists a campaign's donations.
func (s *DonationService) ByCampaign(ctx context.Context, campaignID string, p Page) (*Paged[domain.Donation], error) {
	var out Paged[domain.Donation]
	if err := s.client.Get(ctx, "/donations/campaign/"+campaignID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByUser lists a donor's donations.
func (s *DonationService) ByUser(ctx context.Context, userID string, p Page) (*Paged[domain.Donation], error) {
	var out Paged[domain.Donation]
	if err := s.client.Get(ctx, "/donations/user/"+userID, p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Total returns the confirmed donation total for a campaign.
func (s *DonationService) Total(ctx context.Context, campaignID string) (float64, error) {
	var out struct {
		Total float64 `json:"total"`
	}
	if err := s.client.Get(ctx, "/donations/campaign/"+campaignID+"/total", nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// DonorCount returns the unique donor count for a campaign.
func (s *DonationService) DonorCount(ctx context.Context, campaignID string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.client.Get(ctx, "/donations/campaign/"+campaignID+"/donors/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Refund reverses a donation (admin only).
func (s *DonationService) Refund(ctx context.Context, donationID, adminID, reason string) (*domain.Donation, error) {
	q := url.Values{"adminId": {adminID}, "reason": {reason}}
	var out domain.Donation
	if err := s.client.PostQuery(ctx, "/donations/"+donationID+"/refund", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
