package services

import (
	"context"
	"net/url"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// BankAccountService wraps the /bank-accounts endpoint group.
type BankAccountService struct {
	client *api.Client
}

// BankAccountParams adds or edits a payout destination.
type BankAccountParams struct {
	ProfileID     string `json:"profileId"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	BankName      string `json:"bankName"`
	Primary       bool   `json:"primary,omitempty"`
}

// Add registers a bank account.
func (s *BankAccountService) Add(ctx context.Context, p BankAccountParams) (*domain.BankAccount, error) {
	var out domain.BankAccount
	if err := s.client.Post(ctx, "/bank-accounts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID fetches one account belonging to the profile.
func (s *BankAccountService) ByID(ctx context.Context, accountID, profileID string) (*domain.BankAccount, error) {
	q := url.Values{"profileId": {profileID}}
	var out domain.BankAccount
	if err := s.client.Get(ctx, "/bank-accounts/"+accountID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits an account.
func (s *BankAccountService) Update(ctx context.Context, accountID string, p BankAccountParams) (*domain.BankAccount, error) {
	var out domain.BankAccount
	if err := s.client.Put(ctx, "/bank-accounts/"+accountID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an account.
func (s *BankAccountService) Delete(ctx context.Context, accountID, profileID string) error {
	q := url.Values{"profileId": {profileID}}
	return s.client.Delete(ctx, "/bank-accounts/"+accountID, q, nil, nil)
}

// ForProfile lists a profile's accounts.
func (s *BankAccountService) ForProfile(ctx context.Context, profileID string) ([]domain.BankAccount, error) {
	var out []domain.BankAccount
	if err := s.client.Get(ctx, "/bank-accounts/user/"+profileID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Primary fetches the profile's primary account.
func (s *BankAccountService) Primary(ctx context.Context, profileID string) (*domain.BankAccount, error) {
	var out domain.BankAccount
	if err := s.client.Get(ctx, "/bank-accounts/user/"+profileID+"/primary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify marks an account verified (admin only).
func (s *BankAccountService) Verify(ctx context.Context, accountID, adminID string) (*domain.BankAccount, error) {
	q := url.Values{"adminId": {adminID}}
	var out domain.BankAccount
	if err := s.client.PostQuery(ctx, "/bank-accounts/"+accountID+"/verify", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttachVerificationDocument links a verification document to the account.
func (s *BankAccountService) AttachVerificationDocument(ctx context.Context, accountID, profileID, documentURL string) error {
	q := url.Values{"profileId": {profileID}, "documentUrl": {documentURL}}
	return s.client.PostQuery(ctx, "/bank-accounts/"+accountID+"/verification-document", q, nil)
}
