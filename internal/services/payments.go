package services

import (
	"context"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// PaymentService wraps the /payments endpoint group covering every rail:
// hosted checkout (Stripe), UPI, card, net banking and wallets.
type PaymentService struct {
	client *api.Client
}

// InitiateParams starts one payment attempt against a campaign.
type InitiateParams struct {
	CampaignID  string               `json:"campaignId"`
	DonorID     string               `json:"donorId"`
	Amount      float64              `json:"amount"`
	Currency    string               `json:"currency,omitempty"`
	Method      domain.PaymentMethod `json:"paymentMethod"`
	IsAnonymous bool                 `json:"isAnonymous"`
	Message     string               `json:"message,omitempty"`
	// IdempotencyKey lets the backend collapse duplicate submissions of the
	// same attempt.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// CheckoutSession is the backend-issued handle for a hosted payment attempt.
type CheckoutSession struct {
	PaymentID   string `json:"paymentId"`
	SessionID   string `json:"sessionId,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// Initiate creates a payment session. For Stripe the response carries a
// hosted Checkout session, for redirect rails a redirectUrl.
func (s *PaymentService) Initiate(ctx context.Context, p InitiateParams) (*CheckoutSession, error) {
	var out CheckoutSession
	if err := s.client.Post(ctx, "/payments/initiate", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UPIOrder is the backend's response to a UPI link or QR request.
type UPIOrder struct {
	TransactionID string `json:"transactionId"`
	UPILink       string `json:"upiLink"`
	QRCodeImage   string `json:"qrCodeImage,omitempty"` // base64 PNG
}

// GenerateUPILink asks the backend for a upi:// deep link.
func (s *PaymentService) GenerateUPILink(ctx context.Context, amount float64, campaignID, donorID string) (*UPIOrder, error) {
	var out UPIOrder
	err := s.client.Post(ctx, "/payments/upi/generate", map[string]any{
		"amount":     amount,
		"campaignId": campaignID,
		"donorId":    donorID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateUPIQRCode asks the backend for a scannable QR code plus link.
func (s *PaymentService) GenerateUPIQRCode(ctx context.Context, amount float64, campaignID, donorID string) (*UPIOrder, error) {
	var out UPIOrder
	err := s.client.Post(ctx, "/payments/upi/qr-code", map[string]any{
		"amount":     amount,
		"campaignId": campaignID,
		"donorId":    donorID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyResult is the backend's answer to a verification call.
type VerifyResult struct {
	Status        domain.PaymentStatus `json:"status"`
	PaymentID     string               `json:"paymentId,omitempty"`
	TransactionID string               `json:"transactionId,omitempty"`
	DonationID    string               `json:"donationId,omitempty"`
	CampaignID    string               `json:"campaignId,omitempty"`
	Amount        float64              `json:"amount,omitempty"`
	Message       string               `json:"message,omitempty"`
}

// VerifyUPI checks one UPI transaction's status.
func (s *PaymentService) VerifyUPI(ctx context.Context, transactionID string) (*VerifyResult, error) {
	var out VerifyResult
	if err := s.client.Get(ctx, "/payments/upi/verify/"+transactionID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CardParams carries the card form plus donation context. The card fields
// are validated client-side before this ever reaches the wire; custody
// stays with the backend.
type CardParams struct {
	CardNumber  string  `json:"cardNumber"`
	CardHolder  string  `json:"cardHolder"`
	ExpiryMonth string  `json:"expiryMonth"`
	ExpiryYear  string  `json:"expiryYear"`
	CVV         string  `json:"cvv"`
	Amount      float64 `json:"amount"`
	CampaignID  string  `json:"campaignId"`
	DonorID     string  `json:"donorId"`
	IsAnonymous bool    `json:"isAnonymous"`
	Message     string  `json:"message,omitempty"`
	SaveCard    bool    `json:"saveCard"`
}

// ProcessCard submits a card payment synchronously.
func (s *PaymentService) ProcessCard(ctx context.Context, p CardParams) (*VerifyResult, error) {
	var out VerifyResult
	if err := s.client.Post(ctx, "/payments/card/process", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SupportedBanks fetches the net-banking catalog.
func (s *PaymentService) SupportedBanks(ctx context.Context) ([]domain.Bank, error) {
	var out []domain.Bank
	if err := s.client.Get(ctx, "/payments/netbanking/banks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InitiateNetBanking obtains the bank's redirect URL for one attempt.
func (s *PaymentService) InitiateNetBanking(ctx context.Context, bankCode string, amount float64, campaignID, donorID string) (*CheckoutSession, error) {
	var out CheckoutSession
	err := s.client.Post(ctx, "/payments/netbanking/initiate", map[string]any{
		"bankCode":   bankCode,
		"amount":     amount,
		"campaignId": campaignID,
		"donorId":    donorID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SupportedWallets fetches the wallet catalog.
func (s *PaymentService) SupportedWallets(ctx context.Context) ([]domain.Wallet, error) {
	var out []domain.Wallet
	if err := s.client.Get(ctx, "/payments/wallet/supported", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InitiateWallet obtains the wallet provider's redirect URL for one attempt.
func (s *PaymentService) InitiateWallet(ctx context.Context, walletType string, amount float64, campaignID, donorID string) (*CheckoutSession, error) {
	var out CheckoutSession
	err := s.client.Post(ctx, "/payments/wallet/initiate", map[string]any{
		"walletType": walletType,
		"amount":     amount,
		"campaignId": campaignID,
		"donorId":    donorID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify checks one payment's status by its backend-issued identifier. The
// return-trip pages call this exactly once on load.
func (s *PaymentService) Verify(ctx context.Context, paymentID string) (*VerifyResult, error) {
	var out VerifyResult
	if err := s.client.Get(ctx, "/payments/verify/"+paymentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Details fetches a payment record.
func (s *PaymentService) Details(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var out domain.Payment
	if err := s.client.Get(ctx, "/payments/"+paymentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestRefund opens a refund request for a settled payment.
func (s *PaymentService) RequestRefund(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	var out domain.Payment
	if err := s.client.Post(ctx, "/payments/"+paymentID+"/refund", map[string]string{"reason": reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefundStatus checks a refund's progress.
func (s *PaymentService) RefundStatus(ctx context.Context, refundID string) (*VerifyResult, error) {
	var out VerifyResult
	if err := s.client.Get(ctx, "/payments/refund/"+refundID+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserHistory lists a user's payments.
func (s *PaymentService) UserHistory(ctx context.Context, userID string, p Page) (*Paged[domain.Payment], error) {
	var out Paged[domain.Payment]
	if err := s.client.Get(ctx, "/payments/user/"+userID+"/history", p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CampaignHistory lists a campaign's payments.
func (s *PaymentService) CampaignHistory(ctx context.Context, campaignID string, p Page) (*Paged[domain.Payment], error) {
	var out Paged[domain.Payment]
	if err := s.client.Get(ctx, "/payments/campaign/"+campaignID+"/history", p.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
