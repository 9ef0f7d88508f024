package domain

import "time"

// DonationStatus enumerates the lifecycle of a donation record.
type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationCompleted DonationStatus = "COMPLETED"
	DonationFailed    DonationStatus = "FAILED"
	DonationRefunded  DonationStatus = "REFUNDED"
)

// Donation represents a supporter contribution record.
type Donation struct {
	ID            string         `json:"id"`
	CampaignID    string         `json:"campaignId"`
	DonorID       string         `json:"donorId"`
	DonorName     string         `json:"donorName,omitempty"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	IsAnonymous   bool           `json:"isAnonymous"`
	Message       string         `json:"message,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
	Status        DonationStatus `json:"status"`
	TransactionID string         `json:"transactionId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}
