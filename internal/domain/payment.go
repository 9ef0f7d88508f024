package domain

import "time"

// PaymentMethod tags the rail a donation is processed through.
type PaymentMethod string

const (
	MethodStripe     PaymentMethod = "STRIPE"
	MethodUPI        PaymentMethod = "UPI"
	MethodCard       PaymentMethod = "CARD"
	MethodNetBanking PaymentMethod = "NETBANKING"
	MethodWallet     PaymentMethod = "WALLET"
)

// PaymentStatus is the backend-reported state of one payment attempt.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Payment is a backend-issued, time-bounded handle for one attempted
// payment; its ID correlates the later verification call.
type Payment struct {
	ID            string        `json:"id"`
	CampaignID    string        `json:"campaignId"`
	DonorID       string        `json:"donorId"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"paymentMethod"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Bank describes one supported net-banking institution.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Wallet describes one supported wallet provider.
type Wallet struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Withdrawal is a creator's request to move raised funds to a bank account.
type Withdrawal struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaignId"`
	RequesterID   string    `json:"requesterId"`
	BankAccountID string    `json:"bankAccountId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BankAccount is a payout destination owned by a profile.
type BankAccount struct {
	ID            string `json:"id"`
	ProfileID     string `json:"profileId"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	BankName      string `json:"bankName"`
	Primary       bool   `json:"primary"`
	Verified      bool   `json:"verified"`
}
