// Package payment implements the donation payment flow: a small state
// machine that collects an amount and a method, dispatches to one of the
// rails (card, UPI, net banking, wallet, Stripe Checkout), and tracks the
// attempt to a settled or failed outcome.
package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"catalyster/internal/api"
	"catalyster/internal/domain"
	"catalyster/internal/infra"
	"catalyster/internal/services"
)

// State names one step of the donation flow.
type State string

const (
	StateSelectingAmount  State = "SELECTING_AMOUNT"
	StateSelectingMethod  State = "SELECTING_METHOD"
	StateAwaitingExternal State = "AWAITING_EXTERNAL_ACTION"
	StateVerifying        State = "VERIFYING"
	StateSettled          State = "SETTLED"
	StateFailed           State = "FAILED"
)

const (
	upiPollInterval = 3 * time.Second
	upiPollTimeout  = 5 * time.Minute
)

// Flow drives one donation attempt against a campaign. It is not safe for
// concurrent use; one flow belongs to one interaction.
type Flow struct {
	payments *services.PaymentService
	logger   *infra.Logger

	campaignID  string
	donorID     string
	isAnonymous bool
	message     string
	currency    string

	state  State
	amount float64
	method domain.PaymentMethod

	failure string
	result  *services.VerifyResult

	// OnSettled, when set, is invoked once after the flow reaches Settled.
	OnSettled func(*services.VerifyResult)

	pollInterval time.Duration
	pollTimeout  time.Duration
}

// Options configures a donation flow.
type Options struct {
	Payments    *services.PaymentService
	Logger      *infra.Logger
	CampaignID  string
	DonorID     string
	IsAnonymous bool
	Message     string
	Currency    string
}

// NewFlow starts a flow in the amount-selection state.
func NewFlow(opts Options) *Flow {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	currency := opts.Currency
	if currency == "" {
		currency = "INR"
	}
	return &Flow{
		payments:     opts.Payments,
		logger:       logger,
		campaignID:   opts.CampaignID,
		donorID:      opts.DonorID,
		isAnonymous:  opts.IsAnonymous,
		message:      opts.Message,
		currency:     currency,
		state:        StateSelectingAmount,
		pollInterval: upiPollInterval,
		pollTimeout:  upiPollTimeout,
	}
}

// State returns the flow's current step.
func (f *Flow) State() State { return f.state }

// Amount returns the selected donation amount.
func (f *Flow) Amount() float64 { return f.amount }

// Method returns the selected payment method, or "" before selection.
func (f *Flow) Method() domain.PaymentMethod { return f.method }

// Failure returns the surfaced message after the flow fails.
func (f *Flow) Failure() string { return f.failure }

// Result returns the verification result once the flow settles.
func (f *Flow) Result() *services.VerifyResult { return f.result }

// SetAmount records the donation amount. Zero or negative amounts are
// rejected before anything reaches the wire.
func (f *Flow) SetAmount(amount float64) error {
	if f.state != StateSelectingAmount && f.state != StateSelectingMethod {
		return fmt.Errorf("payment: cannot set amount in state %s", f.state)
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	f.amount = amount
	f.state = StateSelectingMethod
	return nil
}

// SelectMethod picks the rail. The flow moves to awaiting-external only
// once an amount and a method are both chosen.
func (f *Flow) SelectMethod(method domain.PaymentMethod) error {
	if f.state != StateSelectingMethod {
		return fmt.Errorf("payment: cannot select method in state %s", f.state)
	}
	switch method {
	case domain.MethodStripe, domain.MethodUPI, domain.MethodCard, domain.MethodNetBanking, domain.MethodWallet:
	default:
		return fmt.Errorf("payment: unsupported method %q", method)
	}
	f.method = method
	f.state = StateAwaitingExternal
	return nil
}

// Retry returns a failed flow to method selection, keeping the amount.
// There is no backoff and no attempt cap; retries are user-driven.
func (f *Flow) Retry() error {
	if f.state != StateFailed {
		return fmt.Errorf("payment: cannot retry in state %s", f.state)
	}
	f.failure = ""
	f.method = ""
	f.state = StateSelectingMethod
	return nil
}

// PayCard validates the card locally and submits it. A Luhn failure or an
// expired card blocks the flow before any network call.
func (f *Flow) PayCard(ctx context.Context, card Card) (*services.VerifyResult, error) {
	if err := f.requireExternal(domain.MethodCard); err != nil {
		return nil, err
	}
	if err := card.Validate(time.Now()); err != nil {
		return nil, err
	}
	res, err := f.payments.ProcessCard(ctx, services.CardParams{
		CardNumber:  normalizeCardNumber(card.Number),
		CardHolder:  card.Holder,
		ExpiryMonth: card.ExpiryMonth,
		ExpiryYear:  card.ExpiryYear,
		CVV:         card.CVV,
		Amount:      f.amount,
		CampaignID:  f.campaignID,
		DonorID:     f.donorID,
		IsAnonymous: f.isAnonymous,
		Message:     f.message,
		SaveCard:    card.Save,
	})
	if err != nil {
		f.fail(failureMessage(err, "Payment failed. Please try again."))
		return nil, err
	}
	if res.Status == domain.PaymentFailed {
		f.fail(failureMessage(nil, res.Message))
		return res, domain.ErrPaymentFailed
	}
	f.settle(res)
	return res, nil
}

// StartUPI requests a QR code and deep link for the attempt. The flow stays
// in awaiting-external until AwaitUPI is called.
func (f *Flow) StartUPI(ctx context.Context) (*services.UPIOrder, error) {
	if err := f.requireExternal(domain.MethodUPI); err != nil {
		return nil, err
	}
	order, err := f.payments.GenerateUPIQRCode(ctx, f.amount, f.campaignID, f.donorID)
	if err != nil {
		f.fail("Failed to generate QR code. Please try again.")
		return nil, err
	}
	return order, nil
}

// StartNetBanking obtains the bank's redirect URL. The flow does not resume
// client-side after the redirect; completion is observed via the return
// pages.
func (f *Flow) StartNetBanking(ctx context.Context, bankCode string) (*services.CheckoutSession, error) {
	if err := f.requireExternal(domain.MethodNetBanking); err != nil {
		return nil, err
	}
	sess, err := f.payments.InitiateNetBanking(ctx, bankCode, f.amount, f.campaignID, f.donorID)
	if err != nil {
		f.fail(failureMessage(err, "Failed to initiate net banking payment"))
		return nil, err
	}
	if sess.RedirectURL == "" {
		f.fail("Bank did not return a redirect URL")
		return nil, domain.ErrPaymentFailed
	}
	return sess, nil
}

// StartWallet obtains the wallet provider's redirect URL.
func (f *Flow) StartWallet(ctx context.Context, walletType string) (*services.CheckoutSession, error) {
	if err := f.requireExternal(domain.MethodWallet); err != nil {
		return nil, err
	}
	sess, err := f.payments.InitiateWallet(ctx, walletType, f.amount, f.campaignID, f.donorID)
	if err != nil {
		f.fail(failureMessage(err, "Failed to initiate wallet payment"))
		return nil, err
	}
	if sess.RedirectURL == "" {
		f.fail("Wallet provider did not return a redirect URL")
		return nil, domain.ErrPaymentFailed
	}
	return sess, nil
}

// StartStripe creates a hosted Checkout session. The caller performs the
// redirect; the flow stops here and the return pages pick up the outcome.
func (f *Flow) StartStripe(ctx context.Context) (*services.CheckoutSession, error) {
	if err := f.requireExternal(domain.MethodStripe); err != nil {
		return nil, err
	}
	sess, err := f.payments.Initiate(ctx, services.InitiateParams{
		CampaignID:     f.campaignID,
		DonorID:        f.donorID,
		Amount:         f.amount,
		Currency:       f.currency,
		Method:         domain.MethodStripe,
		IsAnonymous:    f.isAnonymous,
		Message:        f.message,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		f.fail(failureMessage(err, "Failed to create checkout session"))
		return nil, err
	}
	if sess.SessionID == "" && sess.CheckoutURL == "" && sess.RedirectURL == "" {
		f.fail("Backend did not return a valid Stripe session or redirect URL")
		return nil, domain.ErrPaymentFailed
	}
	return sess, nil
}

func (f *Flow) requireExternal(method domain.PaymentMethod) error {
	if f.state != StateAwaitingExternal {
		return fmt.Errorf("payment: flow is in state %s", f.state)
	}
	if f.method != method {
		return domain.ErrMethodUnselected
	}
	if f.amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func (f *Flow) settle(res *services.VerifyResult) {
	f.result = res
	f.state = StateSettled
	f.logger.Info().
		Str("campaign_id", f.campaignID).
		Float64("amount", f.amount).
		Str("method", string(f.method)).
		Msg("payment: settled")
	if f.OnSettled != nil {
		f.OnSettled(res)
	}
}

func (f *Flow) fail(message string) {
	f.failure = message
	f.state = StateFailed
	f.logger.Warn().
		Str("campaign_id", f.campaignID).
		Str("method", string(f.method)).
		Str("reason", message).
		Msg("payment: failed")
}

func failureMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = "Payment failed. Please try again."
	}
	if err == nil {
		return fallback
	}
	if msg := backendMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// backendMessage extracts the backend's message field, if the error carries
// a response at all. Transport failures fall through to the generic string.
func backendMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status > 0 {
		return apiErr.Message
	}
	return ""
}
