package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalyster/internal/api"
	"catalyster/internal/domain"
	"catalyster/internal/services"
)

func newTestFlow(t *testing.T, transport *flowTransport) *Flow {
	t.Helper()
	client, err := api.NewClient(api.Options{
		BaseURL:    "https://api.example.com/api/v1",
		HTTPClient: &http.Client{Transport: transport},
	})
	require.NoError(t, err)
	return NewFlow(Options{
		Payments:   services.New(client).Payments,
		CampaignID: "c1",
		DonorID:    "u1",
	})
}

func TestSetAmountRejectsNonPositive(t *testing.T) {
	f := newTestFlow(t, newFlowTransport())
	assert.ErrorIs(t, f.SetAmount(0), domain.ErrInvalidAmount)
	assert.ErrorIs(t, f.SetAmount(-25), domain.ErrInvalidAmount)
	assert.Equal(t, StateSelectingAmount, f.State())

	require.NoError(t, f.SetAmount(500))
	assert.Equal(t, StateSelectingMethod, f.State())
}

func TestSelectMethodRequiresAmountFirst(t *testing.T) {
	f := newTestFlow(t, newFlowTransport())
	err := f.SelectMethod(domain.MethodUPI)
	assert.Error(t, err)
	assert.Equal(t, StateSelectingAmount, f.State())

	require.NoError(t, f.SetAmount(100))
	assert.Error(t, f.SelectMethod(domain.PaymentMethod("BARTER")))
	require.NoError(t, f.SelectMethod(domain.MethodUPI))
	assert.Equal(t, StateAwaitingExternal, f.State())
}

func TestPayCardBlocksInvalidCardBeforeNetwork(t *testing.T) {
	transport := newFlowTransport()
	f := newTestFlow(t, transport)
	require.NoError(t, f.SetAmount(250))
	require.NoError(t, f.SelectMethod(domain.MethodCard))

	_, err := f.PayCard(context.Background(), Card{
		Number:      "4111111111111112", // fails Luhn
		Holder:      "Asha Rao",
		ExpiryMonth: "09",
		ExpiryYear:  "30",
		CVV:         "123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCard)
	assert.Equal(t, 0, transport.calls, "invalid card must not reach the wire")
	assert.Equal(t, StateAwaitingExternal, f.State(), "local validation failure is not a flow failure")
}

func TestPayCardSettlesOnSuccess(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/card/process", http.StatusOK, map[string]any{
		"status":     "SUCCESS",
		"paymentId":  "p1",
		"donationId": "d1",
		"amount":     250,
	})
	f := newTestFlow(t, transport)
	var settled *services.VerifyResult
	f.OnSettled = func(res *services.VerifyResult) { settled = res }

	require.NoError(t, f.SetAmount(250))
	require.NoError(t, f.SelectMethod(domain.MethodCard))
	res, err := f.PayCard(context.Background(), Card{
		Number:      "4111 1111 1111 1111",
		Holder:      "Asha Rao",
		ExpiryMonth: "09",
		ExpiryYear:  "30",
		CVV:         "123",
	})
	require.NoError(t, err)
	assert.Equal(t, StateSettled, f.State())
	assert.Equal(t, "d1", res.DonationID)
	require.NotNil(t, settled)
	assert.Equal(t, "p1", settled.PaymentID)

	// Submitted number is normalized.
	var sent map[string]any
	require.NoError(t, json.Unmarshal(transport.lastBody, &sent))
	assert.Equal(t, "4111111111111111", sent["cardNumber"])
}

func TestPayCardBackendDeclineFailsFlow(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/card/process", http.StatusOK, map[string]any{
		"status":  "FAILED",
		"message": "Card declined by issuer",
	})
	f := newTestFlow(t, transport)
	require.NoError(t, f.SetAmount(250))
	require.NoError(t, f.SelectMethod(domain.MethodCard))

	_, err := f.PayCard(context.Background(), Card{
		Number:      "4111111111111111",
		Holder:      "Asha Rao",
		ExpiryMonth: "09",
		ExpiryYear:  "30",
		CVV:         "123",
	})
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Equal(t, StateFailed, f.State())
	assert.Equal(t, "Card declined by issuer", f.Failure())
}

func TestFailureMessagePrefersBackendMessage(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/initiate", http.StatusBadRequest, map[string]any{
		"message": "Campaign is not accepting donations",
	})
	f := newTestFlow(t, transport)
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodStripe))

	_, err := f.StartStripe(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, f.State())
	assert.Equal(t, "Campaign is not accepting donations", f.Failure())
}

func TestStartStripeRequiresSessionOrRedirect(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/initiate", http.StatusOK, map[string]any{"paymentId": "p1"})
	f := newTestFlow(t, transport)
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodStripe))

	_, err := f.StartStripe(context.Background())
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Equal(t, StateFailed, f.State())
}

func TestStartNetBankingRequiresRedirectURL(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/netbanking/initiate", http.StatusOK, map[string]any{"paymentId": "p1"})
	f := newTestFlow(t, transport)
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodNetBanking))

	_, err := f.StartNetBanking(context.Background(), "HDFC")
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Equal(t, StateFailed, f.State())
}

func TestAwaitUPISettlesOnSuccess(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/upi/verify/txn1", http.StatusOK, map[string]any{"status": "PENDING"})
	transport.push("/api/v1/payments/upi/verify/txn1", http.StatusOK, map[string]any{
		"status":     "SUCCESS",
		"donationId": "d9",
	})
	f := newTestFlow(t, transport)
	f.pollInterval = time.Millisecond
	f.pollTimeout = time.Second
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodUPI))

	err := f.AwaitUPI(context.Background(), "txn1")
	require.NoError(t, err)
	assert.Equal(t, StateSettled, f.State())
	assert.Equal(t, "d9", f.Result().DonationID)
	assert.Equal(t, 2, transport.calls)
}

func TestAwaitUPIFailsOnDecline(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/upi/verify/txn2", http.StatusOK, map[string]any{
		"status":  "FAILED",
		"message": "collect request rejected",
	})
	f := newTestFlow(t, transport)
	f.pollInterval = time.Millisecond
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodUPI))

	err := f.AwaitUPI(context.Background(), "txn2")
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Equal(t, StateFailed, f.State())
	assert.Equal(t, "collect request rejected", f.Failure())
}

func TestAwaitUPITimesOutToFailed(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/upi/verify/txn3", http.StatusOK, map[string]any{"status": "PENDING"})
	f := newTestFlow(t, transport)
	f.pollInterval = time.Millisecond
	f.pollTimeout = 20 * time.Millisecond
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodUPI))

	err := f.AwaitUPI(context.Background(), "txn3")
	assert.ErrorIs(t, err, domain.ErrVerifyTimeout)
	assert.Equal(t, StateFailed, f.State())
	assert.Greater(t, transport.calls, 1, "must poll more than once before giving up")
}

func TestAwaitUPIKeepsPollingPastErrors(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/upi/verify/txn4", http.StatusInternalServerError, map[string]any{"message": "boom"})
	transport.push("/api/v1/payments/upi/verify/txn4", http.StatusOK, map[string]any{"status": "SUCCESS"})
	f := newTestFlow(t, transport)
	f.pollInterval = time.Millisecond
	f.pollTimeout = time.Second
	require.NoError(t, f.SetAmount(100))
	require.NoError(t, f.SelectMethod(domain.MethodUPI))

	require.NoError(t, f.AwaitUPI(context.Background(), "txn4"))
	assert.Equal(t, StateSettled, f.State())
	assert.Equal(t, 2, transport.calls)
}

func TestRetryReturnsToMethodSelectionKeepingAmount(t *testing.T) {
	transport := newFlowTransport()
	transport.push("/api/v1/payments/upi/verify/txn5", http.StatusOK, map[string]any{"status": "FAILED"})
	f := newTestFlow(t, transport)
	f.pollInterval = time.Millisecond
	require.NoError(t, f.SetAmount(750))
	require.NoError(t, f.SelectMethod(domain.MethodUPI))
	_ = f.AwaitUPI(context.Background(), "txn5")
	require.Equal(t, StateFailed, f.State())

	require.NoError(t, f.Retry())
	assert.Equal(t, StateSelectingMethod, f.State())
	assert.Equal(t, 750.0, f.Amount())
	assert.Empty(t, f.Failure())
	require.NoError(t, f.SelectMethod(domain.MethodCard))
}

// flowTransport replays queued responses per path, repeating the last one
// once the queue drains.
type flowTransport struct {
	queues   map[string][]flowStub
	lastBody []byte
	calls    int
}

type flowStub struct {
	status int
	body   []byte
}

func newFlowTransport() *flowTransport {
	return &flowTransport{queues: map[string][]flowStub{}}
}

func (f *flowTransport) push(path string, status int, payload any) {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	f.queues[path] = append(f.queues[path], flowStub{status: status, body: body})
}

func (f *flowTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		f.lastBody = body
	}
	queue := f.queues[req.URL.Path]
	if len(queue) == 0 {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`{"message":"not found"}`)),
		}, nil
	}
	stub := queue[0]
	if len(queue) > 1 {
		f.queues[req.URL.Path] = queue[1:]
	}
	return &http.Response{
		StatusCode: stub.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(stub.body)),
	}, nil
}
