package payment

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"catalyster/internal/domain"
)

var upiID = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)

// ValidUPIID reports whether the value looks like a UPI virtual payment
// address (name@bank).
func ValidUPIID(id string) bool {
	return upiID.MatchString(id)
}

// UPIDeepLink builds an upi://pay link for the given VPA and amount.
func UPIDeepLink(vpa string, amount float64) (string, error) {
	if !ValidUPIID(vpa) {
		return "", domain.ErrInvalidUPIID
	}
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", "Crowdfund")
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tn", "Donation")
	return "upi://pay?" + q.Encode(), nil
}

// AwaitUPI polls the verification endpoint until the transaction settles,
// fails, or the polling window runs out. The window expiring is a terminal
// failure, not a silent stop.
func (f *Flow) AwaitUPI(ctx context.Context, transactionID string) error {
	if err := f.requireExternal(domain.MethodUPI); err != nil {
		return err
	}
	f.state = StateVerifying

	deadline := time.Now().Add(f.pollTimeout)
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.fail("verification cancelled")
			return ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				f.fail("payment verification timed out")
				return domain.ErrVerifyTimeout
			}
			res, err := f.payments.VerifyUPI(ctx, transactionID)
			if err != nil {
				// Transient poll errors do not end the wait; the next
				// tick tries again.
				f.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("upi verify poll failed")
				continue
			}
			switch res.Status {
			case domain.PaymentSuccess:
				f.settle(res)
				return nil
			case domain.PaymentFailed:
				f.fail(failureMessage(nil, firstNonEmpty(res.Message, "payment failed")))
				return domain.ErrPaymentFailed
			default:
				// still PENDING, keep polling
			}
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
