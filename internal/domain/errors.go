package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCard      = errors.New("invalid card")
	ErrInvalidUPIID     = errors.New("invalid upi id")
	ErrNoSession        = errors.New("no active session")
	ErrVerifyTimeout    = errors.New("payment verification timed out")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrMethodUnselected = errors.New("payment method not selected")
)
