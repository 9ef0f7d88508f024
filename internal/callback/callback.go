// Package callback runs the loopback HTTP listener that hosted payment
// flows redirect back to. It stands in for the success and cancel return
// pages: the success path verifies the payment exactly once and reports the
// outcome; the cancel path verifies nothing.
package callback

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"catalyster/internal/infra"
	"catalyster/internal/services"
)

// Outcome is what the return trip established about the attempt.
type Outcome struct {
	// Cancelled is set when the payer backed out; nothing was verified.
	Cancelled bool
	Result    *services.VerifyResult
	Err       error
}

// Server listens on loopback for the payment provider's redirect.
type Server struct {
	payments *services.PaymentService
	logger   infra.Logger
	srv      *infra.HTTPServer

	verifyOnce sync.Once
	outcomes   chan Outcome
}

// New builds the listener on the given loopback port.
func New(port string, payments *services.PaymentService, logger infra.Logger) *Server {
	s := &Server{
		payments: payments,
		logger:   logger,
		outcomes: make(chan Outcome, 1),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, requestLogger(logger))
	r.Get("/payment/success", s.handleSuccess)
	r.Get("/payment/cancel", s.handleCancel)
	s.srv = infra.NewHTTPServer(port, r)
	return s
}

// Start serves until Shutdown. It blocks; run it in its own goroutine.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.srv.Addr()).Msg("callback: listening for payment return")
	if err := s.srv.Start(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("callback: %w", err)
	}
	return nil
}

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Wait blocks until the redirect arrives, the context ends, or the caller
// gives up.
func (s *Server) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case out := <-s.outcomes:
		return out, nil
	}
}

// handleSuccess verifies the payment named by the redirect exactly once,
// even if the page is reloaded.
func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	paymentID := q.Get("payment_id")
	if paymentID == "" {
		paymentID = q.Get("session_id")
	}
	if paymentID == "" {
		http.Error(w, "missing payment reference", http.StatusBadRequest)
		return
	}

	var verified bool
	s.verifyOnce.Do(func() {
		verified = true
		res, err := s.payments.Verify(r.Context(), paymentID)
		out := Outcome{Result: res, Err: err}
		select {
		case s.outcomes <- out:
		default:
		}
		if err != nil {
			s.logger.Error().Err(err).Str("payment_id", paymentID).Msg("callback: verification failed")
			http.Error(w, "We could not confirm your payment. Check your donation history before retrying.", http.StatusBadGateway)
			return
		}
		s.logger.Info().
			Str("payment_id", paymentID).
			Str("status", string(res.Status)).
			Msg("callback: payment verified")
		fmt.Fprintf(w, "Payment %s. Thank you for your donation. You can close this window.\n", res.Status)
	})
	if !verified {
		fmt.Fprintln(w, "This payment was already processed. You can close this window.")
	}
}

// handleCancel records the abandonment without touching the backend.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.logger.Info().Msg("callback: payment cancelled by payer")
	select {
	case s.outcomes <- Outcome{Cancelled: true}:
	default:
	}
	fmt.Fprintln(w, "Payment cancelled. No money was taken. You can close this window.")
}

// requestLogger logs one line per request in the access-log shape.
func requestLogger(l infra.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			l.Info().Msgf("%s %s %d", r.Method, r.URL.Path, ww.Status())
		})
	}
}
