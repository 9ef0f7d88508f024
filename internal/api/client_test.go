package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClientInjectsBearerWhenTokenPresent(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/api/v1/campaigns/active", map[string]any{"content": []any{}})

	client, err := NewClient(Options{
		BaseURL:     "https://api.example.com/api/v1",
		HTTPClient:  &http.Client{Transport: transport},
		TokenSource: staticTokens("tok-123"),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out map[string]any
	if err := client.Get(context.Background(), "/campaigns/active", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := transport.lastRequest.Header.Get("Authorization"); got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", got)
	}
	if transport.lastRequest.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func TestClientOmitsBearerWhenNoSession(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/api/v1/campaigns/active", map[string]any{})

	client, err := NewClient(Options{
		BaseURL:     "https://api.example.com/api/v1",
		HTTPClient:  &http.Client{Transport: transport},
		TokenSource: staticTokens(""),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.Get(context.Background(), "/campaigns/active", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := transport.lastRequest.Header.Get("Authorization"); got != "" {
		t.Fatalf("Authorization = %q, want empty", got)
	}
}

func TestClientNormalizesBackendError(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setResponse("/api/v1/donations", http.StatusBadRequest, map[string]any{
		"message": "amount must be positive",
		"code":    "INVALID_AMOUNT",
	})

	client, err := NewClient(Options{
		BaseURL:    "https://api.example.com/api/v1",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Post(context.Background(), "/donations", map[string]any{"amount": -1}, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Kind != KindValidation {
		t.Fatalf("kind = %q, want %q", apiErr.Kind, KindValidation)
	}
	if apiErr.Message != "amount must be positive" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.Code != "INVALID_AMOUNT" {
		t.Fatalf("code = %q", apiErr.Code)
	}
}

func TestClientClassifies401AsAuth(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setResponse("/api/v1/auth/validate", http.StatusUnauthorized, map[string]any{"message": "token expired"})

	client, err := NewClient(Options{
		BaseURL:    "https://api.example.com/api/v1",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Get(context.Background(), "/auth/validate", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestClientReportsTransportFailure(t *testing.T) {
	client, err := NewClient(Options{
		BaseURL:    "https://api.example.com/api/v1",
		HTTPClient: &http.Client{Transport: failingTransport{}},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Get(context.Background(), "/campaigns/active", nil, nil)
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestClientEncodesQueryVerbatim(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/api/v1/campaigns/active", map[string]any{})

	client, err := NewClient(Options{
		BaseURL:    "https://api.example.com/api/v1",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	query := url.Values{}
	query.Set("page", "2")
	query.Set("size", "50")
	query.Set("category", "Technology")
	if err := client.Get(context.Background(), "/campaigns/active", query, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	q := transport.lastRequest.URL.Query()
	if q.Get("page") != "2" || q.Get("size") != "50" || q.Get("category") != "Technology" {
		t.Fatalf("query not passed through: %v", transport.lastRequest.URL.RawQuery)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
}

type captureTransport struct {
	responses   map[string]responseStub
	lastRequest *http.Request
	lastBody    []byte
}

type responseStub struct {
	status int
	body   []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.lastRequest = req
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
	}
	if stub, ok := c.responses[req.URL.Path]; ok {
		return &http.Response{
			StatusCode: stub.status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewReader(stub.body)),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"message":"not found"}`)),
	}, nil
}

func (c *captureTransport) setJSONResponse(path string, payload any) {
	c.setResponse(path, http.StatusOK, payload)
}

func (c *captureTransport) setResponse(path string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{status: status, body: body}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}
