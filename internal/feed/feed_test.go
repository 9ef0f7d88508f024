package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"catalyster/internal/api"
	"catalyster/internal/services"
)

func newTestFeed(t *testing.T, transport http.RoundTripper, demo bool) *Feed {
	t.Helper()
	client, err := api.NewClient(api.Options{
		BaseURL:    "https://api.example.com/api/v1",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return New(Options{
		Campaigns:    services.New(client).Campaigns,
		ViewerID:     "u1",
		DemoFallback: demo,
	})
}

func pageBody(t *testing.T, titles ...string) []byte {
	t.Helper()
	content := make([]map[string]any, 0, len(titles))
	for i, title := range titles {
		content = append(content, map[string]any{
			"id":        title,
			"title":     title,
			"likeCount": 10 * (i + 1),
		})
	}
	body, err := json.Marshal(map[string]any{
		"content":       content,
		"totalElements": len(titles),
		"totalPages":    1,
		"last":          true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestLoadReplacesPageWholesale(t *testing.T) {
	transport := &funcTransport{}
	transport.respond(http.StatusOK, pageBody(t, "c1", "c2"))
	f := newTestFeed(t, transport, false)

	if err := f.Load(context.Background(), services.ActiveParams{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if items := f.Items(); len(items) != 2 || items[0].ID != "c1" {
		t.Fatalf("unexpected items: %+v", items)
	}

	transport.respond(http.StatusOK, pageBody(t, "c3"))
	if err := f.Load(context.Background(), services.ActiveParams{}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	items := f.Items()
	if len(items) != 1 || items[0].ID != "c3" {
		t.Fatalf("page not replaced wholesale: %+v", items)
	}
}

func TestSlowerEarlierLoadIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	var calls atomic.Int32
	transport := &funcTransport{}
	transport.fn = func(req *http.Request) (*http.Response, error) {
		n := calls.Add(1)
		started <- struct{}{}
		if n == 1 {
			<-release // the first load resolves last
			return jsonResponse(http.StatusOK, pageBody(t, "stale")), nil
		}
		return jsonResponse(http.StatusOK, pageBody(t, "fresh")), nil
	}
	f := newTestFeed(t, transport, false)

	done := make(chan error, 1)
	go func() { done <- f.Load(context.Background(), services.ActiveParams{}) }()
	<-started

	if err := f.Load(context.Background(), services.ActiveParams{}); err != nil {
		t.Fatalf("second load: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first load: %v", err)
	}

	items := f.Items()
	if len(items) != 1 || items[0].ID != "fresh" {
		t.Fatalf("stale response applied: %+v", items)
	}
}

func TestToggleLikeOptimisticWithRevert(t *testing.T) {
	transport := &funcTransport{}
	transport.respond(http.StatusOK, pageBody(t, "c1"))
	f := newTestFeed(t, transport, false)
	if err := f.Load(context.Background(), services.ActiveParams{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := f.Items()[0].LikeCount

	transport.respond(http.StatusInternalServerError, []byte(`{"message":"boom"}`))
	if err := f.ToggleLike(context.Background(), "c1"); err == nil {
		t.Fatal("expected like to fail")
	}
	if got := f.Items()[0].LikeCount; got != before {
		t.Fatalf("count not reverted: got %d want %d", got, before)
	}
	if f.Liked("c1") {
		t.Fatal("liked state not reverted")
	}

	transport.respond(http.StatusNoContent, nil)
	if err := f.ToggleLike(context.Background(), "c1"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if got := f.Items()[0].LikeCount; got != before+1 {
		t.Fatalf("count not bumped: got %d want %d", got, before+1)
	}
	if !f.Liked("c1") {
		t.Fatal("liked state not set")
	}

	if err := f.ToggleLike(context.Background(), "c1"); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if transport.lastMethod != http.MethodDelete {
		t.Fatalf("unlike must use DELETE, got %s", transport.lastMethod)
	}
	if got := f.Items()[0].LikeCount; got != before {
		t.Fatalf("unlike count wrong: got %d want %d", got, before)
	}
}

func TestFetchErrorSurfacesWithoutDemoMode(t *testing.T) {
	transport := &funcTransport{}
	transport.respond(http.StatusInternalServerError, []byte(`{"message":"down"}`))
	f := newTestFeed(t, transport, false)

	if err := f.Load(context.Background(), services.ActiveParams{}); err == nil {
		t.Fatal("expected error to surface")
	}
	if len(f.Items()) != 0 {
		t.Fatalf("no data should be shown: %+v", f.Items())
	}
	if f.Demo() {
		t.Fatal("demo dataset must be opt-in")
	}
}

func TestDemoFallbackWhenOptedIn(t *testing.T) {
	transport := &funcTransport{}
	transport.respond(http.StatusInternalServerError, []byte(`{"message":"down"}`))
	f := newTestFeed(t, transport, true)

	if err := f.Load(context.Background(), services.ActiveParams{}); err != nil {
		t.Fatalf("demo mode must absorb the error: %v", err)
	}
	if !f.Demo() {
		t.Fatal("demo flag not set")
	}
	if len(f.Items()) == 0 {
		t.Fatal("demo dataset empty")
	}

	// A later successful fetch clears the demo data.
	transport.respond(http.StatusOK, pageBody(t, "c1"))
	if err := f.Load(context.Background(), services.ActiveParams{}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if f.Demo() {
		t.Fatal("demo flag should clear on real data")
	}
	if items := f.Items(); len(items) != 1 || items[0].ID != "c1" {
		t.Fatalf("real page not applied: %+v", items)
	}
}

type funcTransport struct {
	mu         sync.Mutex
	fn         func(*http.Request) (*http.Response, error)
	lastMethod string
}

func (f *funcTransport) respond(status int, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fn = func(*http.Request) (*http.Response, error) {
		return jsonResponse(status, body), nil
	}
}

func (f *funcTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	fn := f.fn
	f.lastMethod = req.Method
	f.mu.Unlock()
	if req.Body != nil {
		io.Copy(io.Discard, req.Body)
		req.Body.Close()
	}
	return fn(req)
}

func jsonResponse(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}
