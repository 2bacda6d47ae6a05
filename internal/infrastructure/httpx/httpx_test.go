package httpx

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClientRT(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Timeout: 2 * time.Second}
}

func htmlResp(r *http.Request, code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header), Request: r}
}

func TestGetHTML_Retry500Then200(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return htmlResp(r, 500, "err"), nil
		}
		return htmlResp(r, 200, `<html><body><p class="v">42</p></body></html>`), nil
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c := &Client{HTTP: rt}
	doc, err := c.GetHTML(ctx, "http://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Find("p.v").Text(); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
	if calls < 2 {
		t.Fatalf("expected at least 2 calls, got %d", calls)
	}
}

type tempTimeoutErr struct{}

func (tempTimeoutErr) Error() string   { return "timeout" }
func (tempTimeoutErr) Timeout() bool   { return true }
func (tempTimeoutErr) Temporary() bool { return true }

func TestGetHTML_RetryNetTimeoutThen200(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			var ne net.Error = tempTimeoutErr{}
			return nil, ne
		}
		return htmlResp(r, 200, "<p>ok</p>"), nil
	}))
	c := &Client{HTTP: rt}
	if _, err := c.GetHTML(context.Background(), "http://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetHTML_NoRetryOn404(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return htmlResp(r, 404, "missing"), nil
	}))
	c := &Client{HTTP: rt}
	_, err := c.GetHTML(context.Background(), "http://example.com")
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestGetHTML_SetsUserAgent(t *testing.T) {
	var ua string
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		ua = r.Header.Get("User-Agent")
		return htmlResp(r, 200, "<p>ok</p>"), nil
	}))
	c := &Client{HTTP: rt, UserAgent: "Mozilla/5.0"}
	if _, err := c.GetHTML(context.Background(), "http://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua != "Mozilla/5.0" {
		t.Fatalf("expected browser user agent, got %q", ua)
	}
}

func TestGetHTML_GivesUpWithinBudget(t *testing.T) {
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		return htmlResp(r, 503, "busy"), nil
	}))
	c := &Client{HTTP: rt, MaxElapsed: 300 * time.Millisecond}
	start := time.Now()
	_, err := c.GetHTML(context.Background(), "http://example.com")
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("retry loop exceeded its budget")
	}
}
