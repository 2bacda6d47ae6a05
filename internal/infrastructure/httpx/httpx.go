package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// Client fetches HTML pages. Transport errors and 5xx answers are retried with
// exponential backoff inside MaxElapsed; any other non-200 answer fails at once.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	Timeout    time.Duration
	MaxElapsed time.Duration
}

func (c *Client) GetHTML(ctx context.Context, url string) (*goquery.Document, error) {
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second
	if c.MaxElapsed > 0 {
		exp.MaxElapsedTime = c.MaxElapsed
	}

	var doc *goquery.Document
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		d, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("parse html: %w", err))
		}
		doc = d
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(exp, ctx)); err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrFetch, url, err)
	}
	return doc, nil
}
