package jd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"
)

var ErrInvalidURL = errors.New("job description url must be an absolute http(s) url")

// Fetcher downloads job posting pages.
type Fetcher struct {
	HTTP     *http.Client
	MaxBytes int64
}

func NewFetcher() *Fetcher {
	return &Fetcher{HTTP: &http.Client{Timeout: 20 * time.Second}, MaxBytes: 2 << 20}
}

// Fetch downloads rawURL and extracts the posting.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Posting, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Posting{}, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Posting{}, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; resume-builder/1.0)")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return Posting{}, fmt.Errorf("fetch job description: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Posting{}, fmt.Errorf("fetch job description: upstream returned %d", resp.StatusCode)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = 2 << 20
	}
	body, err := charset.NewReader(io.LimitReader(resp.Body, limit), resp.Header.Get("Content-Type"))
	if err != nil {
		return Posting{}, fmt.Errorf("decode job description: %w", err)
	}
	return Extract(body)
}
