package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
)

const (
	feedAttempts   = 4
	maxRetryWait   = 5 * time.Second
	errorBodyLimit = 4096
)

// HTTPSource loads points from a JSON feed of {"name","lat","lon"} objects.
//
// The feed is revalidated with If-None-Match; a 304 reuses the last decoded
// points. Network errors, 408, 429 and 5xx responses other than 501 are retried
// with exponential backoff, or after Retry-After when the feed sends one.
// The source is safe for concurrent use.
type HTTPSource struct {
	session *http.Client
	url     string
	token   string
	backoff time.Duration

	mu     sync.Mutex
	etag   string
	cached []domain.Point
}

type pointJSON struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

type httpStatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("feed returned %d: %s", e.Code, e.Body)
}

func NewHTTPSource(url, token string, client *http.Client) (*HTTPSource, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("http source: url is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{
		session: client,
		url:     url,
		token:   token,
		backoff: 200 * time.Millisecond,
	}, nil
}

func (h *HTTPSource) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.http.List")(&err)

	h.mu.Lock()
	etag := h.etag
	h.mu.Unlock()

	resp, err := h.fetch(ctx, etag)
	if err != nil {
		return nil, fmt.Errorf("http source: fetch %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.cached != nil {
			return append([]domain.Point(nil), h.cached...), nil
		}
		return nil, errors.New("http source: feed answered 304 with nothing cached")
	}

	points, err := decodeFeed(resp.Body)
	if err != nil {
		return nil, err
	}

	if tag := resp.Header.Get("ETag"); tag != "" {
		h.mu.Lock()
		h.etag = tag
		h.cached = append([]domain.Point(nil), points...)
		h.mu.Unlock()
	}
	return points, nil
}

func decodeFeed(r io.Reader) ([]domain.Point, error) {
	var raw []pointJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("http source: decode response: %w", err)
	}

	points := make([]domain.Point, 0, len(raw))
	for i, p := range raw {
		if p.Lat == nil || p.Lon == nil {
			return nil, fmt.Errorf("http source: item %d (%q): missing coordinates: %w", i, p.Name, domain.ErrInvalidPoint)
		}
		points = append(points, domain.Point{Name: strings.TrimSpace(p.Name), Lat: *p.Lat, Lon: *p.Lon})
	}
	return points, nil
}

func (h *HTTPSource) newRequest(ctx context.Context, etag string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// fetch issues the feed request until it gets a 2xx or 304, a permanent
// failure, or runs out of attempts.
func (h *HTTPSource) fetch(ctx context.Context, etag string) (*http.Response, error) {
	backoff := h.backoff
	var lastErr error

	for attempt := 1; attempt <= feedAttempts; attempt++ {
		req, err := h.newRequest(ctx, etag)
		if err != nil {
			return nil, err
		}

		resp, err := h.session.Do(req)
		if err == nil {
			err = statusError(resp)
			if err == nil {
				return resp, nil
			}
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		wait, ok := retryWait(err, backoff)
		if !ok || attempt == feedAttempts {
			return nil, lastErr
		}
		log.Printf("req_id=%s op=points.http.fetch attempt=%d retry_in=%s err=%v",
			obs.RequestID(ctx), attempt, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

// statusError drains and closes the body of any response that is neither
// 2xx nor 304.
func statusError(resp *http.Response) error {
	if resp.StatusCode < 300 || resp.StatusCode == http.StatusNotModified {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	resp.Body.Close()
	return &httpStatusError{
		Code:       resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// retryWait reports whether err is worth another attempt and how long to wait.
func retryWait(err error, backoff time.Duration) (time.Duration, bool) {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusRequestTimeout, he.Code == http.StatusTooManyRequests:
		case he.Code >= 500 && he.Code != http.StatusNotImplemented:
		default:
			return 0, false
		}
		if he.RetryAfter > 0 {
			return min(he.RetryAfter, maxRetryWait), true
		}
		return backoff, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return backoff, true
	}
	return 0, false
}

// parseRetryAfter accepts the delay-seconds form only.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
