// apps/go-term/internal/daily/daily.go
//
// Remote daily solution provider.
// Responsibilities:
//   - Build the per-day solution URL (<base>/YYYY-MM-DD.json, local date).
//   - Fetch and decode {"solution": "..."} with bounded exponential retry.
//
// Notes:
//   - Transport errors and 5xx responses are retried; 4xx and decode errors
//     are permanent.
//   - The returned word is lowercase and validated to five letters a–z.
package daily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// DefaultBaseURL serves one JSON document per day.
const DefaultBaseURL = "https://www.nytimes.com/svc/wordle/v2"

var (
	ErrFetch  = errors.New("daily: failed to retrieve the remote solution")
	ErrDecode = errors.New("daily: failed to parse the remote solution")
)

// DateKey returns YYYY-MM-DD in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Provider supplies the solution for a given day.
type Provider interface {
	Solution(ctx context.Context, day time.Time) (string, error)
}

// HTTPProvider fetches the daily solution over HTTP.
type HTTPProvider struct {
	baseURL  string
	client   *http.Client
	retries  uint
	interval time.Duration // first retry delay
}

// NewHTTPProvider returns a provider for baseURL. timeout bounds each request
// and retries is the number of attempts after the first.
func NewHTTPProvider(baseURL string, timeout time.Duration, retries uint) *HTTPProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		retries:  retries,
		interval: 250 * time.Millisecond,
	}
}

type solutionResponse struct {
	Solution string `json:"solution"`
}

// URL returns the document URL for day.
func (p *HTTPProvider) URL(day time.Time) string {
	return p.baseURL + "/" + DateKey(day) + ".json"
}

// Solution fetches the solution for day.
func (p *HTTPProvider) Solution(ctx context.Context, day time.Time) (string, error) {
	url := p.URL(day)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.interval

	word, err := backoff.Retry(ctx, func() (string, error) { return p.fetch(ctx, url) },
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Debug().Err(err).Dur("retryIn", next).Str("url", url).Msg("solution fetch failed")
		}),
	)
	if err != nil {
		if errors.Is(err, ErrFetch) || errors.Is(err, ErrDecode) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return word, nil
}

// fetch performs a single request.
func (p *HTTPProvider) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("%w: %v", ErrFetch, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", backoff.Permanent(fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode))
	}

	var body solutionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return "", backoff.Permanent(fmt.Errorf("%w: %v", ErrDecode, err))
	}
	w := strings.ToLower(strings.TrimSpace(body.Solution))
	if !words.Valid(w) {
		return "", backoff.Permanent(fmt.Errorf("%w: unexpected solution %q", ErrDecode, body.Solution))
	}
	return w, nil
}
