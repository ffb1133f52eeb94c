package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanq16/docgrab/internal/utils"
)

// Fetcher issues GET requests through a shared client, retrying failed
// attempts per its RetryPolicy.
type Fetcher struct {
	client utils.HTTPDoer
	policy RetryPolicy
	log    zerolog.Logger
}

func New(client utils.HTTPDoer, policy RetryPolicy, logger zerolog.Logger) *Fetcher {
	return &Fetcher{client: client, policy: policy, log: logger}
}

// Fetch GETs the URL and returns the first 2xx response without consuming
// remaining attempts. Connection errors and non-2xx statuses each burn one
// attempt; exhausting the budget returns a *utils.NetworkError. The caller
// owns the returned body.
func (f *Fetcher) Fetch(url string) (*http.Response, error) {
	maxAttempts := f.policy.MaxAttempts()
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			if delay := f.policy.Delay(attempt); delay > 0 {
				time.Sleep(delay)
			}
			f.log.Warn().Str("url", url).Msgf("Attempt %d/%d failed, retrying", attempt, maxAttempts)
		}
		resp, err := f.attempt(url)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, nil
	}
	return nil, &utils.NetworkError{URL: url, Attempts: maxAttempts, Err: lastErr}
}

func (f *Fetcher) attempt(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GET request: %v", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing GET request: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}
