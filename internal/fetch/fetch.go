// Package fetch is the one concrete realization of the core's external
// "fetch(url) -> byte stream" capability: a net/http GET that returns the
// response body as an io.ReadCloser the token stream can read from
// directly, with Basic Auth attached when credentials are supplied.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// Fetcher issues authenticated GET requests against OData service URLs.
type Fetcher struct {
	Client *http.Client
	// Limiter, when non-nil, throttles outgoing requests — most useful
	// against a paginated entity-set read, which otherwise issues one
	// fetch per page back to back with no pacing at all.
	Limiter *rate.Limiter
}

// StatusError reports a non-2xx/3xx HTTP response, carrying the status
// code so callers can classify it (auth failure, not found, server
// error, ...) without parsing Error's message.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: %s: unexpected status %s", e.URL, e.Status)
}

// New returns a Fetcher using http.DefaultClient's transport settings but
// its own *http.Client value, so callers can tune timeouts independently
// of anything else in the process using the default client.
func New() *Fetcher {
	return &Fetcher{Client: &http.Client{}}
}

// Fetch issues a GET against url, attaching HTTP Basic authentication
// when both user and pass are non-nil. The sampled original implementation
// accepted credentials on every query struct but never attached them to
// the outgoing request; this closes that gap.
func (f *Fetcher) Fetch(ctx context.Context, url string, user, pass *string) (io.ReadCloser, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("fetch: waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	if user != nil && pass != nil {
		req.SetBasicAuth(*user, *pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", url, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}
