package resolve

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
)

// Outcome classifies one fetch.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeClientError
	OutcomeServerError
)

// Classify maps an HTTP status code to an Outcome. Anything that is neither
// 2xx nor 4xx counts as a server error.
func Classify(status int) Outcome {
	switch {
	case status >= 200 && status < 300:
		return OutcomeSuccess
	case status >= 400 && status < 500:
		return OutcomeClientError
	default:
		return OutcomeServerError
	}
}

// Response is what the orchestrator needs from one fetch. Body holds at most
// the limit passed to Fetch.
type Response struct {
	StatusCode int
	Body       []byte
	// Truncated is set when the body was longer than the limit.
	Truncated bool
}

// Fetcher performs one GET of address. A transport failure is returned as
// err; any HTTP response, whatever its status, is returned as Response.
type Fetcher interface {
	Fetch(ctx context.Context, address *url.URL, limit int64) (Response, error)
}

// HTTPFetcher fetches over net/http.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher wraps client. A nil client uses http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{Client: client, UserAgent: "stellartoml/0.1"}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, address *url.URL, limit int64) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address.String(), nil)
	if err != nil {
		return Response{}, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "application/toml, text/plain;q=0.9, */*;q=0.1")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	// One byte past the limit tells a full body from a truncated one.
	readLimit := limit
	if limit < math.MaxInt64 {
		readLimit = limit + 1
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, readLimit))
	if err != nil {
		return Response{}, fmt.Errorf("read body: %w", err)
	}
	out := Response{StatusCode: resp.StatusCode, Body: body}
	if int64(len(body)) > limit {
		out.Body = body[:limit]
		out.Truncated = true
	}
	return out, nil
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, address *url.URL, limit int64) (Response, error)

func (f FetcherFunc) Fetch(ctx context.Context, address *url.URL, limit int64) (Response, error) {
	return f(ctx, address, limit)
}
