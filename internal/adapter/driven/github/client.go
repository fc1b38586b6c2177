// Package github implements the EventSource port using the go-github library.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/google/go-querystring/query"

	"github.com/ericfisherdev/ghactivity/internal/domain/model"
	"github.com/ericfisherdev/ghactivity/internal/domain/port/driven"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com/"

// Compile-time interface satisfaction check.
var _ driven.EventSource = (*Client)(nil)

// Client implements the driven.EventSource port using the go-github library.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

// NewClient creates an unauthenticated GitHub API client for baseURL.
// When waitOnRateLimit is set the transport is wrapped by go-github-ratelimit,
// which sleeps through secondary rate limits instead of failing the request.
func NewClient(baseURL, userAgent string, waitOnRateLimit bool, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Transport: http.DefaultTransport}
	if waitOnRateLimit {
		httpClient = github_ratelimit.NewClient(http.DefaultTransport)
	}

	return NewClientWithHTTPClient(httpClient, baseURL, userAgent, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, userAgent string, logger *slog.Logger) (*Client, error) {
	client := gh.NewClient(httpClient)

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	if userAgent != "" {
		client.UserAgent = userAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{gh: client, logger: logger}, nil
}

// FetchUserEvents retrieves the public events of username, newest first.
// Only the first page is requested unless pages > 1; paging stops early at
// the last page the API advertises.
func (c *Client) FetchUserEvents(ctx context.Context, username string, pages int) ([]model.Event, error) {
	if pages < 1 {
		pages = 1
	}

	opts := &gh.ListOptions{}
	var all []model.Event

	for page := 1; ; page++ {
		req, err := c.newEventsRequest(username, opts)
		if err != nil {
			return nil, err
		}

		// Elements are decoded one by one so a malformed event cannot fail
		// the whole page.
		var raw []json.RawMessage
		resp, err := c.gh.Do(ctx, req, &raw)
		if err != nil {
			return nil, classifyError(username, resp, err)
		}

		c.logRateLimit(resp, username, page, len(raw))

		for _, r := range raw {
			all = append(all, mapEvent(decodeEvent(r)))
		}

		if resp.NextPage == 0 || page >= pages {
			break
		}
		opts.Page = resp.NextPage
	}

	if all == nil {
		all = []model.Event{}
	}

	return all, nil
}

// newEventsRequest builds GET users/{username}/events for one page, encoding
// opts the way go-github does for its own list calls.
func (c *Client) newEventsRequest(username string, opts *gh.ListOptions) (*http.Request, error) {
	u := "users/" + url.PathEscape(username) + "/events"

	qs, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding list options: %w", err)
	}
	if len(qs) > 0 {
		u += "?" + qs.Encode()
	}

	req, err := c.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building events request for %s: %w", username, err)
	}
	return req, nil
}

// classifyError maps a go-github failure onto the domain error taxonomy.
// A response means the server answered; no response means transport failure.
func classifyError(username string, resp *gh.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return &model.ConnectionError{Err: unwrapURLError(err)}
	}

	code := resp.StatusCode
	switch {
	case code == http.StatusNotFound:
		return &model.UserNotFoundError{Username: username}
	case code < 200 || code > 299:
		return &model.HTTPError{StatusCode: code, Reason: reasonPhrase(resp.Status, code)}
	default:
		return fmt.Errorf("decoding events for %s: %w", username, err)
	}
}

// reasonPhrase extracts "Not Found" from a status line like "404 Not Found",
// falling back to the canonical text when the server sent none.
func reasonPhrase(status string, code int) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}

// unwrapURLError drops the "Get <url>:" prefix so messages show the cause.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (c *Client) logRateLimit(resp *gh.Response, username string, page, count int) {
	if resp == nil {
		return
	}

	c.logger.Debug("github api call",
		"endpoint", "users/"+username+"/events",
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		c.logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
