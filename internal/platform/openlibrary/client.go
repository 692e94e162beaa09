package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://openlibrary.org"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

type Option func(*Client)

// WithBaseURL points the client at another Open Library compatible host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithBackoff sets the delay before the first retry; later retries double it.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func NewClient(userAgent string, rps int, maxRetries int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 1
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:  userAgent,
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchDoc is one hit of search.json.
type SearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	ISBN             []string `json:"isbn"`
	FirstPublishYear int      `json:"first_publish_year"`
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []SearchDoc `json:"docs"`
}

type Publisher struct {
	Name string `json:"name"`
}

type AuthorRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// BookDetails matches api/books?jscmd=data
type BookDetails struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Publishers  []Publisher `json:"publishers"`
	PublishDate string      `json:"publish_date"`
	Cover       struct {
		Large string `json:"large"`
	} `json:"cover"`
	Authors       []AuthorRef `json:"authors"`
	NumberOfPages int         `json:"number_of_pages"`
	Notes         string      `json:"notes"`
}

func (c *Client) SearchBooks(ctx context.Context, subject string, limit int) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search.json?q=subject:%s&fields=key,title,author_name,isbn,first_publish_year&limit=%d",
		c.baseURL, url.QueryEscape(subject), limit)

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBooksByISBN returns details keyed by "ISBN:<isbn>". ISBNs Open Library
// does not know are absent from the map.
func (c *Client) GetBooksByISBN(ctx context.Context, isbns []string) (map[string]BookDetails, error) {
	if len(isbns) == 0 {
		return nil, nil
	}

	bibkeys := make([]string, len(isbns))
	for i, isbn := range isbns {
		bibkeys[i] = "ISBN:" + isbn
	}

	u := fmt.Sprintf("%s/api/books?bibkeys=%s&jscmd=data&format=json",
		c.baseURL, url.QueryEscape(strings.Join(bibkeys, ",")))

	var res map[string]BookDetails
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one attempt and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, url string, target interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, err
	}

	return false, json.NewDecoder(resp.Body).Decode(target)
}
