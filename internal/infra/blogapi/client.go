// Package blogapi is the HTTP client for the CMS content endpoints the
// pipeline consumes: the paged post list, single-post lookup, and the
// recommendations query. All endpoints are GET + JSON and safe to retry.
package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/faults"
)

// Config holds CMS API settings.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client talks to the CMS API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a CMS API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// listResponse matches the CMS list payload.
type listResponse struct {
	Posts []domain.Post `json:"posts"`
	Total int           `json:"total"`
}

// ListPosts fetches one page of the post list.
func (c *Client) ListPosts(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("limit", strconv.Itoa(req.PageSize))
	for k, v := range req.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}

	var decoded listResponse
	if err := c.getJSON(ctx, "/api/blog/posts", q, &decoded); err != nil {
		return domain.PageResult{}, err
	}

	return domain.PageResult{
		Items:      decoded.Posts,
		TotalCount: decoded.Total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

// GetPost fetches a single post by id.
func (c *Client) GetPost(ctx context.Context, id string) (domain.Post, error) {
	var post domain.Post
	if err := c.getJSON(ctx, "/api/blog/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Recommendations fetches posts related to the given recently-viewed ids.
func (c *Client) Recommendations(ctx context.Context, basedOn []string, limit int) ([]domain.Post, error) {
	q := url.Values{}
	if len(basedOn) > 0 {
		q.Set("based_on", strings.Join(basedOn, ","))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var decoded listResponse
	if err := c.getJSON(ctx, "/api/blog/recommendations", q, &decoded); err != nil {
		return nil, err
	}
	return decoded.Posts, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Bounded read: the body goes to diagnostic logs only.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &faults.StatusError{
			Status:  resp.StatusCode,
			Context: path,
			Body:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
