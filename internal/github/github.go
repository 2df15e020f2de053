// Package github counts the commits a user authored on a given day through
// the GitHub commit search API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.github.com"
	defaultTimeout = 15 * time.Second
	pageSize       = 100
)

// ErrNoCredentials is returned when the username or token is missing.
var ErrNoCredentials = errors.New("github username and token are required")

// Commit is one search hit.
type Commit struct {
	SHA     string
	Message string
	Time    time.Time
	URL     string
}

type Client struct {
	BaseURL  string
	Username string
	Token    string
	HTTP     *http.Client
}

func NewClient(username, token string) *Client {
	return &Client{
		BaseURL:  DefaultBaseURL,
		Username: strings.TrimSpace(username),
		Token:    strings.TrimSpace(token),
		HTTP:     &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) Configured() bool {
	return c.Username != "" && c.Token != ""
}

type searchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
		Commit  struct {
			Message   string `json:"message"`
			Committer struct {
				Date string `json:"date"`
			} `json:"committer"`
		} `json:"commit"`
	} `json:"items"`
}

func (c *Client) search(ctx context.Context, day time.Time) (*searchResponse, error) {
	if !c.Configured() {
		return nil, ErrNoCredentials
	}
	q := url.Values{}
	q.Set("q", fmt.Sprintf("author:%s committer-date:%s", c.Username, day.Format("2006-01-02")))
	q.Set("per_page", fmt.Sprint(pageSize))
	q.Set("sort", "committer-date")
	q.Set("order", "asc")

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(base, "/")+"/search/commits?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search commits: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search commits: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}

// Commits lists the first page of commits for day, oldest first.
func (c *Client) Commits(ctx context.Context, day time.Time) ([]Commit, error) {
	out, err := c.search(ctx, day)
	if err != nil {
		return nil, err
	}
	commits := make([]Commit, 0, len(out.Items))
	for _, it := range out.Items {
		ts, _ := time.Parse(time.RFC3339, it.Commit.Committer.Date)
		commits = append(commits, Commit{
			SHA:     it.SHA,
			Message: firstLine(it.Commit.Message),
			Time:    ts,
			URL:     it.HTMLURL,
		})
	}
	return commits, nil
}

// Count returns the number of commits for day.
func (c *Client) Count(ctx context.Context, day time.Time) (int, error) {
	out, err := c.search(ctx, day)
	if err != nil {
		return 0, err
	}
	if out.TotalCount > 0 {
		return out.TotalCount, nil
	}
	return len(out.Items), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
