// Package asana fetches completed work items from the Asana REST API.
// With no token configured the client is a no-op and the rest of the
// tool works from the invoice file alone.
package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

const (
	defaultBaseURL = "https://app.asana.com/api/1.0"
	pageLimit      = 100

	// Words longer than this get zero-width break points so task
	// names can wrap in the rendered invoice attachment.
	wordLenLimit = 20
)

// Task is one completed work item.
type Task struct {
	GID         string    `json:"gid"`
	Name        string    `json:"name"`
	CompletedAt time.Time `json:"completed_at"`
	Projects    []string  `json:"projects"`
}

// CompletedDay renders the completion date in the day-first form used
// on the invoice attachment.
func (t Task) CompletedDay() string {
	return t.CompletedAt.Format("02.01.2006")
}

// Description renders the line-item description for this task.
func (t Task) Description() string {
	if len(t.Projects) > 0 {
		return fmt.Sprintf("%s (%s, %s)", t.Name, strings.Join(t.Projects, ", "), t.CompletedDay())
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.CompletedDay())
}

type Client struct {
	token      string
	workspace  string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different API root. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func New(token, workspace string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		workspace:  workspace,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCompleted returns the caller's completed tasks whose completion
// date falls inside [from, to], sorted by completion time. An empty
// token returns an empty list and no error.
func (c *Client) FetchCompleted(ctx context.Context, from, to time.Time) ([]Task, error) {
	if c.token == "" {
		return nil, nil
	}

	projects, err := c.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("workspace", c.workspace)
	query.Set("assignee", "me")
	query.Set("completed_since", from.Format("2006-01-02"))
	query.Set("opt_fields", "name,completed,completed_at,projects")

	raw, err := c.getAll(ctx, "/tasks", query)
	if err != nil {
		return nil, err
	}

	fromDay := truncateDay(from)
	toDay := truncateDay(to)

	var tasks []Task
	for _, rt := range raw {
		if !rt.Completed || rt.CompletedAt == nil {
			continue
		}
		day := truncateDay(*rt.CompletedAt)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		task := Task{
			GID:         rt.GID,
			Name:        breakLongWords(rt.Name, wordLenLimit),
			CompletedAt: *rt.CompletedAt,
		}
		for _, p := range rt.Projects {
			if name, ok := projects[p.GID]; ok {
				task.Projects = append(task.Projects, name)
			}
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CompletedAt.Before(tasks[j].CompletedAt)
	})
	return tasks, nil
}

// projectNames maps project gid to display name for the workspace.
func (c *Client) projectNames(ctx context.Context) (map[string]string, error) {
	query := url.Values{}
	query.Set("workspace", c.workspace)

	raw, err := c.getAll(ctx, "/projects", query)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(raw))
	for _, p := range raw {
		names[p.GID] = p.Name
	}
	return names, nil
}

type rawResource struct {
	GID         string        `json:"gid"`
	Name        string        `json:"name"`
	Completed   bool          `json:"completed"`
	CompletedAt *time.Time    `json:"completed_at"`
	Projects    []rawResource `json:"projects"`
}

type page struct {
	Data     []rawResource `json:"data"`
	NextPage *struct {
		Offset string `json:"offset"`
	} `json:"next_page"`
}

// getAll follows Asana's offset pagination until the last page.
func (c *Client) getAll(ctx context.Context, path string, query url.Values) ([]rawResource, error) {
	query.Set("limit", fmt.Sprint(pageLimit))

	var all []rawResource
	for {
		var p page
		if err := c.get(ctx, path, query, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Data...)
		if p.NextPage == nil || p.NextPage.Offset == "" {
			return all, nil
		}
		query.Set("offset", p.NextPage.Offset)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("asana: build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("asana: %s: %v: %w", path, err, domain.ErrRemote)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("asana: %s returned %s: %w", path, resp.Status, domain.ErrRemote)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("asana: decode %s response: %v: %w", path, err, domain.ErrRemote)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// breakLongWords inserts zero-width spaces into words longer than
// limit runes so HTML output can wrap them.
func breakLongWords(sentence string, limit int) string {
	words := strings.Split(sentence, " ")
	for i, word := range words {
		runes := []rune(word)
		if len(runes) <= limit {
			continue
		}
		var parts []string
		for len(runes) > limit {
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		parts = append(parts, string(runes))
		words[i] = strings.Join(parts, "​")
	}
	return strings.Join(words, " ")
}
