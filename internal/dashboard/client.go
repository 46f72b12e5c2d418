package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"skill-dashboard/internal/domain/news"
	"skill-dashboard/internal/domain/skill"
)

const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx answer from the dashboard API. Message is the
// server's {error} text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.Status)
	}
	return fmt.Sprintf("api error: status=%d message=%s", e.Status, e.Message)
}

// Client talks to the skills, news and review endpoints over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// completions can take a while
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

type createSkillRequest struct {
	ToolName string `json:"tool_name"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type updateSkillRequest struct {
	ToolName string `json:"tool_name"`
	Status   string `json:"status"`
}

type reviewResponse struct {
	Review string `json:"review"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	var out []skill.Skill
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	var out skill.Skill
	err := c.do(ctx, http.MethodPost, "/api/skills", createSkillRequest{
		ToolName: s.ToolName,
		Category: s.Category,
		Status:   s.Status,
	}, &out)
	if err != nil {
		return skill.Skill{}, err
	}
	return out, nil
}

func (c *Client) UpdateSkill(ctx context.Context, id int64, toolName string, status string) error {
	return c.do(ctx, http.MethodPut, skillPath(id), updateSkillRequest{ToolName: toolName, Status: status}, nil)
}

func (c *Client) DeleteSkill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, skillPath(id), nil, nil)
}

func (c *Client) LatestNews(ctx context.Context) ([]news.Item, error) {
	var out []news.Item
	if err := c.do(ctx, http.MethodGet, "/api/news", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Review(ctx context.Context) (string, error) {
	var out reviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai-review", nil, &out); err != nil {
		return "", err
	}
	return out.Review, nil
}

func skillPath(id int64) string {
	return "/api/skills/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method string, path string, in any, out any) error {
	if c == nil || c.client == nil {
		return errors.New("nil dashboard client")
	}
	endpoint := c.baseURL + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorResponse
		if json.Unmarshal(rb, &eb) == nil {
			apiErr.Message = strings.TrimSpace(eb.Error)
		}
		if c.logger != nil {
			c.logger.Printf("[Dashboard] request failed | method=%s endpoint=%s status=%d body=%q", method, endpoint, resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
