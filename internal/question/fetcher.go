package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mcqbot/pkg/logx"
)

// DefaultFetchTimeout bounds the question feed call. The feed is a
// spreadsheet-backed web app and can be slow on cold starts.
const DefaultFetchTimeout = 30 * time.Second

// Client fetches one random question from the configured feed.
type Client struct {
	url  string
	http *http.Client
	log  logx.Logger
}

func NewClient(url string, timeout time.Duration, log logx.Logger) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("question feed url is empty")
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

// envelope is the feed's response wrapper.
type envelope struct {
	Success bool      `json:"success"`
	Data    *Question `json:"data"`
	Error   string    `json:"error"`
}

// Fetch performs one blocking GET against the feed. Any transport
// failure, non-2xx status, or success=false envelope is terminal for
// the run; there is no retry.
func (c *Client) Fetch(ctx context.Context) (*Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("question fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("question fetch: http=%d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("question fetch: decode: %w", err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("question feed error: %s", msg)
	}
	if env.Data == nil || strings.TrimSpace(env.Data.Text) == "" {
		return nil, errors.New("question feed returned no question")
	}

	c.log.Info("question fetched", logx.String("id", env.Data.ID.String()))
	return env.Data, nil
}
