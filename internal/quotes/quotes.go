// Package quotes fetches a short motivational quote for the
// promotional message. Everything here is best-effort: any failure
// means "no quote", never a failed run.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"mcqbot/pkg/logx"
)

const (
	// DefaultMaxLen keeps the quote readable inside the promo message.
	DefaultMaxLen = 150
	// DefaultSampleSize bounds how many feed entries are considered.
	DefaultSampleSize = 5
)

// Quote is one entry from the quote feed.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Format renders the quote as a single line, with the author when known.
func (q Quote) Format() string {
	text := strings.TrimSpace(q.Text)
	author := strings.TrimSpace(q.Author)
	if text == "" {
		return ""
	}
	if author == "" {
		return text
	}
	return fmt.Sprintf("%s - %s", text, author)
}

// Client samples the quote feed for a quote short enough to append to
// the promotional message.
type Client struct {
	url        string
	sampleSize int
	maxLen     int
	http       *http.Client
	log        logx.Logger
}

func NewClient(url string, sampleSize, maxLen int, log logx.Logger) *Client {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Client{
		url:        strings.TrimSpace(url),
		sampleSize: sampleSize,
		maxLen:     maxLen,
		http:       &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

type envelope struct {
	Success bool    `json:"success"`
	Data    []Quote `json:"data"`
}

// Fetch returns a formatted quote no longer than the configured limit,
// or ok=false when the feed is unset, unreachable, or the bounded
// sample has no quote that fits.
func (c *Client) Fetch(ctx context.Context) (string, bool) {
	if c.url == "" {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.log.Debug("quote fetch skipped", logx.Err(err))
		return "", false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("quote fetch failed", logx.Err(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.log.Debug("quote fetch failed", logx.Int("http", resp.StatusCode))
		return "", false
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Debug("quote fetch failed", logx.Err(err))
		return "", false
	}
	if !env.Success {
		return "", false
	}

	sample := env.Data
	if len(sample) > c.sampleSize {
		sample = sample[:c.sampleSize]
	}
	for _, q := range sample {
		s := q.Format()
		// The limit counts characters, not bytes; most quotes on the
		// feed are Gujarati and run three bytes per rune.
		if s == "" || utf8.RuneCountInString(s) > c.maxLen {
			continue
		}
		return s, true
	}
	return "", false
}
