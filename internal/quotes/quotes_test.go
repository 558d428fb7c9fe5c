package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mcqbot/pkg/logx"
)

func serveQuotes(t *testing.T, success bool, data []Quote) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": success, "data": data})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFetchPicksFirstFittingQuote(t *testing.T) {
	url := serveQuotes(t, true, []Quote{
		{Text: strings.Repeat("x", 200), Author: "Nobody"},
		{Text: "Stay curious", Author: "Unknown"},
	})
	c := NewClient(url, 5, 150, logx.Nop())

	got, ok := c.Fetch(context.Background())
	if !ok {
		t.Fatal("expected a quote")
	}
	if got != "Stay curious - Unknown" {
		t.Errorf("quote = %q", got)
	}
}

func TestFetchCountsRunesNotBytes(t *testing.T) {
	// 120 Gujarati characters are ~360 bytes; they fit a 150-char limit.
	fits := strings.Repeat("ગ", 120)
	url := serveQuotes(t, true, []Quote{
		{Text: strings.Repeat("ગ", 200)}, // 200 chars: too long
		{Text: fits},
	})
	c := NewClient(url, 5, 150, logx.Nop())

	got, ok := c.Fetch(context.Background())
	if !ok {
		t.Fatal("a 120-char quote must fit the 150-char limit")
	}
	if got != fits {
		t.Errorf("quote = %q, want the 120-char entry", got)
	}
}

func TestFetchRespectsSampleBound(t *testing.T) {
	long := strings.Repeat("x", 200)
	url := serveQuotes(t, true, []Quote{
		{Text: long}, {Text: long}, {Text: long},
		{Text: "short and sweet"}, // index 3, outside a sample of 3
	})
	c := NewClient(url, 3, 150, logx.Nop())

	if _, ok := c.Fetch(context.Background()); ok {
		t.Fatal("quote outside the sample bound must not be returned")
	}
}

func TestFetchAuthorlessQuote(t *testing.T) {
	url := serveQuotes(t, true, []Quote{{Text: "Keep going"}})
	c := NewClient(url, 0, 0, logx.Nop())

	got, ok := c.Fetch(context.Background())
	if !ok || got != "Keep going" {
		t.Fatalf("got %q, ok=%v", got, ok)
	}
}

func TestFetchFailuresAreSoft(t *testing.T) {
	t.Run("empty url", func(t *testing.T) {
		c := NewClient("", 0, 0, logx.Nop())
		if _, ok := c.Fetch(context.Background()); ok {
			t.Fatal("expected no quote")
		}
	})

	t.Run("application failure", func(t *testing.T) {
		url := serveQuotes(t, false, nil)
		c := NewClient(url, 0, 0, logx.Nop())
		if _, ok := c.Fetch(context.Background()); ok {
			t.Fatal("expected no quote")
		}
	})

	t.Run("http failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)
		c := NewClient(srv.URL, 0, 0, logx.Nop())
		if _, ok := c.Fetch(context.Background()); ok {
			t.Fatal("expected no quote")
		}
	})
}
