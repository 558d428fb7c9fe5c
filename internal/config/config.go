package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mcqbot/internal/gate"
	"mcqbot/pkg/logx"
)

// Config holds everything the bot needs for a run. The three secrets
// (feed URL, bot token, channel id) come from the environment; the YAML
// file carries the non-secret knobs and is optional.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Source   SourceConfig   `json:"source"`
	Window   WindowConfig   `json:"window"`
	Schedule ScheduleConfig `json:"schedule,omitempty"`
	Promo    PromoConfig    `json:"promo,omitempty"`
	Logging  logx.Config    `json:"logging"`
}

type TelegramConfig struct {
	Token     string `json:"token,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
	// RatePerSec caps outbound sends. Default 1.
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

type SourceConfig struct {
	URL string `json:"url,omitempty"`
	// Timeout is a Go duration string (e.g. "30s").
	Timeout string `json:"timeout,omitempty"`
}

// WindowConfig is the local-time posting window. Hours are half-open:
// [start, end).
type WindowConfig struct {
	Timezone  string `json:"timezone"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// ScheduleConfig controls serve mode. Spec is a standard 5-field cron
// expression evaluated in the window's timezone.
type ScheduleConfig struct {
	Spec string `json:"spec,omitempty"`
}

type PromoConfig struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text,omitempty"`
	// QuoteFeed is optional; empty means the promo carries no quote.
	QuoteFeed       string `json:"quote_feed,omitempty"`
	QuoteSampleSize int    `json:"quote_sample_size,omitempty"`
	QuoteMaxLen     int    `json:"quote_max_len,omitempty"`
}

// Environment variable names. These match the deployment that triggers
// the bot, so they are part of the external contract.
const (
	EnvSourceURL = "APPS_SCRIPT_URL"
	EnvBotToken  = "TELEGRAM_BOT_TOKEN"
	EnvChannelID = "TELEGRAM_CHANNEL_ID"
)

// Default returns the built-in configuration: IST waking-hours window,
// hourly schedule, promo on, console logging.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Timezone:  gate.DefaultTimezone,
			StartHour: gate.DefaultStartHour,
			EndHour:   gate.DefaultEndHour,
		},
		Schedule: ScheduleConfig{Spec: "0 * * * *"},
		Promo:    PromoConfig{Enabled: true},
		Logging:  logx.Config{Level: "info", Console: true},
	}
}

// Load reads the optional YAML file on top of the defaults and then
// applies the environment. Unknown keys are rejected so typos fail
// loudly instead of being silently ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		jb, err := coerceToJSONBytes(b)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		dec := json.NewDecoder(bytes.NewReader(jb))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		// reject trailing tokens (e.g. concatenated documents)
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return nil, fmt.Errorf("config %s: trailing data", path)
			}
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays the environment onto the config. Environment
// values win over file values.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvSourceURL)); v != "" {
		c.Source.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBotToken)); v != "" {
		c.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvChannelID)); v != "" {
		c.Telegram.ChannelID = v
	}
}

// Validate checks the parts that would otherwise fail halfway through a
// run. Missing secrets name their environment variable.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Source.URL) == "" {
		missing = append(missing, EnvSourceURL)
	}
	if strings.TrimSpace(c.Telegram.Token) == "" {
		missing = append(missing, EnvBotToken)
	}
	if strings.TrimSpace(c.Telegram.ChannelID) == "" {
		missing = append(missing, EnvChannelID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	if _, err := ParseDurationField("source.timeout", c.Source.Timeout); err != nil {
		return err
	}
	if c.Window.StartHour < 0 || c.Window.StartHour > 23 ||
		c.Window.EndHour < 1 || c.Window.EndHour > 24 ||
		c.Window.StartHour >= c.Window.EndHour {
		return fmt.Errorf("window: invalid hours %d-%d", c.Window.StartHour, c.Window.EndHour)
	}
	if strings.TrimSpace(c.Schedule.Spec) == "" {
		return errors.New("schedule.spec is empty")
	}
	return nil
}

// FetchTimeout returns the parsed source timeout, or def when unset.
func (c *Config) FetchTimeout(def time.Duration) time.Duration {
	d, err := ParseDurationField("source.timeout", c.Source.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
