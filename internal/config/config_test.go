package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvSourceURL, "https://example.com/feed")
	t.Setenv(EnvBotToken, "123:abc")
	t.Setenv(EnvChannelID, "@quizchannel")
}

func TestLoadEnvOnly(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.URL != "https://example.com/feed" {
		t.Errorf("source url = %q", cfg.Source.URL)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.ChannelID != "@quizchannel" {
		t.Errorf("telegram config = %+v", cfg.Telegram)
	}
	// defaults
	if cfg.Window.Timezone != "Asia/Kolkata" || cfg.Window.StartHour != 11 || cfg.Window.EndHour != 22 {
		t.Errorf("window defaults = %+v", cfg.Window)
	}
	if cfg.Schedule.Spec != "0 * * * *" {
		t.Errorf("schedule default = %q", cfg.Schedule.Spec)
	}
	if !cfg.Promo.Enabled {
		t.Error("promo should default to enabled")
	}
}

func TestLoadMissingEnvNamesVariables(t *testing.T) {
	t.Setenv(EnvSourceURL, "https://example.com/feed")
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvChannelID, "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for missing env")
	}
	for _, name := range []string{EnvBotToken, EnvChannelID} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should name %s, got %v", name, err)
		}
	}
	if strings.Contains(err.Error(), EnvSourceURL) {
		t.Errorf("error should not name the variable that is set, got %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcqbot.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAMLOverrides(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, `
window:
  timezone: Asia/Kolkata
  start_hour: 9
  end_hour: 21
schedule:
  spec: "30 * * * *"
source:
  timeout: 45s
promo:
  enabled: true
  quote_feed: https://example.com/quotes
  quote_sample_size: 3
logging:
  level: debug
  console: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.StartHour != 9 || cfg.Window.EndHour != 21 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Schedule.Spec != "30 * * * *" {
		t.Errorf("spec = %q", cfg.Schedule.Spec)
	}
	if got := cfg.FetchTimeout(30 * time.Second); got != 45*time.Second {
		t.Errorf("fetch timeout = %v", got)
	}
	if cfg.Promo.QuoteFeed != "https://example.com/quotes" || cfg.Promo.QuoteSampleSize != 3 {
		t.Errorf("promo = %+v", cfg.Promo)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, "windw:\n  start_hour: 9\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, "source:\n  timeout: soon\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, "window:\n  timezone: Asia/Kolkata\n  start_hour: 22\n  end_hour: 11\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for inverted window")
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, "telegram:\n  token: file-token\n  channel_id: \"@filechannel\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.ChannelID != "@quizchannel" {
		t.Errorf("environment should win over the file, got %+v", cfg.Telegram)
	}
}

func TestFetchTimeoutDefault(t *testing.T) {
	cfg := Default()
	if got := cfg.FetchTimeout(30 * time.Second); got != 30*time.Second {
		t.Errorf("unset timeout should use default, got %v", got)
	}
}
