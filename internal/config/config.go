package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// DeepgramConfig covers both transcription and audio sentiment calls.
type DeepgramConfig struct {
	APIKey     string `koanf:"apikey"`
	BaseURL    string `koanf:"baseurl"`
	TimeoutSec int    `koanf:"timeoutsec"`
}

func (c DeepgramConfig) IsConfigured() bool {
	return c.APIKey != ""
}

func (c DeepgramConfig) ListenURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/listen"
}

func (c DeepgramConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

type TrelloConfig struct {
	APIKey     string `koanf:"apikey"`
	Token      string `koanf:"token"`
	ListID     string `koanf:"listid"`
	ListIDDone string `koanf:"listiddone"`
	BaseURL    string `koanf:"baseurl"`
	TimeoutSec int    `koanf:"timeoutsec"`
}

func (c TrelloConfig) IsConfigured() bool {
	return c.APIKey != "" && c.Token != "" && c.ListID != ""
}

func (c TrelloConfig) CardsURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/cards"
}

func (c TrelloConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

type AppConfig struct {
	Host  string `koanf:"host"`
	Port  int    `koanf:"port"`
	Title string `koanf:"title"`
}

// Config represents the application configuration
type Config struct {
	App      AppConfig      `koanf:"app"`
	Deepgram DeepgramConfig `koanf:"deepgram"`
	Trello   TrelloConfig   `koanf:"trello"`
}

// Load builds the configuration from defaults overlaid with environment
// variables prefixed ASSISTLINK_ (e.g. ASSISTLINK_DEEPGRAM_APIKEY maps to
// deepgram.apikey).
func Load() (*Config, error) {
	var k = koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"app.host":            "0.0.0.0",
		"app.port":            8001,
		"app.title":           "Assist Link API",
		"deepgram.baseurl":    "https://api.deepgram.com/v1",
		"deepgram.timeoutsec": 30,
		"trello.baseurl":      "https://api.trello.com/1",
		"trello.timeoutsec":   15,
	}, "."), nil)

	k.Load(env.Provider("ASSISTLINK_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ASSISTLINK_")
		return strings.Replace(strings.ToLower(s), "_", ".", -1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
