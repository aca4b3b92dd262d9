package config

import (
	"time"

	"github.com/example/uikart/internal/client/notify"
)

// Config holds runtime settings for the uikart CLI.
//
// Fields:
//   - APIBaseURL: base URL of the marketplace backend.
//   - DatabasePath: SQLite file holding the persisted credential.
//   - Currency: currency code sent with payment orders.
//   - NoticeTTL: how long a transient notice stays visible.
//   - StoreName: display name handed to the checkout surface.
type Config struct {
	APIBaseURL   string        `env:"UIKART_API_URL"`
	DatabasePath string        `env:"UIKART_DB_PATH"`
	Currency     string        `env:"UIKART_CURRENCY"`
	NoticeTTL    time.Duration `env:"UIKART_NOTICE_TTL"`
	StoreName    string        `env:"UIKART_STORE_NAME"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000"
	c.DatabasePath = "uikart.db"
	c.Currency = "INR"
	c.NoticeTTL = notify.DefaultTTL
	c.StoreName = "UIKart"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was given), environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
