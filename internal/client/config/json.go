package config

import (
	"encoding/json"
	"os"

	"github.com/example/uikart/internal/flagx"
	"github.com/example/uikart/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify the notice TTL either as a string
// like "3s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL   string          `json:"api_base_url"`
	DatabasePath string          `json:"database_path"`
	Currency     string          `json:"currency"`
	NoticeTTL    *timex.Duration `json:"notice_ttl"`
	StoreName    string          `json:"store_name"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flag. No flag means no JSON layer. Fields absent from the
// file keep their current values.
func parseJSON(cfg *Config) error {
	path := flagx.JSONConfigPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.Currency != "" {
		cfg.Currency = jc.Currency
	}
	if jc.NoticeTTL != nil {
		cfg.NoticeTTL = jc.NoticeTTL.Duration
	}
	if jc.StoreName != "" {
		cfg.StoreName = jc.StoreName
	}
	return nil
}
