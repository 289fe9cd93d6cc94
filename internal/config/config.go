// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"time"
)

// Store backends.
const (
	BackendBaserow = "baserow"
	BackendMemory  = "memory"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// StoreBackend selects where rows are read from: baserow or memory.
	StoreBackend string `koanf:"store_backend" validate:"required,oneof=baserow memory"`
	// BaserowAPIURL is the base URL of the Baserow instance.
	BaserowAPIURL string `koanf:"baserow_api_url" validate:"required_if=StoreBackend baserow"`
	// BaserowToken is the database token sent as "Authorization: Token ...".
	BaserowToken string `koanf:"baserow_token" validate:"required_if=StoreBackend baserow"`
	// BaserowTableID identifies the Evaluations table.
	BaserowTableID string `koanf:"baserow_table_id" validate:"required"`
	// BaserowSelfTableID identifies the SelfAssessments table.
	BaserowSelfTableID string `koanf:"baserow_self_table_id" validate:"required,nefield=BaserowTableID"`
	// BaserowPageSize is the page size requested from the store.
	BaserowPageSize int `koanf:"baserow_page_size" validate:"min=1,max=200"`
	// BaserowRPS and BaserowBurst pace page requests.
	BaserowRPS   float64 `koanf:"baserow_rps" validate:"gt=0"`
	BaserowBurst int     `koanf:"baserow_burst" validate:"min=1"`
	// HTTPTimeoutMS bounds a single row store request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms" validate:"min=1"`

	// CollationLocale is the BCP 47 tag used to order player names.
	CollationLocale string `koanf:"collation_locale" validate:"required"`
	// DismissiveTokens are notes that are never surfaced as comments.
	DismissiveTokens []string `koanf:"dismissive_tokens"`
	// UnknownAuthor attributes comments whose submission has no self-assessment.
	UnknownAuthor string `koanf:"unknown_author"`
	// SubmitBatchSize bounds concurrent inserts on the submission pathway.
	SubmitBatchSize int `koanf:"submit_batch_size" validate:"min=1,max=200"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		StoreBackend:       BackendMemory,
		BaserowTableID:     "responses",
		BaserowSelfTableID: "self_assessments",
		BaserowPageSize:    200,
		BaserowRPS:         10,
		BaserowBurst:       5,
		HTTPTimeoutMS:      15_000,
		CollationLocale:    "bg",
		DismissiveTokens:   []string{"не", "no"},
		UnknownAuthor:      "—",
		SubmitBatchSize:    25,
	}
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}
