package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"barber-prices/models"

	"gopkg.in/yaml.v3"
)

// Grammar families understood by the parser
const (
	GrammarSentence = "sentence"
	GrammarLineItem = "line_item"
)

// Fetch engines
const (
	EngineColly = "colly"
	EngineRod   = "rod"
)

// Config is the full application configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Filters  FilterConfig   `yaml:"filters"`
	Sources  []SourceConfig `yaml:"sources"`
	Telegram TelegramConfig `yaml:"telegram"`
	Sheets   SheetsConfig   `yaml:"sheets"`
}

// LogConfig selects the logger mode ("development" or "production")
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// FetchConfig controls how pages are downloaded
type FetchConfig struct {
	Engine    string        `yaml:"engine"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Rate      float64       `yaml:"rate"` // requests per second per fetch engine, 0 disables
	Burst     int           `yaml:"burst"`
}

// PipelineConfig controls the source fan-out
type PipelineConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// FilterConfig drops implausible prices before aggregation. Zero bounds are ignored.
type FilterConfig struct {
	MinPrice int `yaml:"min_price"`
	MaxPrice int `yaml:"max_price"`
}

// SourceConfig describes one price page and the grammar used to read it
type SourceConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Grammar string `yaml:"grammar"`
	Engine  string `yaml:"engine,omitempty"`

	// sentence grammar
	Service string `yaml:"service,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`

	// line item grammar
	Items     []ItemConfig      `yaml:"items,omitempty"`
	Inference []InferenceConfig `yaml:"inference,omitempty"`
}

// ItemConfig maps a service label on the page to a category
type ItemConfig struct {
	Service string `yaml:"service"`
	Label   string `yaml:"label"`
	Layout  string `yaml:"layout,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// InferenceConfig derives Missing = combo - Known from a combined service line
type InferenceConfig struct {
	Label   string `yaml:"label"`
	Layout  string `yaml:"layout,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
	Known   string `yaml:"known"`
	Missing string `yaml:"missing"`
}

// TelegramConfig configures the bot front end
type TelegramConfig struct {
	Token        string  `yaml:"token"`
	AllowedUsers []int64 `yaml:"allowed_users"`
}

// SheetsConfig configures the spreadsheet export
type SheetsConfig struct {
	SpreadsheetURL  string `yaml:"spreadsheet_url"`
	SheetName       string `yaml:"sheet_name"`
	CredentialsPath string `yaml:"credentials"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration on top of the defaults and validates it
func Parse(data []byte) (*Config, error) {
	cfg := GetDefaultConfig()
	defaultSources := cfg.Sources
	cfg.Sources = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetDefaultConfig returns a default configuration with the built-in sources
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Log.Mode = "development"
	cfg.Fetch.Engine = EngineColly
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	cfg.Fetch.Rate = 2
	cfg.Fetch.Burst = 2
	cfg.Pipeline.Concurrency = 4
	cfg.Sheets.SheetName = "Cene"
	cfg.Sources = DefaultSources()
	return cfg
}

// ApplyEnv overrides secrets and the log mode from the environment
func (c *Config) ApplyEnv() {
	if token := os.Getenv("BARBER_TELEGRAM_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		c.Log.Mode = mode
	}
}

// Validate checks the source registry and limits
func (c *Config) Validate() error {
	var errs []error

	switch c.Fetch.Engine {
	case EngineColly, EngineRod:
	default:
		errs = append(errs, fmt.Errorf("fetch.engine: unknown engine %q", c.Fetch.Engine))
	}
	if c.Pipeline.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("pipeline.concurrency must be at least 1"))
	}
	if c.Filters.MaxPrice > 0 && c.Filters.MinPrice > c.Filters.MaxPrice {
		errs = append(errs, fmt.Errorf("filters: min_price %d exceeds max_price %d", c.Filters.MinPrice, c.Filters.MaxPrice))
	}
	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("no sources configured"))
	}

	seen := make(map[string]bool)
	for i, src := range c.Sources {
		if strings.TrimSpace(src.Name) == "" {
			errs = append(errs, fmt.Errorf("sources[%d]: name is required", i))
			continue
		}
		if seen[src.Name] {
			errs = append(errs, fmt.Errorf("sources[%d]: duplicate name %q", i, src.Name))
		}
		seen[src.Name] = true
		if err := src.validate(); err != nil {
			errs = append(errs, fmt.Errorf("source %q: %w", src.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (s SourceConfig) validate() error {
	if s.URL == "" {
		return errors.New("url is required")
	}
	switch s.Engine {
	case "", EngineColly, EngineRod:
	default:
		return fmt.Errorf("unknown engine %q", s.Engine)
	}

	switch s.Grammar {
	case GrammarSentence:
		if !models.Service(s.Service).IsKnown() {
			return fmt.Errorf("unknown service %q", s.Service)
		}
	case GrammarLineItem:
		if len(s.Items) == 0 {
			return errors.New("line_item grammar needs at least one item")
		}
		for _, item := range s.Items {
			if !models.Service(item.Service).IsKnown() {
				return fmt.Errorf("item %q: unknown service %q", item.Label, item.Service)
			}
			if item.Label == "" && item.Pattern == "" {
				return fmt.Errorf("item for %s needs a label or pattern", item.Service)
			}
		}
		for _, inf := range s.Inference {
			if !models.Service(inf.Known).IsKnown() || !models.Service(inf.Missing).IsKnown() {
				return fmt.Errorf("inference %q: unknown service", inf.Label)
			}
			if inf.Known == inf.Missing {
				return fmt.Errorf("inference %q: known and missing are both %s", inf.Label, inf.Known)
			}
		}
	default:
		return fmt.Errorf("unknown grammar %q", s.Grammar)
	}
	return nil
}

// EngineFor returns the fetch engine a source should use
func (c *Config) EngineFor(src SourceConfig) string {
	if src.Engine != "" {
		return src.Engine
	}
	return c.Fetch.Engine
}
