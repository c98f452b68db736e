package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Rules struct {
		Pack        string   `yaml:"pack"`         // "" = built-in MFIPPA table
		Disabled    []string `yaml:"disabled"`     // rule ids
		MaxSnippets int      `yaml:"max_snippets"` // 5
	} `yaml:"rules"`

	Reporting struct {
		OutDir  string   `yaml:"out_dir"` // "./reports"
		Formats []string `yaml:"formats"` // json|html|markdown
	} `yaml:"reporting"`

	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (only)
		DSN    string `yaml:"dsn"`    // "./mfippa.db"
	} `yaml:"database"`

	API struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		RequireAuth    bool     `yaml:"require_auth"`
		SessionHours   int      `yaml:"session_hours"`
		MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Rules.MaxSnippets = 5
	c.Reporting.OutDir = "./reports"
	c.Reporting.Formats = []string{"json", "html"}
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./mfippa.db"
	c.API.Addr = ":8080"
	c.API.SessionHours = 12
	c.API.MaxUploadBytes = 10 << 20
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

// SessionDuration converts the configured hours, falling back to 12h.
func (c Config) SessionDuration() time.Duration {
	if c.API.SessionHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.API.SessionHours) * time.Hour
}

// LoadConfig layers defaults, the YAML file at path (optional; a missing
// file is not an error) and MFIPPA_* environment overrides.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// Env overrides (simple, explicit)
	if v := os.Getenv("MFIPPA_RULES_PACK"); v != "" {
		c.Rules.Pack = v
	}
	if v := os.Getenv("MFIPPA_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("MFIPPA_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("MFIPPA_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("MFIPPA_REQUIRE_AUTH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.API.RequireAuth = b
		}
	}
	if v := os.Getenv("MFIPPA_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("MFIPPA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	if d := strings.ToLower(strings.TrimSpace(c.Database.Driver)); d != "" && d != "sqlite" {
		return c, fmt.Errorf("database.driver %q: only sqlite is supported", c.Database.Driver)
	}
	return c, nil
}
