package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/zhubert/ragdesk/internal/errors"
)

const (
	// EnvBackendURL is the only environment variable ragdesk reads.
	EnvBackendURL = "RAGDESK_BACKEND_URL"

	// DefaultBackendURL is used when no flag, environment value or config entry is set.
	DefaultBackendURL = "http://localhost:8080"
)

// Query ordering policies for overlapping queries.
const (
	// OrderingLatest discards a query response older than one already shown.
	OrderingLatest = "latest"
	// OrderingArrival lets whichever response arrives last overwrite the answer.
	OrderingArrival = "arrival"
)

// Config holds the application configuration
type Config struct {
	BackendURL           string        `toml:"backend_url"`
	Theme                string        `toml:"theme"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool          `toml:"notifications_enabled"` // Desktop notification after each upload
	QueryOrdering        string        `toml:"query_ordering"`        // "latest" or "arrival"
	ClearAfterUpload     bool          `toml:"clear_after_upload"`    // Drop the selected file after a successful upload
	StartDir             string        `toml:"start_dir"`             // Directory the file picker opens in
	RequestTimeout       time.Duration `toml:"request_timeout"`       // Zero means no client-side timeout

	mu       sync.RWMutex
	filePath string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BackendURL:           DefaultBackendURL,
		NotificationsEnabled: true,
		QueryOrdering:        OrderingLatest,
	}
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ragdesk"), nil
}

// DefaultPath returns ~/.ragdesk/config.toml.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from path, or from DefaultPath when path is empty.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, perrors.ConfigLoadFailed("~/.ragdesk", err)
		}
		path = p
	}

	cfg := Default()
	cfg.filePath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize fills in values a file may have set to empty.
func (c *Config) normalize() {
	c.BackendURL = strings.TrimSpace(c.BackendURL)
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	c.QueryOrdering = strings.ToLower(strings.TrimSpace(c.QueryOrdering))
	if c.QueryOrdering == "" {
		c.QueryOrdering = OrderingLatest
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidateBackendURL(c.BackendURL); err != nil {
		return err
	}
	switch c.QueryOrdering {
	case OrderingLatest, OrderingArrival:
	default:
		return perrors.ConfigInvalid("query_ordering must be \"latest\" or \"arrival\", got " + c.QueryOrdering)
	}
	if c.RequestTimeout < 0 {
		return perrors.ConfigInvalid("request_timeout must not be negative")
	}
	return nil
}

// ValidateBackendURL accepts absolute http(s) URLs with a host.
func ValidateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return perrors.BackendURLInvalid(raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return perrors.BackendURLInvalid(raw, perrors.ConfigInvalid("scheme must be http or https"))
	}
	if u.Host == "" {
		return perrors.BackendURLInvalid(raw, perrors.ConfigInvalid("missing host"))
	}
	return nil
}

// ResolveBackendURL picks the backend address once at startup. Precedence:
// explicit flag, then RAGDESK_BACKEND_URL, then the config file, then the default.
// The result never has a trailing slash.
func (c *Config) ResolveBackendURL(flagValue string) (string, error) {
	c.mu.RLock()
	candidate := c.BackendURL
	c.mu.RUnlock()

	if env := strings.TrimSpace(os.Getenv(EnvBackendURL)); env != "" {
		candidate = env
	}
	if v := strings.TrimSpace(flagValue); v != "" {
		candidate = v
	}
	if candidate == "" {
		candidate = DefaultBackendURL
	}
	candidate = strings.TrimRight(candidate, "/")

	if err := ValidateBackendURL(candidate); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.BackendURL = candidate
	c.mu.Unlock()
	return candidate, nil
}

// FilePath returns the path the config was loaded from.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath overrides the config file path (used in tests)
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetBackendURL returns the resolved backend base address
func (c *Config) GetBackendURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackendURL
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetQueryOrdering returns the ordering policy for overlapping queries
func (c *Config) GetQueryOrdering() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.QueryOrdering
}

// GetClearAfterUpload reports whether a successful upload clears the selection
func (c *Config) GetClearAfterUpload() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ClearAfterUpload
}

// GetStartDir returns the directory the file picker opens in, defaulting to
// the working directory.
func (c *Config) GetStartDir() string {
	c.mu.RLock()
	dir := c.StartDir
	c.mu.RUnlock()

	if dir != "" {
		if strings.HasPrefix(dir, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, dir[2:])
			}
		}
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// GetRequestTimeout returns the HTTP client timeout (zero for none)
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RequestTimeout
}
