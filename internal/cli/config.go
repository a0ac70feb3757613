package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/chromatone/internal/predict"
	"github.com/jmylchreest/chromatone/internal/security"
	"github.com/jmylchreest/chromatone/internal/session"
)

// Environment variables read at startup. Flags override them.
const (
	EnvAPIURL     = "CHROMATONE_API_URL"
	EnvBackend    = "CHROMATONE_BACKEND"
	EnvPlugin     = "CHROMATONE_PLUGIN"
	EnvSessionDir = "CHROMATONE_SESSION_DIR"
)

// Config holds process-wide settings.
type Config struct {
	APIURL      string
	Backend     string
	PluginPath  string
	SessionDir  string
	GeminiModel string
	Timeout     time.Duration
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:      predict.DefaultBaseURL,
		Backend:     predict.BackendHTTP,
		GeminiModel: predict.DefaultGeminiModel,
	}
}

// ApplyEnv overlays non-empty environment values.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		c.Backend = v
	}
	if v := strings.TrimSpace(getenv(EnvPlugin)); v != "" {
		c.PluginPath = v
	}
	if v := strings.TrimSpace(getenv(EnvSessionDir)); v != "" {
		c.SessionDir = v
	}
}

// RegisterFlags binds the config fields to fs using the current values as
// defaults, so call it after ApplyEnv.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.APIURL, "api-url", c.APIURL, "prediction service base URL (env "+EnvAPIURL+")")
	fs.StringVar(&c.Backend, "backend", c.Backend, "classifier backend: "+strings.Join(predict.Backends(), ", ")+" (env "+EnvBackend+")")
	fs.StringVar(&c.PluginPath, "plugin", c.PluginPath, "classifier plugin executable for the plugin backend (env "+EnvPlugin+")")
	fs.StringVar(&c.SessionDir, "session-dir", c.SessionDir, "directory holding the last prediction (env "+EnvSessionDir+")")
	fs.StringVar(&c.GeminiModel, "gemini-model", c.GeminiModel, "model used by the gemini backend")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "HTTP request timeout (0 uses the transport default)")
}

// Validate checks the settings needed by the selected backend.
func (c *Config) Validate() error {
	backend, err := predict.ParseBackend(c.Backend)
	if err != nil {
		return err
	}
	c.Backend = backend

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}

	switch backend {
	case predict.BackendHTTP:
		if err := security.ValidateEndpointURL(c.APIURL); err != nil {
			return err
		}
	case predict.BackendPlugin:
		if err := security.ValidatePluginPath(c.PluginPath); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSessionDir returns SessionDir, or the per-user default when unset.
func (c *Config) ResolveSessionDir() (string, error) {
	if c.SessionDir != "" {
		return c.SessionDir, nil
	}
	return session.DefaultDir()
}
