// Package config handles XDG configuration directory, file paths and API settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskwave"

	// SessionFile is the stored session filename.
	SessionFile = "session.json"

	// LogFile is the rotated log filename used by the interactive UI.
	LogFile = "taskwave.log"

	// EnvFile is the optional dotenv file read from the working and config directories.
	EnvFile = ".env"

	// DefaultAPIURL is used when neither --api nor TASKWAVE_API_URL is set.
	DefaultAPIURL = "http://localhost:5000"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	envAPIURL  = "TASKWAVE_API_URL"
	envTimeout = "TASKWAVE_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the TaskWave REST API.
	APIURL string

	// Timeout bounds each API request.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskwave or $HOME/.config/taskwave.
// Environment values may come from a .env file in the working directory or the
// config directory; variables already set in the process win.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	loadEnvFiles(EnvFile, filepath.Join(dir, EnvFile))

	cfg := &Config{
		Dir:     dir,
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
	}

	if u := strings.TrimSpace(os.Getenv(envAPIURL)); u != "" {
		cfg.APIURL = u
	}
	if t := strings.TrimSpace(os.Getenv(envTimeout)); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s: %s", envTimeout, t)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// loadEnvFiles loads each existing dotenv file. godotenv.Load never
// overrides variables that are already set.
func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SetAPIURL overrides the API base URL (the --api flag).
func (c *Config) SetAPIURL(u string) {
	if u = strings.TrimSpace(u); u != "" {
		c.APIURL = u
	}
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// LogPath returns the path to the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
