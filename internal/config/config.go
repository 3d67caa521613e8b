package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"pagestrip/internal/domain"
)

// FileName is the name of the config file inside the config directory
const FileName = "config.toml"

const (
	// MinCapacity covers the two navigate subscribers the terminal program
	// registers itself: the page loader and the status line.
	MinCapacity = 2
	// MaxItemsPerPage bounds the items materialized for one page
	MaxItemsPerPage = 1000
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Pagination PaginationConfig `toml:"pagination"`
	Labels     LabelsConfig     `toml:"labels"`
	Log        LogConfig        `toml:"log"`
}

// PaginationConfig holds the page strip settings
type PaginationConfig struct {
	TotalPages   int `toml:"total_pages"`
	WindowSize   int `toml:"window_size"`
	Capacity     int `toml:"capacity"`       // subscribers per event type
	ItemsPerPage int `toml:"items_per_page"` // demo data set
}

// LabelsConfig holds the captions of the navigational buttons
type LabelsConfig struct {
	First string `toml:"first"`
	Prev  string `toml:"prev"`
	Next  string `toml:"next"`
	Last  string `toml:"last"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "pagestrip", FileName),
	}
}

// NewConfigServiceAt creates a config service backed by a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the settings the page strip depends on
func (c *Config) Validate() error {
	p := c.Pagination
	if p.TotalPages < 1 {
		return fmt.Errorf("invalid config: total_pages must be at least 1, got %d", p.TotalPages)
	}
	if p.WindowSize < 0 {
		return fmt.Errorf("invalid config: window_size must not be negative, got %d", p.WindowSize)
	}
	if p.Capacity < MinCapacity {
		return fmt.Errorf("invalid config: capacity must be at least %d (page loader and status line both subscribe), got %d", MinCapacity, p.Capacity)
	}
	if p.ItemsPerPage < 1 || p.ItemsPerPage > MaxItemsPerPage {
		return fmt.Errorf("invalid config: items_per_page must be between 1 and %d, got %d", MaxItemsPerPage, p.ItemsPerPage)
	}
	if p.TotalPages > math.MaxInt/p.ItemsPerPage {
		return fmt.Errorf("invalid config: %d pages of %d items overflow the item count", p.TotalPages, p.ItemsPerPage)
	}

	seen := make(map[string]bool)
	for _, label := range []string{c.Labels.First, c.Labels.Prev, c.Labels.Next, c.Labels.Last} {
		if label == "" {
			return errors.New("invalid config: navigation labels must not be empty")
		}
		if seen[label] {
			return fmt.Errorf("invalid config: duplicate navigation label %q", label)
		}
		seen[label] = true
	}
	return nil
}

// DomainLabels converts the configured captions
func (c *Config) DomainLabels() domain.Labels {
	return domain.Labels{
		First: c.Labels.First,
		Prev:  c.Labels.Prev,
		Next:  c.Labels.Next,
		Last:  c.Labels.Last,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	labels := domain.DefaultLabels()
	return &Config{
		Version: 1,
		Pagination: PaginationConfig{
			TotalPages:   10,
			WindowSize:   7,
			Capacity:     4,
			ItemsPerPage: 10,
		},
		Labels: LabelsConfig{
			First: labels.First,
			Prev:  labels.Prev,
			Next:  labels.Next,
			Last:  labels.Last,
		},
		Log: LogConfig{
			Level: "info",
			File:  "pagestrip.log",
		},
	}
}
