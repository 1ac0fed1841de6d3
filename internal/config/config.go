package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/dashboard"
)

// FileName is the configuration file looked up in the working directory
// and under the user config dir.
const FileName = ".trendline.yaml"

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	Theme          string
	Dataset        string
	Period         string
	MovingAverages string
	Seed           uint64
	NoColor        bool
	Debug          bool
	Addr           string

	// Flags to track if they were explicitly set by the user
	ThemeSet          bool
	DatasetSet        bool
	PeriodSet         bool
	MovingAveragesSet bool
	SeedSet           bool
	NoColorSet        bool
	DebugSet          bool
	AddrSet           bool
}

// AppConfig represents the application's configuration from .trendline.yaml.
type AppConfig struct {
	Theme          string                    `yaml:"theme"`
	Dataset        string                    `yaml:"dataset"`
	Period         string                    `yaml:"period"`
	MovingAverages []string                  `yaml:"moving_averages"`
	Seed           uint64                    `yaml:"seed"`
	NoColor        bool                      `yaml:"no_color"`
	Debug          bool                      `yaml:"debug"`
	Chart          chart.Style               `yaml:"chart"`
	Dashboard      *dashboard.DashboardTheme `yaml:"-"`
	Server         ServerConfig              `yaml:"server"`

	// Path is the file the values were read from, empty for defaults.
	Path string `yaml:"-"`
}

// ServerConfig configures `trendline serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Constants for default values.
const (
	DefaultTheme   = "default"
	DefaultDataset = "sample"
	DefaultPeriod  = "6m"
	DefaultAddr    = "127.0.0.1:8080"
)

// DefaultMovingAverages are the overlays drawn when neither the file nor
// the flags name any.
func DefaultMovingAverages() []string { return []string{"4m"} }

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:          DefaultTheme,
		Dataset:        DefaultDataset,
		Period:         DefaultPeriod,
		MovingAverages: DefaultMovingAverages(),
		Dashboard:      dashboard.DefaultDashboardTheme(),
		Server:         ServerConfig{Addr: DefaultAddr},
	}
}

// LoadConfig loads .trendline.yaml from the working directory or the user
// config dir. A missing file yields the defaults; an unreadable or
// malformed one is an error.
func LoadConfig() (*AppConfig, error) {
	path := getConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads one config file and layers it over the defaults.
func LoadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes a config document over the defaults. Keys left out keep
// their default values.
func Parse(data []byte) (*AppConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	// The dashboard section is merged field by field over the default theme.
	theme, err := dashboard.ParseTheme(data)
	if err != nil {
		return nil, err
	}
	cfg.Dashboard = theme

	def := DefaultConfig()
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if cfg.Dataset == "" {
		cfg.Dataset = def.Dataset
	}
	if cfg.Period == "" {
		cfg.Period = def.Period
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	return cfg, nil
}

// getConfigPath determines the path to the .trendline.yaml config file.
// It checks the local directory first, then the XDG user config dir.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir cannot hold a per-user file.
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "trendline", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
