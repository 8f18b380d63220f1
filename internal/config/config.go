package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultWorkers   = 4
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Notation NotationConfig `yaml:"notation"`
	Log      LogConfig      `yaml:"log"`
	Batch    BatchConfig    `yaml:"batch"`

	dir string
}

// DataConfig paths are relative to the directory holding the config file.
type DataConfig struct {
	FrameData string `yaml:"frame_data"`
	Aliases   string `yaml:"aliases"`
	Combos    string `yaml:"combos"`
	Rules     string `yaml:"rules"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type NotationConfig struct {
	IgnoredMoves []string `yaml:"ignored_moves"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = DefaultWorkers
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Data.FrameData) == "" {
		return fmt.Errorf("data.frame_data is required")
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Log.Format)
	}

	if cfg.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be positive, got %d", cfg.Batch.Workers)
	}

	for i, move := range cfg.Notation.IgnoredMoves {
		if strings.TrimSpace(move) == "" {
			return fmt.Errorf("notation.ignored_moves entry %d is empty", i)
		}
	}

	return nil
}

// Path resolves a data path against the config file's directory. Empty
// paths stay empty.
func (c *ProjectConfig) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}
