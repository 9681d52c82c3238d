package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Grading  GradingConfig  `yaml:"grading"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// SheetsConfig maps each sheet role to the workbook tab that holds it.
type SheetsConfig struct {
	Main   string `yaml:"main"`
	Aero   string `yaml:"aero"`
	Miss   string `yaml:"miss"`
	Consts string `yaml:"consts"`
	Gear   string `yaml:"gear"`
	Geom   string `yaml:"geom"`
}

type GradingConfig struct {
	LegacyAdvisories bool `yaml:"legacy_advisories"`
	Workers          int  `yaml:"workers"`
	MaxUploadMB      int  `yaml:"max_upload_mb"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SheetNames returns the role to tab mapping used by the workbook loaders.
// Blank entries keep the default tab name.
func (c *Config) SheetNames() workbook.SheetNames {
	names := workbook.DefaultSheetNames()
	for role, tab := range map[string]string{
		workbook.SheetMain:   c.Sheets.Main,
		workbook.SheetAero:   c.Sheets.Aero,
		workbook.SheetMiss:   c.Sheets.Miss,
		workbook.SheetConsts: c.Sheets.Consts,
		workbook.SheetGear:   c.Sheets.Gear,
		workbook.SheetGeom:   c.Sheets.Geom,
	} {
		if tab != "" {
			names[role] = tab
		}
	}
	return names
}

// MaxUploadBytes is the request body limit for workbook uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Grading.MaxUploadMB) << 20
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Grading: GradingConfig{
			LegacyAdvisories: false,
			Workers:          4,
			MaxUploadMB:      20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if cfg.Grading.Workers < 1 {
		cfg.Grading.Workers = 1
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RUBRIC_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("RUBRIC_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("RUBRIC_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("RUBRIC_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("RUBRIC_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("RUBRIC_LEGACY_ADVISORIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Grading.LegacyAdvisories = b
		}
	}
	if v := os.Getenv("RUBRIC_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grading.Workers = n
		}
	}
	if v := os.Getenv("RUBRIC_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grading.MaxUploadMB = n
		}
	}
	if v := os.Getenv("RUBRIC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RUBRIC_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
