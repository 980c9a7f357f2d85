package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "mjstats/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	Workbook WorkbookConfig `yaml:"workbook" envconfig:"WORKBOOK"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
}

// WorkbookConfig describes how score sheets are laid out. Keyword sets and
// the serial epoch are configuration so alternate locales or sheet layouts
// work without code changes.
type WorkbookConfig struct {
	SheetName          string   `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	CumulativeKeywords []string `yaml:"cumulative_keywords" envconfig:"CUMULATIVE_KEYWORDS"`
	RankKeywords       []string `yaml:"rank_keywords" envconfig:"RANK_KEYWORDS"`
	// Epoch is the day-zero reference for spreadsheet date serials,
	// formatted as 2006-01-02.
	Epoch string `yaml:"epoch" envconfig:"EPOCH"`
	// ActivePlayers is the number of players contesting a game.
	ActivePlayers int `yaml:"active_players" envconfig:"ACTIVE_PLAYERS"`
}

// EpochTime returns the parsed serial epoch.
func (w WorkbookConfig) EpochTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", w.Epoch)
	if err != nil {
		return time.Time{}, apperrors.NewConfigError("invalid workbook epoch", err)
	}
	return t, nil
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ServerConfig contains HTTP server configuration for the report API.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// Default returns the built-in configuration. The keyword sets and sheet
// name match the score sheets this tool was written for.
func Default() Config {
	return Config{
		Workbook: WorkbookConfig{
			SheetName:          "点数表_四麻",
			CumulativeKeywords: []string{"累", "合計", "total", "TOTAL"},
			RankKeywords:       []string{"順位", "着順", "rank", "RANK"},
			Epoch:              "1899-12-30",
			ActivePlayers:      4,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/mjstats.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			OutputFile: "dist/data/summary.json",
			LogsDir:    "logs",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, then environment variables (MJSTATS_*), which take
// precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, apperrors.NewConfigError("failed to read config file", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to parse config file", err)
			}
		}
	}

	if err := envconfig.Process("MJSTATS", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the configuration for values the pipeline cannot work with.
func (c *Config) validate() error {
	if c.Workbook.SheetName == "" {
		return apperrors.NewConfigError("workbook sheet name must not be empty", nil)
	}
	if c.Workbook.ActivePlayers < 1 {
		return apperrors.NewConfigError(
			fmt.Sprintf("active players must be positive, got %d", c.Workbook.ActivePlayers), nil)
	}
	if _, err := c.Workbook.EpochTime(); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return apperrors.NewConfigError(
			fmt.Sprintf("server port out of range: %d", c.Server.Port), nil)
	}
	return nil
}
