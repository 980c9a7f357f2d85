package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mjstats/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "点数表_四麻", cfg.Workbook.SheetName)
	assert.Equal(t, 4, cfg.Workbook.ActivePlayers)
	assert.Contains(t, cfg.Workbook.CumulativeKeywords, "合計")
	assert.Contains(t, cfg.Workbook.RankKeywords, "順位")

	epoch, err := cfg.Workbook.EpochTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC), epoch)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Workbook.SheetName, cfg.Workbook.SheetName)
}

func TestLoadFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("workbook:\n  sheet_name: scores\n  active_players: 4\nserver:\n  port: 9090\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "scores", cfg.Workbook.SheetName)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched sections keep their defaults.
	assert.Equal(t, "1899-12-30", cfg.Workbook.Epoch)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("MJSTATS_WORKBOOK_SHEET_NAME", "env_sheet")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env_sheet", cfg.Workbook.SheetName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty sheet name", func(c *Config) { c.Workbook.SheetName = "" }},
		{"zero players", func(c *Config) { c.Workbook.ActivePlayers = 0 }},
		{"bad epoch", func(c *Config) { c.Workbook.Epoch = "yesterday" }},
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
		})
	}
}
