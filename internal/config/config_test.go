package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/matchviz/internal/sweep"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8050", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.Equal(t, []string{"http://localhost:8050", "http://127.0.0.1:8050"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, zerolog.InfoLevel, cfg.Server.LogLevel)
	assert.Equal(t, 1024, cfg.Plot.Width)
	assert.Equal(t, 640, cfg.Plot.Height)
	assert.Equal(t, sweep.DefaultSamples, cfg.Sweep.Samples)

	grid := cfg.Sweep.Grid()
	assert.InDelta(t, sweep.DefaultStartHenries, grid.StartHenries, 1e-21)
	assert.InDelta(t, sweep.DefaultStopHenries, grid.StopHenries, 1e-21)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PLOT_WIDTH", "800")
	t.Setenv("SWEEP_L_MIN_NH", "1")
	t.Setenv("SWEEP_L_MAX_NH", "5")
	t.Setenv("SWEEP_SAMPLES", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, zerolog.DebugLevel, cfg.Server.LogLevel)
	assert.Equal(t, 800, cfg.Plot.Width)
	assert.Equal(t, 100, cfg.Sweep.Samples)
	assert.InDelta(t, 1e-9, cfg.Sweep.Grid().StartHenries, 1e-21)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "loud"},
		{"too few samples", "SWEEP_SAMPLES", "1"},
		{"inverted range", "SWEEP_L_MIN_NH", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "matchcalc", "config.toml"), DefaultConfigPath())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join(dir, "missing.toml"))
		require.NoError(t, err)
		assert.Nil(t, cfg.Target.Resistance)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadFile("")
		assert.Error(t, err)
	})

	t.Run("values", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		content := "[target]\nresistance = 25\nfrequency-ghz = 1.5\n\n[output]\ntop = 3\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Target.Resistance)
		assert.Equal(t, 25.0, *cfg.Target.Resistance)
		assert.Nil(t, cfg.Target.Reactance)
		assert.Equal(t, 1.5, *cfg.Target.FrequencyGHz)
		assert.Equal(t, 3, *cfg.Output.Top)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.toml")
		require.NoError(t, os.WriteFile(path, []byte("[target]\nresistence = 25\n"), 0o644))

		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "resistence")
	})

	t.Run("template decodes", func(t *testing.T) {
		path := filepath.Join(dir, "template.toml")
		require.NoError(t, os.WriteFile(path, []byte(DefaultFileTemplate), 0o644))

		_, err := LoadFile(path)
		assert.NoError(t, err)
	})
}
