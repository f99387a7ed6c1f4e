package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pianoroll/config"
)

func TestLoadConfigAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := config.DefaultConfig()
	saved.Output.PortName = "IAC"
	saved.Playback.Tempo = 100
	require.NoError(t, saved.SaveTo(path))

	require.NoError(t, rootCmd.ParseFlags([]string{"--config", path, "--bpm", "90", "--channel", "3"}))
	cfg, err := loadConfig(rootCmd)

	require.NoError(t, err)
	assert.Equal(t, "IAC", cfg.Output.PortName, "unset flags keep file values")
	assert.Equal(t, 90, cfg.Playback.Tempo)
	assert.Equal(t, 3, cfg.Output.Channel)

	require.NoError(t, rootCmd.ParseFlags([]string{"--channel", "17"}))
	_, err = loadConfig(rootCmd)
	assert.Error(t, err)
}

func TestSaveConfigWritesEffectiveSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defer func() { opts = flags{} }()

	cfg := config.DefaultConfig()
	cfg.Playback.Tempo = 140
	opts.configPath = ""
	require.NoError(t, saveConfig(cfg))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 140, loaded.Playback.Tempo)

	path := filepath.Join(t.TempDir(), "custom.json")
	opts.configPath = path
	cfg.Output.Channel = 5
	require.NoError(t, saveConfig(cfg))

	loaded, err = config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Output.Channel)
}

func TestLoadThemeFallsBackToDefault(t *testing.T) {
	th, err := loadTheme(config.DefaultConfig())

	require.NoError(t, err)
	assert.Equal(t, "Dusk", th.Palette.Name)

	cfg := config.DefaultConfig()
	cfg.UI.PaletteFile = filepath.Join(t.TempDir(), "missing.gpl")
	_, err = loadTheme(cfg)
	assert.Error(t, err)
}
