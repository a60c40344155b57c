package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "plotsData.json", cfg.Data.File)
	assert.Equal(t, 43.1743, cfg.Map.CenterLat)
	assert.Equal(t, 44.9943, cfg.Map.CenterLon)
	assert.Equal(t, 16.0, cfg.Map.Zoom)
	assert.Equal(t, 0.75, cfg.Overlay.Opacity)
	assert.True(t, cfg.Overlay.Visible)
	assert.Equal(t, 200*time.Millisecond, cfg.Editor.FocusDuration)
	assert.Equal(t, "Свободен", cfg.Editor.DefaultStatus)
}

func TestEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PLOTEDITOR_MAP_ZOOM", "18")
	t.Setenv("PLOTEDITOR_EDITOR_FOCUS_DURATION", "1s")
	t.Setenv("PLOTEDITOR_DATA_EXPORT_DIR", "out")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 18.0, cfg.Map.Zoom)
	assert.Equal(t, time.Second, cfg.Editor.FocusDuration)
	assert.Equal(t, "out", cfg.Data.ExportDir)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PLOTEDITOR_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PLOTEDITOR_LOG_LEVEL") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("data:\n  file: a.json\noverlay:\n  opacity: 0.5\n"), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("data", "", "")
	fs.String("plan", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--data", "b.json"}))

	cfg, err := Load(file, fs)
	require.NoError(t, err)
	assert.Equal(t, "b.json", cfg.Data.File)
	assert.Equal(t, 0.5, cfg.Overlay.Opacity)
	assert.Equal(t, "plan.png", cfg.Overlay.Image)
}

func TestMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load("nope.yaml", nil)
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)

	cfg.Map.Zoom = 40
	cfg.Overlay.Opacity = 2
	cfg.Log.Format = "xml"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.zoom")
	assert.Contains(t, err.Error(), "overlay.opacity")
	assert.Contains(t, err.Error(), "log.format")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
