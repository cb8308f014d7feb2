package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
n = 6
lowpass = 300.0
temp = 23.0
rh = 0.6
xpos = 1.2
ypos = 1.5
zpos = 1.1
all_modes = true

[dimensions]
length = 8.4
width = 6.1
height = 2.5
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analysis.Harmonics)
	assert.Equal(t, 250.0, cfg.Analysis.CutoffHz)
	assert.Equal(t, 20.0, cfg.Ambient.TemperatureC)
	assert.Equal(t, 0.5, cfg.Ambient.RelativeHumidity)
	assert.Zero(t, cfg.Room.Length)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.AWS.S3Bucket)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "studio.toml", sampleTOML)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 8.4, cfg.Room.Length)
	assert.Equal(t, 6.1, cfg.Room.Width)
	assert.Equal(t, 2.5, cfg.Room.Height)
	assert.Equal(t, 1.2, cfg.Speaker.X)
	assert.Equal(t, 1.5, cfg.Speaker.Y)
	assert.Equal(t, 1.1, cfg.Speaker.Z)
	assert.Equal(t, 23.0, cfg.Ambient.TemperatureC)
	assert.Equal(t, 0.6, cfg.Ambient.RelativeHumidity)
	assert.Equal(t, 6, cfg.Analysis.Harmonics)
	assert.Equal(t, 300.0, cfg.Analysis.CutoffHz)
	assert.True(t, cfg.Analysis.IncludeRoomModes)

	in := cfg.Input()
	assert.Equal(t, cfg.Room, in.Room)
	assert.Equal(t, 6, in.Parameters.Harmonics)
	assert.True(t, in.IncludeRoomModes)
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "roommodes.toml", sampleTOML)
	t.Chdir(dir)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 8.4, cfg.Room.Length)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "n = [\n")

	_, err := Load(viper.New(), path)
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "studio.toml", sampleTOML)
	t.Setenv("ROOMMODES_RH", "0.4")
	t.Setenv("ROOMMODES_DIMENSIONS_HEIGHT", "3.0")
	t.Setenv("DATABASE_URL", "postgres://example/roommodes")

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("harmonics", 4, "")
	require.NoError(t, fs.Parse([]string{"--harmonics=9"}))
	require.NoError(t, v.BindPFlag("n", fs.Lookup("harmonics")))

	cfg, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, 0.4, cfg.Ambient.RelativeHumidity)
	assert.Equal(t, 3.0, cfg.Room.Height)
	assert.Equal(t, 9, cfg.Analysis.Harmonics)
	assert.Equal(t, 8.4, cfg.Room.Length)
	assert.Equal(t, "postgres://example/roommodes", cfg.Database.URL)
}
