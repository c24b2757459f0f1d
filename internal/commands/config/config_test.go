package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/artuross/tinyc/internal/commands/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlags map[string]any

func (f fakeFlags) Bool(name string) bool {
	value, _ := f[name].(bool)
	return value
}

func (f fakeFlags) Int(name string) int {
	value, _ := f[name].(int)
	return value
}

func (f fakeFlags) IsSet(name string) bool {
	_, ok := f[name]
	return ok
}

func (f fakeFlags) String(name string) string {
	value, _ := f[name].(string)
	return value
}

func env(values map[string]string) func(string) string {
	return func(name string) string {
		return values[name]
	}
}

func writeConfig(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "tinyc.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	return path
}

func TestRead(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		flags := fakeFlags{}
		// default path points at a file that does not exist
		t.Chdir(t.TempDir())

		cfg, err := config.Read(flags, env(nil))
		require.NoError(t, err)

		expected := &config.Config{
			Concurrency:     4,
			ConfigFilePath:  "./tinyc.toml",
			Extension:       ".js",
			LogLevel:        zerolog.InfoLevel,
			OTelEnabled:     false,
			OTelServiceName: "tinyc",
			OutDir:          "",
		}

		assert.Equal(t, expected, cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := writeConfig(t, `
log_level = "debug"
out_dir = "build"
extension = "c"
concurrency = 2

[otel]
enabled = true
service_name = "svc"
`)

		cfg, err := config.Read(fakeFlags{"config": path}, env(nil))
		require.NoError(t, err)

		expected := &config.Config{
			Concurrency:     2,
			ConfigFilePath:  path,
			Extension:       ".c",
			LogLevel:        zerolog.DebugLevel,
			OTelEnabled:     true,
			OTelServiceName: "svc",
			OutDir:          "build",
		}

		assert.Equal(t, expected, cfg)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeConfig(t, `
log_level = "debug"

[otel]
enabled = true
`)

		cfg, err := config.Read(
			fakeFlags{"config": path},
			env(map[string]string{
				"TINYC_LOG_LEVEL":    "WARN",
				"TINYC_OTEL_ENABLED": "false",
			}),
		)
		require.NoError(t, err)

		assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
		assert.False(t, cfg.OTelEnabled)
	})

	t.Run("flags override env and file", func(t *testing.T) {
		path := writeConfig(t, `
log_level = "debug"
out_dir = "build"
extension = ".c"
concurrency = 2
`)

		flags := fakeFlags{
			"config":      path,
			"log-level":   "error",
			"otel":        true,
			"out-dir":     "dist",
			"ext":         ".txt",
			"concurrency": 16,
		}

		cfg, err := config.Read(flags, env(map[string]string{"TINYC_LOG_LEVEL": "warn", "TINYC_OTEL_ENABLED": "0"}))
		require.NoError(t, err)

		assert.Equal(t, zerolog.ErrorLevel, cfg.LogLevel)
		assert.True(t, cfg.OTelEnabled)
		assert.Equal(t, "dist", cfg.OutDir)
		assert.Equal(t, ".txt", cfg.Extension)
		assert.Equal(t, 16, cfg.Concurrency)
	})

	t.Run("errors", func(t *testing.T) {
		type testCase struct {
			name  string
			flags fakeFlags
			env   map[string]string
		}

		missing := filepath.Join(t.TempDir(), "missing.toml")

		testCases := []testCase{
			{
				name:  "explicit config file missing",
				flags: fakeFlags{"config": missing},
			},
			{
				name:  "invalid log level",
				flags: fakeFlags{"config": writeConfig(t, ""), "log-level": "loud"},
			},
			{
				name:  "invalid otel env",
				flags: fakeFlags{"config": writeConfig(t, "")},
				env:   map[string]string{"TINYC_OTEL_ENABLED": "maybe"},
			},
			{
				name:  "zero concurrency",
				flags: fakeFlags{"config": writeConfig(t, ""), "concurrency": 0},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				cfg, err := config.Read(tc.flags, env(tc.env))
				assert.Error(t, err)
				assert.Nil(t, cfg)
			})
		}
	})
}
