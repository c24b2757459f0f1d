package tinycconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/artuross/tinyc/internal/tinycconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tinyc.toml")

		file, err := tinycconfig.ReadConfigFile(path, false)
		require.NoError(t, err)
		assert.Equal(t, &tinycconfig.File{}, file)

		_, err = tinycconfig.ReadConfigFile(path, true)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("all keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tinyc.toml")

		data := `
log_level = "debug"
out_dir = "build"
extension = ".c"
concurrency = 8

[otel]
enabled = true
service_name = "compiler"
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		file, err := tinycconfig.ReadConfigFile(path, true)
		require.NoError(t, err)

		enabled := true
		expected := &tinycconfig.File{
			LogLevel:    "debug",
			OutDir:      "build",
			Extension:   ".c",
			Concurrency: 8,
			OTel: tinycconfig.OTel{
				Enabled:     &enabled,
				ServiceName: "compiler",
			},
		}

		assert.Equal(t, expected, file)
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tinyc.toml")
		require.NoError(t, os.WriteFile(path, []byte("log_level = "), 0o644))

		_, err := tinycconfig.ReadConfigFile(path, false)
		assert.Error(t, err)
	})

	t.Run("save and read back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tinyc.toml")

		file := &tinycconfig.File{
			LogLevel:  "warn",
			Extension: ".js",
		}

		require.NoError(t, tinycconfig.SaveConfigFile(path, file))

		read, err := tinycconfig.ReadConfigFile(path, true)
		require.NoError(t, err)
		assert.Equal(t, file, read)
	})
}
