package tinycconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "./tinyc.toml"

type OTel struct {
	Enabled     *bool  `toml:"enabled,omitempty"`
	ServiceName string `toml:"service_name,omitempty"`
}

// File mirrors tinyc.toml. Zero values mean the key was not set.
type File struct {
	LogLevel    string `toml:"log_level,omitempty"`
	OutDir      string `toml:"out_dir,omitempty"`
	Extension   string `toml:"extension,omitempty"`
	Concurrency int    `toml:"concurrency,omitempty"`
	OTel        OTel   `toml:"otel,omitempty"`
}

// ReadConfigFile reads the config at path. A missing file is not an error
// unless required is set.
func ReadConfigFile(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	return &file, nil
}

func SaveConfigFile(path string, file *File) error {
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal config file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save config file: %w", err)
	}

	return nil
}
