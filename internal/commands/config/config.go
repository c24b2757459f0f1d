package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/artuross/tinyc/internal/tinycconfig"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

const (
	defaultConcurrency = 4
	defaultExtension   = ".js"
	defaultLogLevel    = "info"
	defaultServiceName = "tinyc"
)

type Flagger interface {
	Bool(name string) bool
	Int(name string) int
	IsSet(name string) bool
	String(name string) string
}

type Config struct {
	Concurrency     int
	ConfigFilePath  string
	Extension       string
	LogLevel        zerolog.Level
	OTelEnabled     bool
	OTelServiceName string
	OutDir          string
}

// Flags are shared by every command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the tinyc.toml config file. A missing default file is ignored.",
			Value: tinycconfig.DefaultPath,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "One of trace, debug, info, warn, error. Overrides TINYC_LOG_LEVEL.",
		},
		&cli.BoolFlag{
			Name:  "otel",
			Usage: "Export traces over OTLP gRPC. Overrides TINYC_OTEL_ENABLED.",
		},
	}
}

// Read merges flags, env, config file and defaults, in that order of precedence.
func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	configPath := flags.String("config")
	if configPath == "" {
		configPath = tinycconfig.DefaultPath
	}

	file, err := tinycconfig.ReadConfigFile(configPath, flags.IsSet("config"))
	if err != nil {
		return nil, err
	}

	// log level
	logLevelName := firstNonEmpty(stringFlag(flags, "log-level"), getEnv("TINYC_LOG_LEVEL"), file.LogLevel, defaultLogLevel)

	logLevel, err := zerolog.ParseLevel(strings.ToLower(logLevelName))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevelName, err)
	}

	// otel
	otelEnabled := false
	switch {
	case flags.IsSet("otel"):
		otelEnabled = flags.Bool("otel")

	case getEnv("TINYC_OTEL_ENABLED") != "":
		value, err := strconv.ParseBool(getEnv("TINYC_OTEL_ENABLED"))
		if err != nil {
			return nil, fmt.Errorf("env var TINYC_OTEL_ENABLED: %w", err)
		}

		otelEnabled = value

	case file.OTel.Enabled != nil:
		otelEnabled = *file.OTel.Enabled
	}

	// compile only, other commands leave these unset
	concurrency := defaultConcurrency
	switch {
	case flags.IsSet("concurrency"):
		concurrency = flags.Int("concurrency")

	case file.Concurrency != 0:
		concurrency = file.Concurrency
	}

	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	extension := firstNonEmpty(stringFlag(flags, "ext"), file.Extension, defaultExtension)
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	cfg := Config{
		Concurrency:     concurrency,
		ConfigFilePath:  configPath,
		Extension:       extension,
		LogLevel:        logLevel,
		OTelEnabled:     otelEnabled,
		OTelServiceName: firstNonEmpty(file.OTel.ServiceName, defaultServiceName),
		OutDir:          firstNonEmpty(stringFlag(flags, "out-dir"), file.OutDir),
	}

	return &cfg, nil
}

func Print(logger zerolog.Logger, cfg *Config) {
	logger.Debug().
		Str("config_file", cfg.ConfigFilePath).
		Stringer("log_level", cfg.LogLevel).
		Bool("otel", cfg.OTelEnabled).
		Str("otel_service_name", cfg.OTelServiceName).
		Str("out_dir", cfg.OutDir).
		Str("extension", cfg.Extension).
		Int("concurrency", cfg.Concurrency).
		Msg("running with config")
}

// stringFlag returns the flag value only if it was set on the command line.
func stringFlag(flags Flagger, name string) string {
	if !flags.IsSet(name) {
		return ""
	}

	return flags.String(name)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
