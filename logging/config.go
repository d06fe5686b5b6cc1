package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

// LoggerKind selects the logger implementation used when logging is enabled.
type LoggerKind string

const (
	KindConsole LoggerKind = "CONSOLE"
	KindText    LoggerKind = "TXT"
)

// ParseLoggerKind parses a logger kind name, ignoring case and surrounding space.
func ParseLoggerKind(s string) (LoggerKind, error) {
	switch k := LoggerKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindConsole, KindText:
		return k, nil
	default:
		return "", fmt.Errorf("unknown logger type %q", s)
	}
}

func (k *LoggerKind) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseLoggerKind(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Environment variables that override values from the configuration file.
const (
	EnvLog      = "WEBTEST_LOG"
	EnvLogLevel = "WEBTEST_LOG_LEVEL"
	EnvLogType  = "WEBTEST_LOG_TYPE"
	EnvLogPath  = "WEBTEST_LOG_PATH"
)

// Config is the logging section of a test suite's configuration.
type Config struct {
	Log             LoggingEnabled `yaml:"log"`
	LogLevel        MessageType    `yaml:"logLevel"`
	LogType         LoggerKind     `yaml:"logType"`
	FileLoggingPath string         `yaml:"fileLoggingPath"`
}

// DefaultConfig keeps text log files for every test, at Information level, under the system
// temporary directory.
func DefaultConfig() Config {
	return Config{
		Log:             EnabledAlways,
		LogLevel:        Information,
		LogType:         KindText,
		FileLoggingPath: filepath.Join(os.TempDir(), "webtest-logs"),
	}
}

// LoadConfig builds a Config from the defaults, then the YAML file at configPath, then the
// environment (empty variables are ignored). If envPath is non-empty that file is loaded into
// the environment first; variables that are already set are not overwritten. Either path may be
// empty to skip that step.
func LoadConfig(configPath, envPath string) (Config, error) {
	config := DefaultConfig()

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("failed to load environment file %s: %w", envPath, err)
		}
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read logging configuration: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("invalid logging configuration in %s: %w", configPath, err)
		}
	}

	if err := config.applyEnvironment(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) applyEnvironment(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLog); ok && v != "" {
		parsed, err := ParseLoggingEnabled(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLog, err)
		}
		c.Log = parsed
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		parsed, err := ParseMessageType(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = parsed
	}
	if v, ok := lookup(EnvLogType); ok && v != "" {
		parsed, err := ParseLoggerKind(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogType, err)
		}
		c.LogType = parsed
	}
	if v, ok := lookup(EnvLogPath); ok && v != "" {
		c.FileLoggingPath = v
	}
	return nil
}
