package logging

import (
	"io"

	"github.com/webtest-harness/webtest/framework/helpers"
)

// Provider creates loggers according to a Config.
type Provider struct {
	config        Config
	consoleOutput io.Writer
}

// ProviderOption configures a Provider.
type ProviderOption = helpers.ConfigOptionFunc[Provider]

// WithConsoleOutput sends the output of console loggers created by the Provider to w.
func WithConsoleOutput(w io.Writer) ProviderOption {
	return func(p *Provider) error {
		p.consoleOutput = w
		return nil
	}
}

// NewProvider creates a Provider for config. Use LoadConfig to build a config from files and
// the environment.
func NewProvider(config Config, options ...ProviderOption) (*Provider, error) {
	p := &Provider{config: config}
	if err := helpers.ApplyOptions(p, options...); err != nil {
		return nil, err
	}
	return p, nil
}

// Config returns the configuration the Provider was created with.
func (p *Provider) Config() Config { return p.config }

// LoggingEnabledSetting returns the configured Log setting.
func (p *Provider) LoggingEnabledSetting() LoggingEnabled {
	return p.config.Log
}

// Logger returns a logger for the given name. When logging is disabled or the configured kind is
// CONSOLE it is a ConsoleLogger; otherwise it is a FileLogger in the configured directory.
func (p *Provider) Logger(name string) (Logger, error) {
	if p.config.Log == EnabledNever || p.config.LogType == KindConsole {
		return NewConsoleLogger(p.config.LogLevel, p.consoleOutput), nil
	}
	fileLogger, err := NewFileLogger(p.config.FileLoggingPath, name, p.config.LogLevel)
	if err != nil {
		return nil, err
	}
	return fileLogger, nil
}
