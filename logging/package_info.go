// Package logging provides the per-test loggers used by the basetest lifecycle: message
// severities, the setting that controls whether test logs are kept, console and file loggers,
// and a Provider that builds loggers from a Config loaded from YAML and the environment.
package logging
