package logging

import (
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// LoggingEnabled controls whether persistent test logs are written and kept.
type LoggingEnabled int

const (
	// EnabledAlways writes a log file for every test and keeps it.
	EnabledAlways LoggingEnabled = iota
	// EnabledNever logs to the console only.
	EnabledNever
	// EnabledOnFail writes a log file for every test but deletes it if the test passes.
	EnabledOnFail
)

func (l LoggingEnabled) String() string {
	switch l {
	case EnabledAlways:
		return "YES"
	case EnabledNever:
		return "NO"
	case EnabledOnFail:
		return "ONFAIL"
	default:
		return fmt.Sprintf("LoggingEnabled(%d)", int(l))
	}
}

// ParseLoggingEnabled accepts YES, NO and ONFAIL, plus the aliases ALWAYS and NEVER, in any case.
func ParseLoggingEnabled(s string) (LoggingEnabled, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES", "ALWAYS":
		return EnabledAlways, nil
	case "NO", "NEVER":
		return EnabledNever, nil
	case "ONFAIL":
		return EnabledOnFail, nil
	default:
		return 0, fmt.Errorf("unknown logging setting %q", s)
	}
}

func (l LoggingEnabled) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LoggingEnabled) UnmarshalText(data []byte) error {
	parsed, err := ParseLoggingEnabled(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l *LoggingEnabled) UnmarshalYAML(node *yaml.Node) error {
	return l.UnmarshalText([]byte(node.Value))
}
