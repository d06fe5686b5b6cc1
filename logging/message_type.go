package logging

import (
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// MessageType is the severity of a log message. Lower values are more severe. A logger whose
// level is L writes messages whose type is L or lower.
type MessageType int

const (
	Suspended   MessageType = -1
	Error       MessageType = 0
	Warning     MessageType = 1
	Success     MessageType = 2
	Generic     MessageType = 3
	Information MessageType = 4
	Verbose     MessageType = 5
)

var messageTypeNames = map[MessageType]string{ //nolint:gochecknoglobals
	Suspended:   "SUSPENDED",
	Error:       "ERROR",
	Warning:     "WARNING",
	Success:     "SUCCESS",
	Generic:     "GENERIC",
	Information: "INFORMATION",
	Verbose:     "VERBOSE",
}

func (m MessageType) String() string {
	if name, ok := messageTypeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MessageType(%d)", int(m))
}

// ParseMessageType accepts the upper-case names returned by String, in any case.
func ParseMessageType(s string) (MessageType, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for m, name := range messageTypeNames {
		if name == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown message type %q", s)
}

func (m MessageType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MessageType) UnmarshalText(data []byte) error {
	parsed, err := ParseMessageType(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *MessageType) UnmarshalYAML(node *yaml.Node) error {
	return m.UnmarshalText([]byte(node.Value))
}
