package logging

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

var messageColors = map[MessageType]*color.Color{ //nolint:gochecknoglobals
	Error:       color.New(color.FgRed),
	Warning:     color.New(color.FgYellow),
	Success:     color.New(color.FgGreen),
	Information: color.New(color.FgCyan),
	Verbose:     color.New(color.Faint),
	Suspended:   color.New(color.Faint),
}

// ConsoleLogger writes "TYPE:<tab>message" lines to a writer, colored by message type.
type ConsoleLogger struct {
	levelState
	out       io.Writer
	writeLock sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger. If out is nil, color.Output (standard output with
// Windows color support) is used.
func NewConsoleLogger(level MessageType, out io.Writer) *ConsoleLogger {
	if out == nil {
		out = color.Output
	}
	return &ConsoleLogger{levelState: levelState{level: level}, out: out}
}

func (c *ConsoleLogger) LogMessage(messageType MessageType, message string, args ...interface{}) error {
	if !c.shouldWrite(messageType) {
		return nil
	}
	line := SafeFormat(message, args...)

	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	if col, ok := messageColors[messageType]; ok {
		_, err := col.Fprintf(c.out, "%s:\t%s\n", messageType, line)
		return err
	}
	_, err := io.WriteString(c.out, messageType.String()+":\t"+line+"\n")
	return err
}

func (c *ConsoleLogger) SuspendLogging() {
	if c.suspend() {
		_ = c.LogMessage(Suspended, suspendMessage)
	}
}

func (c *ConsoleLogger) ContinueLogging() {
	if c.resume() {
		_ = c.LogMessage(Suspended, continueMessage)
	}
}
