package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/webtest-harness/webtest/framework"
)

const logFileExtension = ".txt"

var invalidFileNameChars = strings.NewReplacer( //nolint:gochecknoglobals
	"<", "~", ">", "~", ":", "~", `"`, "~", "/", "~", `\`, "~", "|", "~", "?", "~", "*", "~",
)

// FileLogger appends "[timestamp] TYPE:<tab>message" lines to a text file. The file is opened
// for each message and closed again, so it can be removed at any time without leaking a handle.
type FileLogger struct {
	levelState
	filePath  string
	now       func() time.Time
	writeLock sync.Mutex
}

// NewFileLogger creates dir if needed and an empty log file in it whose name is derived from
// name.
func NewFileLogger(dir, name string, level MessageType) (*FileLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, MakeValidFileName(name)+logFileExtension)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	_ = f.Close()
	return &FileLogger{
		levelState: levelState{level: level},
		filePath:   path,
		now:        time.Now,
	}, nil
}

// MakeValidFileName replaces characters that are not allowed in file names on common file
// systems with '~'.
func MakeValidFileName(name string) string {
	if name == "" {
		return "log"
	}
	return invalidFileNameChars.Replace(name)
}

// FilePath returns the path of the log file. The file is created by NewFileLogger.
func (f *FileLogger) FilePath() string { return f.filePath }

func (f *FileLogger) LogMessage(messageType MessageType, message string, args ...interface{}) error {
	if !f.shouldWrite(messageType) {
		return nil
	}
	line := fmt.Sprintf("[%s] %s:\t%s\n",
		f.now().Format(framework.TimestampFormat), messageType, SafeFormat(message, args...))

	f.writeLock.Lock()
	defer f.writeLock.Unlock()
	file, err := os.OpenFile(f.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := file.WriteString(line); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write to log file: %w", err)
	}
	return file.Close()
}

func (f *FileLogger) SuspendLogging() {
	if f.suspend() {
		_ = f.LogMessage(Suspended, suspendMessage)
	}
}

func (f *FileLogger) ContinueLogging() {
	if f.resume() {
		_ = f.LogMessage(Suspended, continueMessage)
	}
}
