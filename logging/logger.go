package logging

import (
	"fmt"
	"sync"
)

// Logger is a per-test log sink. LogMessage returns an error if the message could not be
// written; messages filtered out by the level are not an error.
type Logger interface {
	LogMessage(messageType MessageType, message string, args ...interface{}) error
	Level() MessageType
	SetLevel(level MessageType)
	SuspendLogging()
	ContinueLogging()
}

// FileBacked is implemented by loggers that persist their output to a file.
type FileBacked interface {
	FilePath() string
}

const (
	suspendMessage  = "Suspending Logging.."
	continueMessage = "Logging Continued.."
)

// levelState holds the level shared by all logger implementations, and the level to go back
// to after a suspension.
type levelState struct {
	lock  sync.Mutex
	level MessageType
	saved MessageType
}

func (s *levelState) Level() MessageType {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.level
}

func (s *levelState) SetLevel(level MessageType) {
	s.lock.Lock()
	s.level = level
	s.lock.Unlock()
}

func (s *levelState) shouldWrite(messageType MessageType) bool {
	return messageType <= s.Level()
}

func (s *levelState) suspend() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.level == Suspended {
		return false
	}
	s.saved = s.level
	s.level = Suspended
	return true
}

func (s *levelState) resume() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.level != Suspended {
		return false
	}
	s.level = s.saved
	return true
}

// SafeFormat formats message with args. With no args the message is returned unchanged, so a
// literal '%' in a message is never treated as a verb.
func SafeFormat(message string, args ...interface{}) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}
