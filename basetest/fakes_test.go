package basetest

import (
	"errors"
	"sync"

	"github.com/webtest-harness/webtest/logging"
)

type loggedMessage struct {
	Type    logging.MessageType
	Message string
}

type fakeLogger struct {
	lock     sync.Mutex
	level    logging.MessageType
	messages []loggedMessage
	failWith error
}

func newFakeLogger() *fakeLogger {
	return &fakeLogger{level: logging.Verbose}
}

func (f *fakeLogger) LogMessage(messageType logging.MessageType, message string, args ...interface{}) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.messages = append(f.messages, loggedMessage{messageType, logging.SafeFormat(message, args...)})
	return nil
}

func (f *fakeLogger) Messages() []loggedMessage {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]loggedMessage(nil), f.messages...)
}

func (f *fakeLogger) MessagesOfType(messageType logging.MessageType) []string {
	var ret []string
	for _, m := range f.Messages() {
		if m.Type == messageType {
			ret = append(ret, m.Message)
		}
	}
	return ret
}

func (f *fakeLogger) Level() logging.MessageType         { return f.level }
func (f *fakeLogger) SetLevel(level logging.MessageType) { f.level = level }
func (f *fakeLogger) SuspendLogging()                    {}
func (f *fakeLogger) ContinueLogging()                   {}

type fakeFileLogger struct {
	*fakeLogger
	path string
}

func (f *fakeFileLogger) FilePath() string { return f.path }

type fakeProvider struct {
	lock    sync.Mutex
	setting logging.LoggingEnabled
	newFn   func(name string) (logging.Logger, error)
	names   []string
	created []logging.Logger
}

func (p *fakeProvider) LoggingEnabledSetting() logging.LoggingEnabled { return p.setting }

func (p *fakeProvider) Logger(name string) (logging.Logger, error) {
	var logger logging.Logger
	var err error
	if p.newFn != nil {
		logger, err = p.newFn(name)
	} else {
		logger = newFakeLogger()
	}
	p.lock.Lock()
	p.names = append(p.names, name)
	if logger != nil {
		p.created = append(p.created, logger)
	}
	p.lock.Unlock()
	return logger, err
}

func (p *fakeProvider) Names() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string(nil), p.names...)
}

var errFakeLogging = errors.New("disk full")

type fileRemoveRecorder struct {
	lock    sync.Mutex
	removed []string
	err     error
}

func (r *fileRemoveRecorder) remove(path string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, path)
	return nil
}

func (r *fileRemoveRecorder) Removed() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.removed...)
}
