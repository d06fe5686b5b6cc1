package basetest

import "sync"

// ExceptionLedger maps fully qualified test names to the exception messages recorded by those
// tests. It is safe for concurrent use. Operations on a single name are atomic; Len is not a
// consistent snapshot while other goroutines are writing.
type ExceptionLedger struct {
	entries sync.Map // string -> *ledgerEntry
}

// ledgerEntry is never modified after being stored; Append replaces it.
type ledgerEntry struct {
	messages []string
}

// NewExceptionLedger creates an empty ledger.
func NewExceptionLedger() *ExceptionLedger {
	return &ExceptionLedger{}
}

// Get returns a copy of the messages recorded for name, and false if there is no entry.
func (l *ExceptionLedger) Get(name string) ([]string, bool) {
	v, ok := l.entries.Load(name)
	if !ok {
		return nil, false
	}
	return append([]string{}, v.(*ledgerEntry).messages...), true
}

// Set replaces the entry for name with a copy of messages.
func (l *ExceptionLedger) Set(name string, messages []string) {
	l.set(name, messages)
}

func (l *ExceptionLedger) set(name string, messages []string) *ledgerEntry {
	entry := &ledgerEntry{messages: append([]string{}, messages...)}
	l.entries.Store(name, entry)
	return entry
}

// Append adds message to the end of the entry for name, creating the entry if necessary.
func (l *ExceptionLedger) Append(name string, message string) {
	l.append(name, message)
}

// append returns the entry it replaced, nil if it created one, and the entry it stored.
func (l *ExceptionLedger) append(name string, message string) (previous, stored *ledgerEntry) {
	for {
		created := &ledgerEntry{messages: []string{message}}
		current, loaded := l.entries.LoadOrStore(name, created)
		if !loaded {
			return nil, created
		}
		old := current.(*ledgerEntry)
		messages := make([]string, 0, len(old.messages)+1)
		next := &ledgerEntry{messages: append(append(messages, old.messages...), message)}
		if l.entries.CompareAndSwap(name, old, next) {
			return old, next
		}
	}
}

// Remove deletes the entry for name, if any.
func (l *ExceptionLedger) Remove(name string) {
	l.entries.Delete(name)
}

// removeIfCurrent deletes the entry for name only if it is still exactly entry.
func (l *ExceptionLedger) removeIfCurrent(name string, entry *ledgerEntry) bool {
	return l.entries.CompareAndDelete(name, entry)
}

// Len returns the number of names that have an entry.
func (l *ExceptionLedger) Len() int {
	n := 0
	l.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
