// Package opt provides an optional value type, used where an operation can legitimately
// produce nothing, such as an element lookup that is allowed to find no match.
package opt

import "fmt"

// Maybe holds either a value or nothing.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe that has a defined value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe with no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// FromPtr returns Some(*ptr) if ptr is non-nil, or None otherwise.
func FromPtr[V any](ptr *V) Maybe[V] {
	if ptr != nil {
		return Some[V](*ptr)
	}
	return None[V]()
}

func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the value if a value is defined, or the zero value for the type otherwise.
func (m Maybe[V]) Value() V { return m.value }

// Get returns the value and whether it was defined, in the style of a map lookup.
func (m Maybe[V]) Get() (V, bool) { return m.value, m.defined }

// AsPtr returns a pointer to the value if the value is defined, or nil otherwise.
func (m Maybe[V]) AsPtr() *V {
	if m.defined {
		return &m.value
	}
	return nil
}

// OrElse returns the value of the Maybe if any, or the valueIfUndefined otherwise.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// String returns the value's own String() if it has one, or its "%v" form, or "[none]".
func (m Maybe[V]) String() string {
	if !m.defined {
		return "[none]"
	}
	var v interface{} = m.value
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", m.value)
}
