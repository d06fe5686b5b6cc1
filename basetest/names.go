package basetest

import (
	"reflect"
	"strings"
)

// QualifiedName joins a declaring type and method name with a dot. A leading "class " keyword and
// pointer markers at the start of the type name, as produced by fmt's %T, are dropped.
func QualifiedName(declaringType, method string) string {
	typeName := strings.TrimPrefix(strings.TrimSpace(declaringType), "class ")
	return strings.TrimLeft(typeName, "*") + "." + method
}

// TypeName returns the import-path qualified name of v's type, dereferencing pointers; for
// example "github.com/acme/shop/checkout.Suite" for a *checkout.Suite.
func TypeName(v interface{}) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
