package ldtest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// ErrorWithStacktrace is a test failure annotated with the call stack of the code that reported
// it. Frames belonging to ldtest itself, and to functions that called T.Helper, are left out.
type ErrorWithStacktrace struct {
	Message    string
	Stacktrace []StacktraceInfo
	cause      error
}

// StacktraceInfo is one frame of an ErrorWithStacktrace.
type StacktraceInfo struct {
	FileName string
	Package  string
	Function string
	Line     int
}

func (e ErrorWithStacktrace) Error() string { return e.Message }

// Unwrap returns the error originally passed to T.Errorf, so errors.Is and errors.As see through
// the annotation.
func (e ErrorWithStacktrace) Unwrap() error { return e.cause }

func (s StacktraceInfo) String() string {
	packageName := strings.TrimPrefix(s.Package, rootPackageName()+"/")
	return fmt.Sprintf("%s.%s (%s:%d)", packageName, s.Function, s.FileName, s.Line)
}

// testify puts its own "Error Trace:" block in front of the message; ours replaces it.
var testifyTracePrefix = regexp.MustCompile(`^(?s:\s*Error Trace:.*\sError:\s*)`)

func transformError(err error, stacktrace []StacktraceInfo) error {
	message := err.Error()
	if strings.Contains(message, "Error Trace:") {
		message = strings.TrimSpace(testifyTracePrefix.ReplaceAllLiteralString(message, ""))
	}
	if len(stacktrace) == 0 && message == err.Error() {
		return err
	}
	return ErrorWithStacktrace{Message: message, Stacktrace: stacktrace, cause: err}
}

func currentPackageName() string {
	pc, _, _, ok := runtime.Caller(0)
	if !ok {
		return "?"
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "?"
	}
	packageName, _ := parsePackageAndFunctionName(f.Name())
	return packageName
}

// rootPackageName is the module path, assuming it has the usual host/owner/repo form.
func rootPackageName() string {
	parts := strings.Split(currentPackageName(), "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, "/")
}

// getStacktrace returns the frames above its caller, innermost first, stopping at the top-level
// ldtest.Run. Unless includeRunnerFrames is set, ldtest's own frames are skipped; functions named
// in helperFns are always skipped.
func getStacktrace(includeRunnerFrames bool, helperFns []string) []StacktraceInfo {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs) // skip runtime.Callers and getStacktrace
	frames := runtime.CallersFrames(pcs[:n])
	ownPackage := currentPackageName()

	ret := []StacktraceInfo{}
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		packageName, functionName := parsePackageAndFunctionName(frame.Function)
		if packageName == ownPackage && functionName == "Run" {
			break
		}
		if (includeRunnerFrames || packageName != ownPackage) && !isHelper(frame.Function, helperFns) {
			ret = append(ret, StacktraceInfo{
				FileName: filepath.Base(frame.File),
				Package:  packageName,
				Function: functionName,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return ret
}

func isHelper(fullFunctionName string, helperFns []string) bool {
	for _, h := range helperFns {
		if h == fullFunctionName {
			return true
		}
	}
	return false
}

// parsePackageAndFunctionName splits "example.com/a/b.(*T).run" into "example.com/a/b" and
// "(*T).run".
func parsePackageAndFunctionName(fullName string) (string, string) {
	lastSlash := strings.LastIndex(fullName, "/")
	firstDotAfterSlash := strings.Index(fullName[lastSlash+1:], ".")
	if firstDotAfterSlash < 0 {
		return fullName, ""
	}
	packageName := fullName[0 : lastSlash+firstDotAfterSlash+1]
	functionName := fullName[len(packageName)+1:]
	return packageName, functionName
}
