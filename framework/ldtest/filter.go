package ldtest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
	yaml "gopkg.in/yaml.v3"

	"github.com/webtest-harness/webtest/framework"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by name. A test runs if it matches at least one MustMatch pattern
// (or there are none) and matches no MustNotMatch pattern. Use RegexFilters.Match as a Filter.
//
// Both lists can be given on the command line through flag.Var, or in a YAML file as either a
// single pattern or a sequence of patterns:
//
//	mustMatch: login/.*
//	mustNotMatch: [".*/slow", "checkout/paypal"]
type RegexFilters struct {
	MustMatch    TestIDPatternList `yaml:"mustMatch"`
	MustNotMatch TestIDPatternList `yaml:"mustNotMatch"`
}

func (r RegexFilters) Match(id TestID) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.AnyMatch(id, true) {
		return false
	}
	return !r.MustNotMatch.AnyMatch(id, false)
}

// TestIDPattern matches a TestID one path element at a time; "login/wrong.*" has two elements.
type TestIDPattern []*regexp.Regexp

// Match reports whether every element of the pattern matches the corresponding element of id.
// If id is shorter than the pattern, it only matches when includeParents is true, so that the
// parents of a selected subtest are run too.
func (p TestIDPattern) Match(id TestID, includeParents bool) bool {
	if len(id) < len(p) && !includeParents {
		return false
	}
	for i, rx := range p {
		if i >= len(id) {
			break
		}
		if !rx.MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p TestIDPattern) String() string {
	ss := make([]string, 0, len(p))
	for _, rx := range p {
		ss = append(ss, rx.String())
	}
	return strings.Join(ss, "/")
}

func ParseTestIDPattern(s string) (TestIDPattern, error) {
	parts := strings.Split(s, "/")
	ret := make(TestIDPattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid test ID pattern %q: %w", s, err)
		}
		ret = append(ret, rx)
	}
	return ret, nil
}

type TestIDPatternList []TestIDPattern

func (l TestIDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set adds a pattern; it makes *TestIDPatternList a flag.Value.
func (l *TestIDPatternList) Set(value string) error {
	p, err := ParseTestIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l *TestIDPatternList) UnmarshalYAML(node *yaml.Node) error {
	var values []string
	switch node.Kind {
	case yaml.ScalarNode:
		values = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&values); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: expected a test ID pattern or a list of them", node.Line)
	}
	for _, v := range values {
		if err := l.Set(v); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
	}
	return nil
}

func (l TestIDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l TestIDPatternList) AnyMatch(id TestID, includeParents bool) bool {
	return slices.ContainsFunc(l, func(p TestIDPattern) bool { return p.Match(id, includeParents) })
}

// PrintFilterDescription explains to the user which tests will be skipped because of filter
// settings or because the environment lacks some of the capabilities that tests can require.
func PrintFilterDescription(w io.Writer, filters RegexFilters, allCapabilities []string, supportedCapabilities []string) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(w)
	}

	supported := framework.Capabilities(supportedCapabilities)
	missing := slices.DeleteFunc(slices.Clone(allCapabilities), supported.Has)
	if len(missing) > 0 {
		fmt.Fprintln(w, "Some tests may be skipped because the environment does not support the following capabilities:")
		fmt.Fprintf(w, "  %s\n", strings.Join(missing, ", "))
		fmt.Fprintln(w)
	}
}
