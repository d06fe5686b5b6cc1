package ldtest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/webtest-harness/webtest/framework"
	o "github.com/webtest-harness/webtest/framework/opt"
)

// JUnitTestLogger accumulates test outcomes and writes them as a JUnit XML report in EndLog.
// Each top-level test becomes one testsuite element.
type JUnitTestLogger struct {
	filePath   string
	suiteName  string
	properties map[string]string
	filters    RegexFilters
	testIDs    []TestID // this slice preserves the order that the tests were run in
	tests      map[string]jUnitTestStatus
	lock       sync.Mutex
	now        func() time.Time
}

type jUnitTestStatus struct {
	failures    []error
	skipped     o.Maybe[string]
	nonCritical bool
	output      string
	startTime   time.Time
	duration    time.Duration
}

// JUnit XML schema, as read by CI report viewers.

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName    xml.Name           `xml:"testsuite"`
	Tests      int                `xml:"tests,attr"`
	Failures   int                `xml:"failures,attr"`
	Skipped    int                `xml:"skipped,attr"`
	Time       string             `xml:"time,attr"`
	Name       string             `xml:"name,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
	SystemOut   string               `xml:"system-out,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type jUnitXMLFailure struct {
	Message string `xml:"message,attr"`
}

// NewJUnitTestLogger creates a JUnitTestLogger that will write to filePath. The properties are
// copied into every testsuite element, along with the filter settings.
func NewJUnitTestLogger(
	filePath string,
	suiteName string,
	properties map[string]string,
	filters RegexFilters,
) *JUnitTestLogger {
	return &JUnitTestLogger{
		filePath:   filePath,
		suiteName:  suiteName,
		properties: properties,
		filters:    filters,
		tests:      make(map[string]jUnitTestStatus),
		now:        time.Now,
	}
}

func (j *JUnitTestLogger) TestStarted(id TestID) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.testIDs = append(j.testIDs, id)
	j.tests[id.String()] = jUnitTestStatus{
		startTime: j.now(),
	}
}

func (j *JUnitTestLogger) TestError(id TestID, err error) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.tests[id.String()]
	status.failures = append(status.failures, err)
	j.tests[id.String()] = status
}

func (j *JUnitTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.tests[id.String()]
	status.output = debugOutput.ToString("")
	status.duration = j.now().Sub(status.startTime)
	status.nonCritical = result.NonCritical
	j.tests[id.String()] = status
}

func (j *JUnitTestLogger) TestSkipped(id TestID, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.tests[id.String()]
	status.skipped = o.Some(reason)
	j.tests[id.String()] = status
}

// EndLog writes the report. Tests appear in the order they were started; tests skipped by the
// filter are included as skipped test cases.
func (j *JUnitTestLogger) EndLog(results Results) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	properties := j.suiteProperties()
	var doc jUnitXMLDocument
	for _, topLevelID := range getTopLevelIDs(j.testIDs) {
		doc.Suites = append(doc.Suites, j.buildSuite(topLevelID, properties))
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), append(data, '\n')...)

	if err := os.WriteFile(j.filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("error writing JUnit report to %s: %w", j.filePath, err)
	}
	return nil
}

func (j *JUnitTestLogger) suiteProperties() []jUnitXMLProperty {
	names := maps.Keys(j.properties)
	slices.Sort(names)
	properties := make([]jUnitXMLProperty, 0, len(names)+2)
	for _, name := range names {
		properties = append(properties, jUnitXMLProperty{Name: name, Value: j.properties[name]})
	}
	return append(properties,
		jUnitXMLProperty{Name: "tests.filter.mustMatch", Value: j.filters.MustMatch.String()},
		jUnitXMLProperty{Name: "tests.filter.mustNotMatch", Value: j.filters.MustNotMatch.String()},
	)
}

func (j *JUnitTestLogger) buildSuite(topLevelID string, properties []jUnitXMLProperty) jUnitXMLTestSuite {
	suite := jUnitXMLTestSuite{
		Name:       fmt.Sprintf("%s: %s", j.suiteName, topLevelID),
		Properties: properties,
	}
	var total time.Duration
	for _, testID := range j.testIDs {
		if len(testID) == 0 || testID[0] != topLevelID {
			continue
		}
		status := j.tests[testID.String()]
		total += status.duration

		testCase := jUnitXMLTestCase{
			Classname: topLevelID,
			Name:      testID.String(),
			Time:      jUnitDurationString(status.duration),
			SystemOut: status.output,
		}
		if status.nonCritical {
			testCase.Name += " (non-critical)"
		}
		if reason, skipped := status.skipped.Get(); skipped {
			suite.Skipped++
			testCase.SkipMessage = &jUnitXMLSkipMessage{Message: reason}
		}
		if len(status.failures) != 0 {
			suite.Failures++
			testCase.Failure = &jUnitXMLFailure{Message: failureMessage(status.failures)}
		}
		suite.Tests++
		suite.TestCases = append(suite.TestCases, testCase)
	}
	suite.Time = jUnitDurationString(total)
	return suite
}

func failureMessage(failures []error) string {
	messages := make([]string, 0, len(failures))
	for _, e := range failures {
		message := e.Error()
		var es ErrorWithStacktrace
		if errors.As(e, &es) && len(es.Stacktrace) != 0 {
			message += "\n  Stacktrace:"
			for _, s := range es.Stacktrace {
				message += "\n    " + s.String()
			}
		}
		messages = append(messages, message)
	}
	return strings.Join(messages, "\n")
}

func getTopLevelIDs(allIDs []TestID) []string {
	var ret []string
	for _, testID := range allIDs {
		if len(testID) != 0 && !slices.Contains(ret, testID[0]) {
			ret = append(ret, testID[0])
		}
	}
	return ret
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
