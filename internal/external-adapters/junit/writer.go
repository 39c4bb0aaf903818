// Package junit writes JUnit-style XML report artifacts.
//
// The external test and typecheck tools write their own reports; this writer
// exists for the cases where the tool never ran (synthesized error reports)
// and for the aggregate run summary.
package junit

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// TestSuite is the root element of a JUnit-style report.
type TestSuite struct {
	XMLName  xml.Name   `xml:"testsuite"`
	Name     string     `xml:"name,attr"`
	Tests    int        `xml:"tests,attr"`
	Failures int        `xml:"failures,attr"`
	Errors   int        `xml:"errors,attr"`
	Skipped  int        `xml:"skipped,attr"`
	Time     float64    `xml:"time,attr"`
	Cases    []TestCase `xml:"testcase"`
}

// TestCase is a single test case entry.
type TestCase struct {
	Name      string   `xml:"name,attr"`
	Classname string   `xml:"classname,attr"`
	Time      float64  `xml:"time,attr"`
	Failure   *Detail  `xml:"failure,omitempty"`
	Error     *Detail  `xml:"error,omitempty"`
	Skipped   *Skipped `xml:"skipped,omitempty"`
}

// Detail carries a failure or error message with captured output.
type Detail struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

// Skipped marks a skipped test case.
type Skipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Writer persists JUnit-style reports to disk.
type Writer struct{}

// NewWriter creates a new report writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write marshals the suite to path, creating parent directories as needed.
func (w *Writer) Write(path string, suite TestSuite) error {
	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create reports directory: %w", err)
		}
	}

	content := append([]byte(xml.Header), data...)
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// WriteInvocationError synthesizes a one-case error report for a test file
// whose tool invocation never started, so downstream dashboards still see one
// artifact per non-blacklisted file.
func (w *Writer) WriteInvocationError(path, name, output string) error {
	return w.Write(path, TestSuite{
		Name:   name,
		Tests:  1,
		Errors: 1,
		Cases: []TestCase{{
			Name:      name,
			Classname: name,
			Error: &Detail{
				Message: "test tool could not be started",
				Content: output,
			},
		}},
	})
}
