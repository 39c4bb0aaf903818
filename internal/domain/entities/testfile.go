// Package entities defines core domain models and data structures.
package entities

import "strings"

// TestFile represents a discovered candidate test file.
type TestFile struct {
	Path       string // relative path, forward slashes, leading "./" stripped
	ReportName string // Path with separators replaced by underscores
}

// NewTestFile creates a TestFile from a normalized relative path.
// The report name is a deterministic transform of the path: every path
// separator becomes an underscore, so "plugins_tests/base_test.py" maps to
// "plugins_tests_base_test.py".
func NewTestFile(path string) TestFile {
	path = strings.TrimPrefix(path, "./")
	return TestFile{
		Path:       path,
		ReportName: strings.ReplaceAll(path, "/", "_"),
	}
}

// Blacklist is the fixed set of test file paths excluded from execution.
// It is built once at startup and never mutated during a run.
type Blacklist struct {
	entries []string
	joined  string
}

// DefaultBlacklist contains the compiled-in exclusions applied when the
// workspace configuration does not override them.
var DefaultBlacklist = []string{
	"plugins_tests/base_test.py",
}

// NewBlacklist creates a Blacklist from a list of relative path entries.
func NewBlacklist(entries []string) Blacklist {
	return Blacklist{
		entries: append([]string(nil), entries...),
		joined:  strings.Join(entries, " "),
	}
}

// Matches reports whether a candidate path is excluded.
//
// Matching is deliberately looser than exact set membership: a candidate is
// excluded when any entry occurs as a substring of it, or when the candidate
// occurs as a substring of the joined entry list. A path that is a superstring
// of an entry (e.g. "x/plugins_tests/base_test.py") is therefore also
// excluded. This mirrors the historical runner and is covered by regression
// tests; do not tighten it to exact matching.
func (b Blacklist) Matches(path string) bool {
	if path == "" {
		return false
	}
	if strings.Contains(b.joined, path) {
		return true
	}
	for _, entry := range b.entries {
		if entry != "" && strings.Contains(path, entry) {
			return true
		}
	}
	return false
}

// Entries returns a copy of the configured entries.
func (b Blacklist) Entries() []string {
	return append([]string(nil), b.entries...)
}
