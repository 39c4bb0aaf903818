package entities

import "time"

// File execution statuses recorded in a SuiteReport.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// ToolOutcome captures the observable result of one external tool invocation.
type ToolOutcome struct {
	Started  bool // false when the tool could not be launched at all
	ExitCode int
	Duration time.Duration
	Output   string
}

// FileResult is the outcome of running the test tool against one file.
type FileResult struct {
	File       TestFile
	Status     string
	ReportPath string
	Duration   time.Duration
	Message    string
}

// SuiteReport aggregates a full batch run of the test selector and runner.
// The batch is tolerant: failed files are counted, never aborted on.
type SuiteReport struct {
	RunID    string
	Runtime  string
	Results  []FileResult
	Executed int
	Passed   int
	Failed   int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Record appends a file result and updates the counters.
func (r *SuiteReport) Record(result FileResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case StatusPassed:
		r.Executed++
		r.Passed++
	case StatusFailed:
		r.Executed++
		r.Failed++
	case StatusError:
		r.Errors++
	case StatusSkipped:
		r.Skipped++
	}
}

// Pipeline stage statuses.
const (
	StageStatusPassed   = "passed"
	StageStatusUnstable = "unstable" // stage ran, individual tests failed
	StageStatusError    = "error"    // stage tooling itself failed
	StageStatusSkipped  = "skipped"
)

// StageResult is the outcome of one pipeline stage.
type StageResult struct {
	Name     string
	Status   string
	Duration time.Duration
	Message  string
}

// PipelineReport aggregates a pipeline run across all stages.
type PipelineReport struct {
	RunID     string
	Branch    string
	Stages    []StageResult
	Triggered bool
	Duration  time.Duration
}

// Errored reports whether any stage failed at the tooling level.
// Unstable stages (test failures) do not count; aggregate pass/fail of tests
// is determined by whoever consumes the structured report files.
func (p *PipelineReport) Errored() bool {
	for _, stage := range p.Stages {
		if stage.Status == StageStatusError {
			return true
		}
	}
	return false
}
