// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/interfaces"
)

// Selector interface for discovering and filtering test files
type Selector interface {
	DiscoverTests(root string) (selected, skipped []entities.TestFile, err error)
}

// TestTool interface for running the external test tool against one file
type TestTool interface {
	RunFile(ctx context.Context, root string, file entities.TestFile, reportPath string) entities.ToolOutcome
}

// ReportWriter interface for synthesizing report artifacts when the tool
// itself could not produce one
type ReportWriter interface {
	WriteInvocationError(path, name, message string) error
}

// SuiteOrchestrator runs the full test batch: discover, filter, execute each
// file through the external tool, persist one structured report per file.
type SuiteOrchestrator struct {
	selector Selector
	tool     TestTool
	reports  ReportWriter
	log      interfaces.Logger
}

// NewSuiteOrchestrator creates a new suite orchestrator
func NewSuiteOrchestrator(selector Selector, tool TestTool, reports ReportWriter, log interfaces.Logger) *SuiteOrchestrator {
	return &SuiteOrchestrator{
		selector: selector,
		tool:     tool,
		reports:  reports,
		log:      log,
	}
}

// RunSuite executes the batch for one runtime. Each file is processed to
// completion before the next begins, and a failing file never aborts the run:
// the tool's exit status is recorded in the report and the loop continues.
// The returned error covers discovery problems only; tests failing is not an
// error at this layer.
func (o *SuiteOrchestrator) RunSuite(ctx context.Context, root, reportsDir, runtime string) (*entities.SuiteReport, error) {
	startTime := time.Now()
	report := &entities.SuiteReport{
		RunID:   uuid.NewString(),
		Runtime: runtime,
	}

	selected, skipped, err := o.selector.DiscoverTests(root)
	if err != nil {
		return nil, err
	}

	for _, file := range skipped {
		o.log.Info("skipping blacklisted test file",
			interfaces.F("file", file.Path),
			interfaces.F("runtime", runtime))
		report.Record(entities.FileResult{
			File:    file,
			Status:  entities.StatusSkipped,
			Message: "blacklisted",
		})
	}

	for _, file := range selected {
		reportPath := filepath.Join(reportsDir, file.ReportName+".xml")
		o.log.Info("running test file",
			interfaces.F("file", file.Path),
			interfaces.F("report", reportPath))

		outcome := o.tool.RunFile(ctx, root, file, reportPath)

		result := entities.FileResult{
			File:       file,
			ReportPath: reportPath,
			Duration:   outcome.Duration,
		}
		switch {
		case !outcome.Started:
			// The tool never ran, so no report exists for this file yet.
			// Synthesize one so the dashboard still sees exactly one
			// artifact per non-blacklisted file.
			result.Status = entities.StatusError
			result.Message = "test tool could not be started"
			if err := o.reports.WriteInvocationError(reportPath, file.Path, outcome.Output); err != nil {
				o.log.Error("failed to write synthesized report",
					interfaces.F("file", file.Path),
					interfaces.F("error", err))
			}
		case outcome.ExitCode == 0:
			result.Status = entities.StatusPassed
		default:
			result.Status = entities.StatusFailed
			result.Message = fmt.Sprintf("test tool exited with status %d", outcome.ExitCode)
		}
		report.Record(result)
	}

	report.Duration = time.Since(startTime)
	return report, nil
}
