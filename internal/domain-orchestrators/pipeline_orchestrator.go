package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/interfaces"
)

// Typechecker interface for the external type-checking tool
type Typechecker interface {
	Check(ctx context.Context, sourceDir, reportPath string) entities.ToolOutcome
}

// SuiteRunner interface for running the unit-test batch for one runtime
type SuiteRunner interface {
	RunSuite(ctx context.Context, root, reportsDir, runtime string) (*entities.SuiteReport, error)
}

// Trigger interface for firing the downstream integration-test job
type Trigger interface {
	Fire(ctx context.Context, branch string) error
}

// SuiteRunnerFactory builds a suite runner bound to one runtime's command.
type SuiteRunnerFactory func(runtime entities.RuntimeConfig) SuiteRunner

// PipelineOrchestrator sequences the CI stages: typecheck, one unit-test
// batch per runtime version, and a conditional downstream trigger keyed on
// branch name.
type PipelineOrchestrator struct {
	config      *entities.WorkspaceConfig
	typechecker Typechecker
	suites      SuiteRunnerFactory
	trigger     Trigger
	log         interfaces.Logger
}

// NewPipelineOrchestrator creates a new pipeline orchestrator
func NewPipelineOrchestrator(
	config *entities.WorkspaceConfig,
	typechecker Typechecker,
	suites SuiteRunnerFactory,
	trigger Trigger,
	log interfaces.Logger,
) *PipelineOrchestrator {
	return &PipelineOrchestrator{
		config:      config,
		typechecker: typechecker,
		suites:      suites,
		trigger:     trigger,
		log:         log,
	}
}

// Run executes the full pipeline for the given branch, bounded by the
// configured wall-clock timeout. Every stage runs to completion regardless of
// earlier outcomes: unit-test failures mark a stage unstable, tooling
// failures mark it errored, and neither stops the stages that follow. The
// downstream trigger fires only when the branch matches and no stage errored.
func (o *PipelineOrchestrator) Run(ctx context.Context, branch string) (*entities.PipelineReport, error) {
	startTime := time.Now()
	report := &entities.PipelineReport{
		RunID:  uuid.NewString(),
		Branch: branch,
	}

	if timeout := o.config.Pipeline.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	report.Stages = append(report.Stages, o.runTypecheck(ctx))

	for _, runtime := range o.config.Runtimes {
		report.Stages = append(report.Stages, o.runUnitTests(ctx, runtime))
	}

	report.Stages = append(report.Stages, o.runTrigger(ctx, report, branch))

	report.Duration = time.Since(startTime)
	return report, ctx.Err()
}

func (o *PipelineOrchestrator) runTypecheck(ctx context.Context) entities.StageResult {
	stage := entities.StageResult{Name: "typecheck"}
	start := time.Now()

	o.log.Info("pipeline stage", interfaces.F("stage", stage.Name))
	outcome := o.typechecker.Check(ctx, o.config.Typecheck.SourceDir, o.config.Typecheck.ReportPath)
	stage.Duration = time.Since(start)

	switch {
	case !outcome.Started:
		stage.Status = entities.StageStatusError
		stage.Message = "type checker could not be started"
	case outcome.ExitCode == 0:
		stage.Status = entities.StageStatusPassed
	default:
		stage.Status = entities.StageStatusUnstable
		stage.Message = fmt.Sprintf("type checker exited with status %d", outcome.ExitCode)
	}
	return stage
}

func (o *PipelineOrchestrator) runUnitTests(ctx context.Context, runtime entities.RuntimeConfig) entities.StageResult {
	stage := entities.StageResult{Name: "unit-tests-" + runtime.Name}
	start := time.Now()

	o.log.Info("pipeline stage", interfaces.F("stage", stage.Name))
	suite, err := o.suites(runtime).RunSuite(ctx, o.config.Tests.Root, runtime.ReportsDir, runtime.Name)
	stage.Duration = time.Since(start)

	switch {
	case err != nil:
		stage.Status = entities.StageStatusError
		stage.Message = err.Error()
	case suite.Failed > 0 || suite.Errors > 0:
		stage.Status = entities.StageStatusUnstable
		stage.Message = fmt.Sprintf("%d of %d test files failed", suite.Failed+suite.Errors, suite.Executed+suite.Errors)
	default:
		stage.Status = entities.StageStatusPassed
	}
	return stage
}

func (o *PipelineOrchestrator) runTrigger(ctx context.Context, report *entities.PipelineReport, branch string) entities.StageResult {
	stage := entities.StageResult{Name: "integration-trigger"}

	if branch != o.config.Pipeline.Trigger.Branch {
		stage.Status = entities.StageStatusSkipped
		stage.Message = fmt.Sprintf("branch %s does not trigger integration tests", branch)
		return stage
	}
	if report.Errored() {
		stage.Status = entities.StageStatusSkipped
		stage.Message = "earlier stage errored"
		return stage
	}

	start := time.Now()
	o.log.Info("pipeline stage", interfaces.F("stage", stage.Name), interfaces.F("branch", branch))
	err := o.trigger.Fire(ctx, branch)
	stage.Duration = time.Since(start)

	if err != nil {
		stage.Status = entities.StageStatusError
		stage.Message = err.Error()
		return stage
	}
	stage.Status = entities.StageStatusPassed
	report.Triggered = true
	return stage
}
