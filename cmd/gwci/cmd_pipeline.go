package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain-adapters/gateways"
	orchestrators "github.com/openmotics/gwci/internal/domain-orchestrators"
	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/interfaces"
	"github.com/openmotics/gwci/internal/domain/services"
	"github.com/openmotics/gwci/internal/external-adapters/junit"
)

func runPipeline(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pipeline", flag.ExitOnError)
	var (
		configPath = fs.String("config", "gwci.yml", "Path to workspace configuration")
		branch     = fs.String("branch", os.Getenv("BRANCH_NAME"), "Branch being built (default: $BRANCH_NAME)")
		verbose    = fs.Bool("verbose", false, "Verbose logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci pipeline [options]

Run the CI stages in sequence: typecheck, one unit-test batch per configured
runtime, then the downstream integration-test trigger when the branch matches.
The whole run is bounded by the configured wall-clock timeout.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(ctx, *configPath)
	log := newLogger(*verbose)
	executor := gateways.NewToolExecutor()

	orch := newPipelineOrchestrator(cfg, executor, log)

	report, err := orch.Run(ctx, *branch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: pipeline aborted: %v\n", err)
		printPipelineSummary(report)
		os.Exit(1)
	}

	printPipelineSummary(report)
	if report.Errored() {
		os.Exit(1)
	}
}

// newPipelineOrchestrator wires all pipeline stages following the
// architecture pattern: one gateway per external tool, suite runners built
// per runtime.
func newPipelineOrchestrator(cfg *entities.WorkspaceConfig, executor *gateways.ToolExecutor, log interfaces.Logger) *orchestrators.PipelineOrchestrator {
	selector := services.NewSelectionService(entities.NewBlacklist(cfg.Tests.Blacklist), cfg.Tests.Pattern)
	reports := junit.NewWriter()

	suiteFor := func(runtime entities.RuntimeConfig) orchestrators.SuiteRunner {
		tool := gateways.NewTestTool(executor, runtime.Command)
		return orchestrators.NewSuiteOrchestrator(selector, tool, reports, log)
	}

	return orchestrators.NewPipelineOrchestrator(
		cfg,
		gateways.NewTypechecker(executor, cfg.Typecheck.Command),
		suiteFor,
		gateways.NewDownstreamTrigger(executor, cfg.Pipeline.Trigger.Command),
		log,
	)
}

func printPipelineSummary(report *entities.PipelineReport) {
	if report == nil {
		return
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📊 Pipeline %s (branch %s)\n", report.RunID, report.Branch)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for _, stage := range report.Stages {
		switch stage.Status {
		case entities.StageStatusPassed:
			fmt.Printf("  ✓ %-22s passed (%.2fs)\n", stage.Name, stage.Duration.Seconds())
		case entities.StageStatusUnstable:
			fmt.Printf("  ⚠️  %-22s unstable (%.2fs) - %s\n", stage.Name, stage.Duration.Seconds(), stage.Message)
		case entities.StageStatusError:
			fmt.Printf("  ✗ %-22s error - %s\n", stage.Name, stage.Message)
		case entities.StageStatusSkipped:
			fmt.Printf("  ⏭️  %-22s skipped - %s\n", stage.Name, stage.Message)
		}
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if report.Triggered {
		fmt.Println("🚀 Downstream integration tests triggered")
	}
	fmt.Printf("⏱️  Duration: %.2f seconds\n", report.Duration.Seconds())
}
