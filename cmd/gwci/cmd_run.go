// Package main provides the gwci CLI for driving the gateway CI scaffolding.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain-adapters/gateways"
	orchestrators "github.com/openmotics/gwci/internal/domain-orchestrators"
	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/services"
	"github.com/openmotics/gwci/internal/external-adapters/junit"
)

func runRun(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var (
		configPath  = fs.String("config", "gwci.yml", "Path to workspace configuration")
		runtimeName = fs.String("runtime", "", "Runtime to execute (default: first configured)")
		verbose     = fs.Bool("verbose", false, "Verbose logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci run [options]

Discover all unit test files, skip the blacklist, and run each remaining file
through the test tool, writing one structured report per file. A failing test
file never aborts the batch and never fails this command; aggregate pass/fail
is determined by whoever consumes the report files.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(ctx, *configPath)
	runtime, ok := cfg.Runtime(*runtimeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown runtime %q\n", *runtimeName)
		os.Exit(1)
	}

	log := newLogger(*verbose)
	executor := gateways.NewToolExecutor()
	selector := services.NewSelectionService(entities.NewBlacklist(cfg.Tests.Blacklist), cfg.Tests.Pattern)
	tool := gateways.NewTestTool(executor, runtime.Command)

	orch := orchestrators.NewSuiteOrchestrator(selector, tool, junit.NewWriter(), log)

	report, err := orch.RunSuite(ctx, cfg.Tests.Root, runtime.ReportsDir, runtime.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSuiteSummary(report)
	// Batch tolerance: individual test failures never fail the run itself.
}

func printSuiteSummary(report *entities.SuiteReport) {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📊 Test run %s (%s)\n", report.RunID, report.Runtime)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for _, result := range report.Results {
		switch result.Status {
		case entities.StatusPassed:
			fmt.Printf("  ✓ %s (%.2fs)\n", result.File.Path, result.Duration.Seconds())
		case entities.StatusFailed:
			fmt.Printf("  ✗ %s (%.2fs) - %s\n", result.File.Path, result.Duration.Seconds(), result.Message)
		case entities.StatusError:
			fmt.Printf("  💥 %s - %s\n", result.File.Path, result.Message)
		case entities.StatusSkipped:
			fmt.Printf("  ⏭️  %s - %s\n", result.File.Path, result.Message)
		}
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Executed: %d  Passed: %d  Failed: %d  Errors: %d  Skipped: %d\n",
		report.Executed, report.Passed, report.Failed, report.Errors, report.Skipped)
	fmt.Printf("⏱️  Duration: %.2f seconds\n", report.Duration.Seconds())
}
