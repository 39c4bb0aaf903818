package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain-adapters/gateways"
)

func runTypecheck(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("typecheck", flag.ExitOnError)
	var (
		configPath = fs.String("config", "gwci.yml", "Path to workspace configuration")
		sourceDir  = fs.String("source", "", "Source directory override")
		reportPath = fs.String("report", "", "Structured report path override")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci typecheck [options]

Run the external type-checking tool against the source directory, writing a
structured report. The tool's exit status is passed through unchanged.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(ctx, *configPath)
	source := cfg.Typecheck.SourceDir
	if *sourceDir != "" {
		source = *sourceDir
	}
	report := cfg.Typecheck.ReportPath
	if *reportPath != "" {
		report = *reportPath
	}

	checker := gateways.NewTypechecker(gateways.NewToolExecutor(), cfg.Typecheck.Command)
	outcome := checker.Check(ctx, source, report)

	if !outcome.Started {
		fmt.Fprintf(os.Stderr, "Error: type checker could not be started\n%s", outcome.Output)
		os.Exit(1)
	}

	fmt.Print(outcome.Output)
	if outcome.ExitCode != 0 {
		// Surface the external tool's own exit code, untranslated.
		os.Exit(outcome.ExitCode)
	}
	fmt.Printf("✅ Typecheck passed (%.2fs), report: %s\n", outcome.Duration.Seconds(), report)
}
