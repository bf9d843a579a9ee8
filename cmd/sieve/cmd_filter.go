package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/sieve/internal/plan"
	"github.com/MikeSquared-Agency/sieve/internal/report"
)

var filterFlags struct {
	input  string
	output string
	report string
	dryRun bool
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Run one filter pass from an input dataset to an output dataset",
	RunE:  runFilter,
}

func init() {
	f := filterCmd.Flags()
	f.StringVarP(&filterFlags.input, "input", "i", "", "Input dataset JSON (default $SIEVE_INPUT)")
	f.StringVarP(&filterFlags.output, "output", "o", "", "Output dataset JSON (default $SIEVE_OUTPUT)")
	f.StringVar(&filterFlags.report, "report", "", "Write a JSON run report here (default $SIEVE_REPORT)")
	f.BoolVar(&filterFlags.dryRun, "dry-run", false, "Classify and report without writing the output")
}

func runFilter(cmd *cobra.Command, _ []string) error {
	p := plan.Plan{
		Report: firstNonEmpty(filterFlags.report, cfg.ReportPath),
		Passes: []plan.Pass{{
			Name:   "filter",
			Input:  firstNonEmpty(filterFlags.input, cfg.Input),
			Output: firstNonEmpty(filterFlags.output, cfg.Output),
		}},
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w (set --input/--output or SIEVE_INPUT/SIEVE_OUTPUT)", err)
	}

	dryRun := filterFlags.dryRun || cfg.DryRun
	rep := report.New(dryRun)
	slog.Info("sieve filter starting", "run_id", rep.RunID, "input", p.Passes[0].Input, "dry_run", dryRun)

	pr, err := newRunner(cmd, dryRun).Run(cmd.Context(), p.Passes[0])
	if err != nil {
		return err
	}
	rep.Add(pr)

	return saveReport(rep, p.Report)
}

func saveReport(rep *report.Report, path string) error {
	rep.Finish()
	if path == "" {
		return nil
	}
	if err := rep.Save(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	slog.Info("run report saved", "run_id", rep.RunID, "path", path)
	return nil
}
