package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/sieve/internal/plan"
	"github.com/MikeSquared-Agency/sieve/internal/report"
)

var planFlags struct {
	file   string
	report string
	dryRun bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the chained filter passes of a YAML plan",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planFlags.file, "file", "f", "", "Plan YAML (default $SIEVE_PLAN)")
	f.StringVar(&planFlags.report, "report", "", "Write a JSON run report here (overrides the plan's report)")
	f.BoolVar(&planFlags.dryRun, "dry-run", false, "Classify and report without writing outputs")
}

func runPlan(cmd *cobra.Command, _ []string) error {
	path := firstNonEmpty(planFlags.file, cfg.PlanPath)
	if path == "" {
		return fmt.Errorf("--file is required (or set SIEVE_PLAN)")
	}

	p, err := plan.Load(path)
	if err != nil {
		return err
	}

	dryRun := planFlags.dryRun || cfg.DryRun
	rep := report.New(dryRun)
	slog.Info("sieve plan starting", "run_id", rep.RunID, "plan", path, "passes", len(p.Passes), "dry_run", dryRun)

	done, runErr := newRunner(cmd, dryRun).RunAll(cmd.Context(), p.Passes)
	for _, pr := range done {
		rep.Add(pr)
	}

	if len(rep.Passes) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", report.Table(rep))
	}
	if err := saveReport(rep, firstNonEmpty(planFlags.report, p.Report, cfg.ReportPath)); err != nil {
		return err
	}
	return runErr
}
